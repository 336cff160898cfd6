package domain

import (
	"fmt"
	"math"
	"strings"
)

// Nakshatra is a lunar mansion index in [0,26], Ashwini first.
// Each spans 13°20′ of the sidereal ecliptic.
type Nakshatra int

// NakshatraCount is the number of nakshatras.
const NakshatraCount = 27

// NakshatraSpan is the width of one nakshatra in degrees (13°20′).
const NakshatraSpan = 40.0 / 3.0

var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu", "Pushya", "Ashlesha",
	"Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati",
}

// IsValid returns true if the index is in [0,26].
func (n Nakshatra) IsValid() bool {
	return n >= 0 && n < NakshatraCount
}

// String returns the nakshatra name.
func (n Nakshatra) String() string {
	if !n.IsValid() {
		return unknownDescription
	}
	return nakshatraNames[n]
}

// Lord returns the Vimshottari lord ruling the nakshatra.
// Lords repeat every nine nakshatras starting with Ketu at Ashwini.
func (n Nakshatra) Lord() DashaLord {
	return vimshottariOrder[int(n)%len(vimshottariOrder)]
}

// MarshalText implements encoding.TextMarshaler.
func (n Nakshatra) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Nakshatra) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	for i, candidate := range nakshatraNames {
		if strings.EqualFold(candidate, name) {
			*n = Nakshatra(i)
			return nil
		}
	}
	return fmt.Errorf("%w: nakshatra %q", ErrInvalidInput, name)
}

// NakshatraOf returns the nakshatra containing a sidereal longitude, its pada
// in [1,4] and the fraction of the nakshatra already traversed in [0,1).
func NakshatraOf(longitude float64) (Nakshatra, int, float64) {
	x := NormalizeDegrees(longitude) / NakshatraSpan
	idx := math.Floor(x)
	if idx >= NakshatraCount {
		idx = NakshatraCount - 1
	}
	elapsed := x - idx
	pada := int(math.Floor(elapsed*4)) + 1
	if pada > 4 {
		pada = 4
	}
	return Nakshatra(idx), pada, elapsed
}
