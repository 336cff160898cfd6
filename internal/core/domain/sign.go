package domain

import (
	"math"
	"strings"
)

const unknownDescription = "Unknown"

// Sign is a zodiac sign index in [0,11], Aries first.
type Sign int

// Zodiac signs.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of zodiac signs.
const SignCount = 12

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// signLords maps each sign to its ruling planet.
var signLords = [SignCount]Body{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// IsValid returns true if the sign index is in [0,11].
func (s Sign) IsValid() bool {
	return s >= Aries && s <= Pisces
}

// String returns the sign name.
func (s Sign) String() string {
	if !s.IsValid() {
		return unknownDescription
	}
	return signNames[s]
}

// Lord returns the planet ruling the sign.
func (s Sign) Lord() Body {
	return signLords[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sign) UnmarshalText(text []byte) error {
	parsed, err := ParseSign(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSign resolves a case-insensitive sign name.
func ParseSign(name string) (Sign, error) {
	for i, n := range signNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Sign(i), nil
		}
	}
	return 0, ErrInvalidInput
}

// SignOf returns the sign containing a longitude in degrees.
func SignOf(longitude float64) Sign {
	return Sign(int(math.Floor(NormalizeDegrees(longitude)/30)) % SignCount)
}

// HouseFrom returns the whole-sign house of s counted from the reference
// sign: house 1 is the reference sign itself.
func HouseFrom(s, reference Sign) int {
	return ((int(s)-int(reference))%SignCount+SignCount)%SignCount + 1
}

// SignDistance counts signs from a to b inclusive, in [1,12].
func SignDistance(a, b Sign) int {
	return HouseFrom(b, a)
}

// NormalizeDegrees wraps an angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	v := math.Mod(deg, 360)
	if v < 0 {
		v += 360
	}
	// math.Mod of a tiny negative value plus 360 can round to 360.
	if v >= 360 {
		v = 0
	}
	return v
}
