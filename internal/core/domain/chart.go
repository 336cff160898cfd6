package domain

import "math"

// BodyPosition is a raw tropical position answered by an ephemeris backend.
type BodyPosition struct {
	Body       Body    `json:"body"`
	Longitude  float64 `json:"longitude"`
	Retrograde bool    `json:"retrograde"`

	// Speed is the daily motion in degrees when the backend provides it.
	Speed float64 `json:"speed,omitempty"`
}

// SiderealPlacement is a body placed in the sidereal zodiac and in a
// whole-sign house.
type SiderealPlacement struct {
	Body       Body      `json:"body" yaml:"body"`
	Longitude  float64   `json:"longitude" yaml:"longitude"`
	Sign       Sign      `json:"sign" yaml:"sign"`
	Degree     float64   `json:"degree" yaml:"degree"`
	House      int       `json:"house" yaml:"house"`
	Nakshatra  Nakshatra `json:"nakshatra" yaml:"nakshatra"`
	Pada       int       `json:"pada" yaml:"pada"`
	Retrograde bool      `json:"retrograde" yaml:"retrograde"`
}

// Ascendant is the rising point of the ecliptic.
type Ascendant struct {
	Tropical float64 `json:"tropical" yaml:"tropical"`
	Sidereal float64 `json:"sidereal" yaml:"sidereal"`
	Sign     Sign    `json:"sign" yaml:"sign"`
}

// Chart is a sidereal whole-sign chart for one moment.
// Placements hold exactly one entry per body, in body order.
type Chart struct {
	Moment     Moment              `json:"moment" yaml:"moment"`
	Ayanamsa   float64             `json:"ayanamsa" yaml:"ayanamsa"`
	Ascendant  Ascendant           `json:"ascendant" yaml:"ascendant"`
	Placements []SiderealPlacement `json:"placements" yaml:"placements"`
}

// Placement returns the placement of a body.
func (c *Chart) Placement(b Body) (SiderealPlacement, bool) {
	if b.IsValid() && int(b) < len(c.Placements) && c.Placements[b].Body == b {
		return c.Placements[b], true
	}
	for _, p := range c.Placements {
		if p.Body == b {
			return p, true
		}
	}
	return SiderealPlacement{}, false
}

// MoonSign returns the sign of the Moon, the reference for transits and matching.
func (c *Chart) MoonSign() (Sign, bool) {
	p, ok := c.Placement(Moon)
	return p.Sign, ok
}

// SunSign returns the sign of the Sun.
func (c *Chart) SunSign() (Sign, bool) {
	p, ok := c.Placement(Sun)
	return p.Sign, ok
}

// Occupants returns the bodies placed in a house, in body order.
func (c *Chart) Occupants(house int) []Body {
	var out []Body
	for _, p := range c.Placements {
		if p.House == house {
			out = append(out, p.Body)
		}
	}
	return out
}

// PlaceSidereal derives the sign, degree and nakshatra of a sidereal
// longitude and its house relative to the reference sign.
func PlaceSidereal(body Body, sidereal float64, retrograde bool, reference Sign) SiderealPlacement {
	lon := NormalizeDegrees(sidereal)
	sign := SignOf(lon)
	nak, pada, _ := NakshatraOf(lon)
	degree := math.Max(lon-float64(sign)*30, 0)
	return SiderealPlacement{
		Body:       body,
		Longitude:  lon,
		Sign:       sign,
		Degree:     degree,
		House:      HouseFrom(sign, reference),
		Nakshatra:  nak,
		Pada:       pada,
		Retrograde: retrograde,
	}
}
