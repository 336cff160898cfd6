package domain

import "strings"

// Body identifies a tracked celestial body: the seven classical grahas
// plus the two lunar nodes.
type Body int

// Tracked bodies in chart order.
const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// BodyCount is the number of tracked bodies.
const BodyCount = 9

var bodyNames = [BodyCount]string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

// AllBodies returns every tracked body in chart order.
func AllBodies() []Body {
	return []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}
}

// IsValid returns true if the body is part of the fixed enumeration.
func (b Body) IsValid() bool {
	return b >= Sun && b <= Ketu
}

// IsNode returns true for Rahu and Ketu.
func (b Body) IsNode() bool {
	return b == Rahu || b == Ketu
}

// String returns the body name.
func (b Body) String() string {
	if !b.IsValid() {
		return unknownDescription
	}
	return bodyNames[b]
}

// MarshalText implements encoding.TextMarshaler.
func (b Body) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return nil, ErrUnknownBody
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBody resolves a case-insensitive body name.
func ParseBody(name string) (Body, error) {
	for i, n := range bodyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Body(i), nil
		}
	}
	return 0, ErrUnknownBody
}
