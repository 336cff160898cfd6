package domain

import "time"

// TransitFrame selects which Ascendant transit houses are counted from.
type TransitFrame string

// Available transit frames.
const (
	// TransitFrameNatal counts houses from the natal Ascendant sign
	// ("transit over natal houses").
	TransitFrameNatal TransitFrame = "natal"

	// TransitFrameTransit counts houses from the Ascendant recomputed at
	// the transit instant, producing a standalone chart.
	TransitFrameTransit TransitFrame = "transit"
)

// IsValid returns true if the frame is recognised.
func (f TransitFrame) IsValid() bool {
	return f == TransitFrameNatal || f == TransitFrameTransit
}

// String returns the string representation.
func (f TransitFrame) String() string {
	return string(f)
}

// Description returns a human-readable description of the frame.
func (f TransitFrame) Description() string {
	switch f {
	case TransitFrameNatal:
		return "Natal Ascendant (transit over natal houses)"
	case TransitFrameTransit:
		return "Transit Ascendant (standalone chart)"
	default:
		return unknownDescription
	}
}

// AllTransitFrames returns every supported frame.
func AllTransitFrames() []TransitFrame {
	return []TransitFrame{TransitFrameNatal, TransitFrameTransit}
}

// TransitPosition is a body at the transit instant mapped onto houses.
type TransitPosition struct {
	Body      Body    `json:"body" yaml:"body"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Sign      Sign    `json:"sign" yaml:"sign"`

	// House is counted from the snapshot's reference Ascendant.
	House int `json:"house" yaml:"house"`

	// HouseFromMoon is counted from the natal Moon sign.
	HouseFromMoon int  `json:"house_from_moon" yaml:"house_from_moon"`
	Retrograde    bool `json:"retrograde" yaml:"retrograde"`
}

// TransitSnapshot is the sky at one instant read against a natal chart.
type TransitSnapshot struct {
	At    time.Time    `json:"at" yaml:"at"`
	Frame TransitFrame `json:"frame" yaml:"frame"`

	// ReferenceAscendant is the sign house 1 is counted from.
	ReferenceAscendant Sign `json:"reference_ascendant" yaml:"reference_ascendant"`

	Chart      *Chart            `json:"chart" yaml:"chart"`
	Positions  []TransitPosition `json:"positions" yaml:"positions"`
	Highlights []string          `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}
