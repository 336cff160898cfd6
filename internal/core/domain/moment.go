package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Location is a point on Earth in decimal degrees.
// Latitude is positive north, longitude positive east.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks that both coordinates are finite and in range.
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || math.IsInf(l.Latitude, 0) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90,90]", ErrInvalidLocation, l.Latitude)
	}
	if math.IsNaN(l.Longitude) || math.IsInf(l.Longitude, 0) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180,180]", ErrInvalidLocation, l.Longitude)
	}
	return nil
}

// Moment is a UTC instant observed from a geographic location.
// The original UTC offset is kept so presentation can show local time.
type Moment struct {
	// UTC is the instant normalised to UTC.
	UTC time.Time `json:"utc" yaml:"utc"`

	// OffsetSeconds is the UTC offset the instant was expressed in.
	OffsetSeconds int `json:"offset_seconds" yaml:"offset_seconds"`

	// Location is where the moment was observed.
	Location Location `json:"location" yaml:"location"`
}

// NewMoment normalises t to UTC, recording the offset of its zone.
func NewMoment(t time.Time, loc Location) Moment {
	_, offset := t.Zone()
	return Moment{
		UTC:           t.UTC(),
		OffsetSeconds: offset,
		Location:      loc,
	}
}

// Local returns the instant in its original fixed offset.
func (m Moment) Local() time.Time {
	return m.UTC.In(time.FixedZone("", m.OffsetSeconds))
}

// At returns a moment for another instant at the same location.
func (m Moment) At(t time.Time) Moment {
	return NewMoment(t, m.Location)
}

// ParseMoment builds a Moment from local calendar fields.
// The zone must be explicit: an IANA name ("Asia/Kolkata"), "UTC", or a
// fixed offset ("+05:30"). An empty zone is rejected so that a naive
// timestamp is never silently read as machine-local time.
func ParseMoment(date, clock, zone string, loc Location) (Moment, error) {
	tz, err := ResolveZone(zone)
	if err != nil {
		return Moment{}, err
	}

	layout := "2006-01-02 15:04"
	if strings.Count(clock, ":") == 2 {
		layout = "2006-01-02 15:04:05"
	}
	t, err := time.ParseInLocation(layout, date+" "+clock, tz)
	if err != nil {
		return Moment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return NewMoment(t, loc), nil
}

// ResolveZone parses an explicit time zone name or fixed offset.
func ResolveZone(zone string) (*time.Location, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return nil, fmt.Errorf("%w: time zone is required", ErrInvalidInput)
	}
	if zone[0] == '+' || zone[0] == '-' {
		t, err := time.Parse("-07:00", zone)
		if err != nil {
			return nil, fmt.Errorf("%w: offset %q: %v", ErrInvalidInput, zone, err)
		}
		_, offset := t.Zone()
		return time.FixedZone(zone, offset), nil
	}
	if strings.EqualFold(zone, "local") {
		return nil, fmt.Errorf("%w: implicit local zone not allowed", ErrInvalidInput)
	}
	tz, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: zone %q: %v", ErrInvalidInput, zone, err)
	}
	return tz, nil
}

// JulianDay returns the Julian day number of a UTC instant.
func JulianDay(t time.Time) float64 {
	const unixEpochJD = 2440587.5
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return unixEpochJD + secs/86400
}

// J2000 is the Julian day of the J2000.0 epoch.
const J2000 = 2451545.0
