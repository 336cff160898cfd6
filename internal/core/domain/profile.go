package domain

import "time"

// BirthDetails is the raw birth record as entered by the user.
// Date and time are local to Zone, which must be explicit.
type BirthDetails struct {
	Date     string   `json:"date" yaml:"date"`
	Time     string   `json:"time" yaml:"time"`
	Zone     string   `json:"zone" yaml:"zone"`
	Location Location `json:"location" yaml:"location"`
}

// Moment resolves the birth record to a UTC moment.
func (b BirthDetails) Moment() (Moment, error) {
	return ParseMoment(b.Date, b.Time, b.Zone, b.Location)
}

// Profile is a stored person with their birth details.
type Profile struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Birth     BirthDetails `json:"birth" yaml:"birth"`
	Notes     string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" yaml:"updated_at"`
}
