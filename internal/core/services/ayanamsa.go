package services

import (
	"math"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// Lahiri anchor and rates.
const (
	lahiriAtJ2000        = 23.8531  // degrees at J2000.0
	lahiriLinearRate     = 0.013968 // degrees per Julian year
	precessionLinear     = 5029.0966
	precessionQuadratic  = 1.11113
	arcsecondsPerDegree  = 3600.0
	daysPerJulianYear    = 365.25
	daysPerJulianCentury = 36525.0
)

// AyanamsaCorrector converts tropical longitudes to the Lahiri sidereal zodiac.
// It is stateless and safe for concurrent use.
type AyanamsaCorrector struct {
	model domain.AyanamsaModel
}

// NewAyanamsaCorrector creates a corrector for a model.
// An unrecognised model falls back to the linear Lahiri rate.
func NewAyanamsaCorrector(model domain.AyanamsaModel) *AyanamsaCorrector {
	if !model.IsValid() {
		model = domain.AyanamsaLahiri
	}
	return &AyanamsaCorrector{model: model}
}

// Model returns the formula in use.
func (a *AyanamsaCorrector) Model() domain.AyanamsaModel {
	return a.model
}

// Ayanamsa returns the precession offset in degrees at a UTC instant.
// Time is measured continuously in Julian days from J2000.0.
func (a *AyanamsaCorrector) Ayanamsa(at time.Time) float64 {
	days := domain.JulianDay(at) - domain.J2000
	switch a.model {
	case domain.AyanamsaLahiriPrecession:
		t := days / daysPerJulianCentury
		return lahiriAtJ2000 + (precessionLinear*t+precessionQuadratic*t*t)/arcsecondsPerDegree
	default:
		return lahiriAtJ2000 + lahiriLinearRate*(days/daysPerJulianYear)
	}
}

// Correct subtracts the ayanamsa from a tropical longitude and wraps the
// result into [0,360).
func (a *AyanamsaCorrector) Correct(tropical float64, at time.Time) float64 {
	return domain.NormalizeDegrees(tropical - a.Ayanamsa(at))
}

// obliquity returns the true obliquity of the ecliptic in degrees:
// the IAU mean obliquity plus the principal nutation term.
func obliquity(at time.Time) float64 {
	t := (domain.JulianDay(at) - domain.J2000) / daysPerJulianCentury
	mean := 23.439291111 - 0.0130041667*t - 1.639e-7*t*t + 5.036e-7*t*t*t
	omega := degToRad(125.04452 - 1934.136261*t)
	return mean + 0.00256*math.Cos(omega)
}

// siderealTime returns Greenwich mean sidereal time in degrees.
func siderealTime(at time.Time) float64 {
	d := domain.JulianDay(at) - domain.J2000
	t := d / daysPerJulianCentury
	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000
	return domain.NormalizeDegrees(gmst)
}

// tropicalAscendant returns the ecliptic longitude rising on the eastern
// horizon for an instant and location.
func tropicalAscendant(at time.Time, loc domain.Location) float64 {
	ramc := degToRad(domain.NormalizeDegrees(siderealTime(at) + loc.Longitude))
	eps := degToRad(obliquity(at))
	phi := degToRad(loc.Latitude)
	asc := math.Atan2(math.Cos(ramc), -(math.Sin(ramc)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
	return domain.NormalizeDegrees(radToDeg(asc))
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func radToDeg(r float64) float64 { return r * 180 / math.Pi }
