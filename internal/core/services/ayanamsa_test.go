package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

func TestAyanamsa_AnchorAtJ2000(t *testing.T) {
	for _, model := range domain.AllAyanamsaModels() {
		t.Run(model.String(), func(t *testing.T) {
			c := NewAyanamsaCorrector(model)
			assert.InDelta(t, 23.8531, c.Ayanamsa(j2000), 1e-9)
		})
	}
}

func TestAyanamsa_LinearRate(t *testing.T) {
	c := NewAyanamsaCorrector(domain.AyanamsaLahiri)
	oneYear := j2000.Add(time.Duration(365.25 * 24 * float64(time.Hour)))

	assert.InDelta(t, 23.8531+0.013968, c.Ayanamsa(oneYear), 1e-9)
}

func TestAyanamsa_PrecessionPolynomial(t *testing.T) {
	c := NewAyanamsaCorrector(domain.AyanamsaLahiriPrecession)
	century := j2000.AddDate(100, 0, 0)
	tc := (domain.JulianDay(century) - domain.J2000) / 36525
	want := 23.8531 + (5029.0966*tc+1.11113*tc*tc)/3600

	assert.InDelta(t, want, c.Ayanamsa(century), 1e-9)
}

func TestAyanamsa_ContinuousAcrossYearBoundary(t *testing.T) {
	for _, model := range domain.AllAyanamsaModels() {
		t.Run(model.String(), func(t *testing.T) {
			c := NewAyanamsaCorrector(model)
			before := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
			after := before.Add(2 * time.Second)

			diff := c.Ayanamsa(after) - c.Ayanamsa(before)
			assert.Greater(t, diff, 0.0)
			assert.Less(t, diff, 1e-6)
		})
	}
}

func TestAyanamsa_Monotonic(t *testing.T) {
	c := NewAyanamsaCorrector(domain.AyanamsaLahiri)
	prev := c.Ayanamsa(time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC))
	for year := 1810; year <= 2200; year += 10 {
		cur := c.Ayanamsa(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Greater(t, cur, prev, "year %d", year)
		prev = cur
	}
}

func TestAyanamsa_CorrectWraps(t *testing.T) {
	c := NewAyanamsaCorrector(domain.AyanamsaLahiri)

	got := c.Correct(10, j2000)

	assert.InDelta(t, 360+10-23.8531, got, 1e-9)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.Less(t, got, 360.0)
}

func TestAyanamsa_Deterministic(t *testing.T) {
	c := NewAyanamsaCorrector(domain.AyanamsaLahiriPrecession)
	at := time.Date(1987, 6, 5, 4, 3, 2, 1, time.UTC)

	assert.Equal(t, c.Correct(123.456, at), c.Correct(123.456, at))
}

func TestNewAyanamsaCorrector_InvalidModelFallsBack(t *testing.T) {
	c := NewAyanamsaCorrector("fagan")

	assert.Equal(t, domain.AyanamsaLahiri, c.Model())
}

func TestTropicalAscendant_RepeatsEachSiderealDay(t *testing.T) {
	loc := domain.Location{Latitude: 19.076, Longitude: 72.8777}
	at := time.Date(2001, 3, 21, 4, 0, 0, 0, time.UTC)
	siderealDay := time.Duration(86164.0905 * float64(time.Second))

	a := tropicalAscendant(at, loc)
	b := tropicalAscendant(at.Add(siderealDay), loc)

	assert.InDelta(t, a, b, 0.05)
	assert.GreaterOrEqual(t, a, 0.0)
	assert.Less(t, a, 360.0)
}

func TestTropicalAscendant_AriesCulminatingAtEquator(t *testing.T) {
	// Find the instant local sidereal time is zero at longitude 0 and check
	// the ecliptic's 90th degree is rising.
	at := j2000
	lst := siderealTime(at)
	at = at.Add(-time.Duration(lst / 360.98564736629 * 24 * float64(time.Hour)))

	asc := tropicalAscendant(at, domain.Location{})

	assert.InDelta(t, 90, asc, 0.01)
}
