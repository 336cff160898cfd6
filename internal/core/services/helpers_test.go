package services

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
)

var (
	_ driven.EphemerisPort = (*stubEphemeris)(nil)
	_ driven.EphemerisPort = (*mockEphemeris)(nil)
)

// stubEphemeris answers every instant from a fixed table of tropical longitudes.
type stubEphemeris struct {
	longitudes map[domain.Body]float64
	retrograde map[domain.Body]bool
	calls      atomic.Int64
}

func newStubEphemeris(longitudes map[domain.Body]float64) *stubEphemeris {
	return &stubEphemeris{longitudes: longitudes, retrograde: map[domain.Body]bool{}}
}

func (s *stubEphemeris) PositionOf(_ context.Context, body domain.Body, _ time.Time) (domain.BodyPosition, error) {
	s.calls.Add(1)
	lon, ok := s.longitudes[body]
	if !ok {
		return domain.BodyPosition{}, domain.ErrUnknownBody
	}
	return domain.BodyPosition{Body: body, Longitude: lon, Retrograde: s.retrograde[body]}, nil
}

func (s *stubEphemeris) Name() string { return "stub" }

func (s *stubEphemeris) Range() (time.Time, time.Time) {
	return time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)
}

// mockEphemeris injects failures.
type mockEphemeris struct {
	mock.Mock
}

func (m *mockEphemeris) PositionOf(ctx context.Context, body domain.Body, at time.Time) (domain.BodyPosition, error) {
	args := m.Called(ctx, body, at)
	return args.Get(0).(domain.BodyPosition), args.Error(1)
}

func (m *mockEphemeris) Name() string { return "mock" }

func (m *mockEphemeris) Range() (time.Time, time.Time) {
	return time.Time{}, time.Time{}
}

// siderealTable returns tropical longitudes that land each body on the given
// sidereal longitude at an instant under the linear Lahiri model.
func siderealTable(at time.Time, sidereal map[domain.Body]float64) map[domain.Body]float64 {
	ayan := NewAyanamsaCorrector(domain.AyanamsaLahiri).Ayanamsa(at)
	out := make(map[domain.Body]float64, len(sidereal))
	for b, lon := range sidereal {
		out[b] = domain.NormalizeDegrees(lon + ayan)
	}
	return out
}

// defaultSidereal is a spread of sidereal longitudes, one body per sign
// where possible.
func defaultSidereal() map[domain.Body]float64 {
	return map[domain.Body]float64{
		domain.Sun:     165, // Virgo
		domain.Moon:    19 + 40.0/60, // Aries, Bharani
		domain.Mars:    75,  // Gemini
		domain.Mercury: 170, // Virgo
		domain.Jupiter: 100, // Cancer
		domain.Venus:   200, // Libra
		domain.Saturn:  310, // Aquarius
		domain.Rahu:    250, // Sagittarius
		domain.Ketu:    70,  // Gemini
	}
}

var (
	testBirth    = time.Date(1990, 4, 15, 6, 30, 0, 0, time.UTC)
	testLocation = domain.Location{Latitude: 28.6139, Longitude: 77.2090}
)

func testMoment() domain.Moment {
	return domain.NewMoment(testBirth, testLocation)
}

func nan() float64 {
	return math.NaN()
}
