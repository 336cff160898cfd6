package mcp

import (
	"context"
	"iter"
	"slices"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profiles []domain.Profile
	err      error
}

func (m *mockProfileService) Create(_ context.Context, _ driving.ProfileInput) (*domain.Profile, error) {
	return nil, m.err
}

func (m *mockProfileService) List(_ context.Context) ([]domain.Profile, error) {
	return m.profiles, m.err
}

func (m *mockProfileService) Get(_ context.Context, ref string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.profiles {
		if m.profiles[i].ID == ref || m.profiles[i].Name == ref {
			return &m.profiles[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockChartService is a mock implementation of driving.ChartService.
// It returns a copy of chart stamped with the requested moment.
type mockChartService struct {
	chart domain.Chart
	err   error
	built []domain.Moment
}

func (m *mockChartService) Build(_ context.Context, moment domain.Moment) (*domain.Chart, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.built = append(m.built, moment)
	c := m.chart
	c.Moment = moment
	return &c, nil
}

func (m *mockChartService) BuildWithAscendant(ctx context.Context, moment domain.Moment, _ domain.Sign) (*domain.Chart, error) {
	return m.Build(ctx, moment)
}

// mockDashaService is a mock implementation of driving.DashaService.
type mockDashaService struct {
	periods   []domain.DashaPeriod
	err       error
	timeline  *driving.DashaRequest
	currentAt time.Time
	depth     int
}

func (m *mockDashaService) Periods(req driving.DashaRequest) (iter.Seq[domain.DashaPeriod], error) {
	m.timeline = &req
	return slices.Values(m.periods), m.err
}

func (m *mockDashaService) Timeline(req driving.DashaRequest) ([]domain.DashaPeriod, error) {
	m.timeline = &req
	return m.periods, m.err
}

func (m *mockDashaService) Current(_ float64, _, at time.Time, depth int) ([]domain.DashaPeriod, error) {
	m.currentAt = at
	m.depth = depth
	return m.periods, m.err
}

// mockTransitService is a mock implementation of driving.TransitService.
type mockTransitService struct {
	snapshot *domain.TransitSnapshot
	err      error
	frame    domain.TransitFrame
	at       time.Time
}

func (m *mockTransitService) Snapshot(
	_ context.Context,
	_ *domain.Chart,
	at time.Time,
	frame domain.TransitFrame,
) (*domain.TransitSnapshot, error) {
	m.frame = frame
	m.at = at
	return m.snapshot, m.err
}

// mockMatchService is a mock implementation of driving.MatchService.
type mockMatchService struct {
	result *domain.MatchResult
	err    error
}

func (m *mockMatchService) Score(_, _ *domain.Chart) (*domain.MatchResult, error) {
	return m.result, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetEphemerisBackend(_ domain.EphemerisBackend, _ string) error {
	return m.err
}

func (m *mockSettingsService) SetAyanamsaModel(_ domain.AyanamsaModel) error { return m.err }

func (m *mockSettingsService) SetTransitFrame(_ domain.TransitFrame) error { return m.err }

func (m *mockSettingsService) SetDashaDepth(_ int) error { return m.err }

func (m *mockSettingsService) Validate() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// testProfile is born 1990-04-15 12:00 in Delhi.
func testProfile(id, name string) domain.Profile {
	return domain.Profile{
		ID:   id,
		Name: name,
		Birth: domain.BirthDetails{
			Date:     "1990-04-15",
			Time:     "12:00",
			Zone:     "Asia/Kolkata",
			Location: domain.Location{Latitude: 28.6139, Longitude: 77.2090},
		},
	}
}

// testChart has the Sun in Aries and the Moon in Taurus.
func testChart() domain.Chart {
	return domain.Chart{
		Ayanamsa:  23.71,
		Ascendant: domain.Ascendant{Tropical: 120, Sidereal: 96.29, Sign: domain.Cancer},
		Placements: []domain.SiderealPlacement{
			{Body: domain.Sun, Longitude: 16.29, Sign: domain.Aries, Degree: 16.29, House: 10, Nakshatra: domain.Nakshatra(1), Pada: 1},
			{Body: domain.Moon, Longitude: 56.29, Sign: domain.Taurus, Degree: 26.29, House: 11, Nakshatra: domain.Nakshatra(4), Pada: 1},
		},
	}
}

// newTestServer builds a server over the given ports with two profiles.
func newTestServer(ports *Ports) (*Server, error) {
	if ports.Profiles == nil {
		ports.Profiles = &mockProfileService{
			profiles: []domain.Profile{testProfile("p-1", "Asha"), testProfile("p-2", "Ravi")},
		}
	}
	if ports.Charts == nil {
		ports.Charts = &mockChartService{chart: testChart()}
	}
	return NewServer(ports)
}
