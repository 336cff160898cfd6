package chart

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

type mockChartService struct {
	err   error
	calls int
}

func (m *mockChartService) Build(_ context.Context, moment domain.Moment) (*domain.Chart, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Chart{
		Moment:    moment,
		Ayanamsa:  23.7,
		Ascendant: domain.Ascendant{Sidereal: 96.5, Sign: domain.Cancer},
		Placements: []domain.SiderealPlacement{
			{Body: domain.Sun, Longitude: 16.25, Sign: domain.Aries, Degree: 16.25, House: 10, Nakshatra: domain.Nakshatra(1), Pada: 1},
			{Body: domain.Rahu, Longitude: 76.3, Sign: domain.Gemini, Degree: 16.3, House: 12, Nakshatra: domain.Nakshatra(5), Pada: 3, Retrograde: true},
		},
	}, nil
}

func (m *mockChartService) BuildWithAscendant(ctx context.Context, moment domain.Moment, _ domain.Sign) (*domain.Chart, error) {
	return m.Build(ctx, moment)
}

type mockYogaService struct {
	yogas []domain.Yoga
}

func (m *mockYogaService) Detect(*domain.Chart) []domain.Yoga {
	return m.yogas
}

func testProfile() domain.Profile {
	return domain.Profile{
		ID:   "p-1",
		Name: "Asha",
		Birth: domain.BirthDetails{
			Date: "1990-04-15", Time: "12:00", Zone: "Asia/Kolkata",
			Location: domain.Location{Latitude: 28.6139, Longitude: 77.209},
		},
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, &mockChartService{}, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.Chart())
	assert.Contains(t, view.View(), "No profile selected")
}

func TestView_SetProfile_BuildsChart(t *testing.T) {
	charts := &mockChartService{}
	yogas := &mockYogaService{yogas: []domain.Yoga{{
		Name: "Budha-Aditya", Description: "Sun and Mercury together", Bodies: []domain.Body{domain.Sun, domain.Mercury},
	}}}
	view := NewView(nil, charts, yogas)

	cmd := view.SetProfile(testProfile())
	require.NotNil(t, cmd)
	assert.Contains(t, view.View(), "Casting chart...")

	loaded, ok := cmd().(messages.ChartLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	view.Update(loaded)

	require.NotNil(t, view.Chart())
	assert.Equal(t, "1990-04-15T06:30:00Z", view.Chart().Moment.UTC.Format("2006-01-02T15:04:05Z07:00"))

	out := view.View()
	assert.Contains(t, out, "Chart: Asha")
	assert.Contains(t, out, "Local time: 1990-04-15 12:00:00 +0530")
	assert.Contains(t, out, "Ayanamsa:   23°42'00\"")
	assert.Contains(t, out, "Ascendant:  Cancer 6°30'00\"")
	assert.Contains(t, out, "Bharani")
	assert.Contains(t, out, "16°15'00\"")
	assert.Contains(t, out, "Budha-Aditya (Sun, Mercury)")
}

func TestView_NoYogas(t *testing.T) {
	view := NewView(nil, &mockChartService{}, &mockYogaService{})

	view.Update(view.SetProfile(testProfile())())

	assert.Contains(t, view.View(), "No yogas detected.")
}

func TestView_NilYogaServiceOmitsSection(t *testing.T) {
	view := NewView(nil, &mockChartService{}, nil)

	view.Update(view.SetProfile(testProfile())())

	assert.NotContains(t, view.View(), "yogas")
}

func TestView_BuildError(t *testing.T) {
	view := NewView(nil, &mockChartService{err: domain.ErrEphemerisUnavailable}, nil)

	view.Update(view.SetProfile(testProfile())())

	assert.Nil(t, view.Chart())
	assert.Contains(t, view.View(), "Error: ephemeris unavailable")
}

func TestView_InvalidBirthDetails(t *testing.T) {
	p := testProfile()
	p.Birth.Zone = "Mars/Olympus"
	charts := &mockChartService{}
	view := NewView(nil, charts, nil)

	loaded := view.SetProfile(p)().(messages.ChartLoaded)

	assert.Error(t, loaded.Err)
	assert.Equal(t, 0, charts.calls)
}

func TestView_StaleResultIgnored(t *testing.T) {
	view := NewView(nil, &mockChartService{}, nil)
	cmd := view.SetProfile(testProfile())

	other := testProfile()
	other.ID = "p-2"
	view.SetProfile(other)
	view.Update(cmd())

	assert.Nil(t, view.Chart())
}

func TestView_Keys(t *testing.T) {
	view := NewView(nil, &mockChartService{}, nil)
	view.Update(view.SetProfile(testProfile())())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewProfiles}, cmd())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.ProfileSelected)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDasha, selected.View)

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.Nil(t, view.Chart())
}

func TestDMS(t *testing.T) {
	assert.Equal(t, "0°00'00\"", dms(0))
	assert.Equal(t, "23°42'00\"", dms(23.7))
	assert.Equal(t, "30°00'00\"", dms(29.9999999))
}
