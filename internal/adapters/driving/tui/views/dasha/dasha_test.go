package dasha

import (
	"context"
	"iter"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

type mockChartService struct {
	noMoon bool
}

func (m *mockChartService) Build(_ context.Context, moment domain.Moment) (*domain.Chart, error) {
	c := &domain.Chart{Moment: moment}
	if !m.noMoon {
		c.Placements = []domain.SiderealPlacement{{Body: domain.Moon, Longitude: 56.29, Sign: domain.Taurus}}
	}
	return c, nil
}

func (m *mockChartService) BuildWithAscendant(ctx context.Context, moment domain.Moment, _ domain.Sign) (*domain.Chart, error) {
	return m.Build(ctx, moment)
}

type mockDashaService struct {
	majors   []domain.DashaPeriod
	running  []domain.DashaPeriod
	err      error
	timeline *driving.DashaRequest
	current  int
	depth    int
	at       time.Time
}

func (m *mockDashaService) Periods(req driving.DashaRequest) (iter.Seq[domain.DashaPeriod], error) {
	m.timeline = &req
	return slices.Values(m.majors), m.err
}

func (m *mockDashaService) Timeline(req driving.DashaRequest) ([]domain.DashaPeriod, error) {
	m.timeline = &req
	return m.majors, m.err
}

func (m *mockDashaService) Current(_ float64, _, at time.Time, depth int) ([]domain.DashaPeriod, error) {
	m.current++
	m.depth = depth
	m.at = at
	return m.running, m.err
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
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

func testDasha() *mockDashaService {
	return &mockDashaService{
		majors: []domain.DashaPeriod{
			{ID: "1", Lord: domain.Mars, Level: domain.LevelMaha, Start: date(1990, 4, 15), End: date(1993, 10, 1)},
			{ID: "2", Lord: domain.Rahu, Level: domain.LevelMaha, Start: date(1993, 10, 1), End: date(2011, 10, 1)},
			{ID: "3", Lord: domain.Jupiter, Level: domain.LevelMaha, Start: date(2011, 10, 1), End: date(2027, 10, 1)},
		},
		running: []domain.DashaPeriod{
			{ID: "3", Lord: domain.Jupiter, Level: domain.LevelMaha, Start: date(2011, 10, 1), End: date(2027, 10, 1)},
			{ID: "3.7", ParentID: "3", Lord: domain.Venus, Level: domain.LevelAntar, Start: date(2025, 6, 1), End: date(2027, 10, 1)},
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
}

func TestNewView(t *testing.T) {
	view := NewView(nil, &mockChartService{}, testDasha())

	require.NotNil(t, view)
	assert.Equal(t, DefaultDepth, view.Depth())
	assert.Contains(t, view.View(), "No profile selected")
}

func TestView_SetDepthClamps(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.SetDepth(0)
	assert.Equal(t, 1, view.Depth())

	view.SetDepth(99)
	assert.Equal(t, domain.MaxDashaDepth, view.Depth())

	view.SetDepth(2)
	assert.Equal(t, 2, view.Depth())
}

func TestView_SetProfile_LoadsPeriods(t *testing.T) {
	dasha := testDasha()
	view := NewView(nil, &mockChartService{}, dasha)
	view.SetClock(fixedClock)

	cmd := view.SetProfile(testProfile())
	require.NotNil(t, cmd)
	assert.Contains(t, view.View(), "Computing periods...")

	loaded, ok := cmd().(messages.DashaLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	view.Update(loaded)

	require.NotNil(t, dasha.timeline)
	birth := time.Date(1990, 4, 15, 6, 30, 0, 0, time.UTC)
	assert.Equal(t, birth, dasha.timeline.Birth)
	assert.Equal(t, birth, dasha.timeline.From)
	assert.Equal(t, birth.AddDate(120, 0, 0), dasha.timeline.To)
	assert.Equal(t, 1, dasha.timeline.Depth)
	assert.InDelta(t, 56.29, dasha.timeline.MoonLongitude, 1e-9)

	assert.Equal(t, 1, dasha.current)
	assert.Equal(t, DefaultDepth, dasha.depth)
	assert.Equal(t, fixedClock(), dasha.at)

	assert.Len(t, view.Running(), 2)
	assert.Len(t, view.Majors(), 3)

	out := view.View()
	assert.Contains(t, out, "Vimshottari Dasha: Asha")
	assert.Contains(t, out, "Running at 2026-01-10")
	assert.Contains(t, out, "Major periods")
	assert.Contains(t, out, "Jupiter")
	assert.Contains(t, out, "antar")
	assert.Contains(t, out, "now")
	assert.Contains(t, out, "Depth 3 (pratyantar)")
}

func TestView_BeforeBirthSkipsRunning(t *testing.T) {
	dasha := testDasha()
	view := NewView(nil, &mockChartService{}, dasha)
	view.SetClock(func() time.Time { return date(1980, 1, 1) })

	view.Update(view.SetProfile(testProfile())())

	assert.Equal(t, 0, dasha.current)
	assert.Empty(t, view.Running())
	assert.Len(t, view.Majors(), 3)
	assert.NotContains(t, view.View(), "Running at")
}

func TestView_MissingMoon(t *testing.T) {
	view := NewView(nil, &mockChartService{noMoon: true}, testDasha())

	loaded := view.SetProfile(testProfile())().(messages.DashaLoaded)

	require.Error(t, loaded.Err)
	assert.Contains(t, loaded.Err.Error(), "no Moon")
}

func TestView_ServiceError(t *testing.T) {
	dasha := testDasha()
	dasha.err = domain.ErrInvalidInput
	view := NewView(nil, &mockChartService{}, dasha)
	view.SetClock(fixedClock)

	view.Update(view.SetProfile(testProfile())())

	assert.Empty(t, view.Majors())
	assert.Contains(t, view.View(), "Error: invalid input")
}

func TestView_MissingServices(t *testing.T) {
	view := NewView(nil, nil, nil)

	loaded := view.SetProfile(testProfile())().(messages.DashaLoaded)

	assert.Error(t, loaded.Err)
}

func TestView_StaleResultIgnored(t *testing.T) {
	view := NewView(nil, &mockChartService{}, testDasha())
	view.SetClock(fixedClock)
	cmd := view.SetProfile(testProfile())

	other := testProfile()
	other.ID = "p-2"
	view.SetProfile(other)
	view.Update(cmd())

	assert.Empty(t, view.Majors())
}

func TestView_DepthKeys(t *testing.T) {
	dasha := testDasha()
	view := NewView(nil, &mockChartService{}, dasha)
	view.SetClock(fixedClock)
	view.Update(view.SetProfile(testProfile())())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	require.NotNil(t, cmd)
	assert.Equal(t, DefaultDepth+1, view.Depth())
	view.Update(cmd())
	assert.Equal(t, DefaultDepth+1, dasha.depth)

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	require.NotNil(t, cmd)
	assert.Equal(t, DefaultDepth, view.Depth())

	view.SetDepth(1)
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, view.Depth())

	view.SetDepth(domain.MaxDashaDepth)
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	assert.Nil(t, cmd)
}

func TestView_NavigationKeys(t *testing.T) {
	view := NewView(nil, &mockChartService{}, testDasha())
	view.SetClock(fixedClock)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	assert.Nil(t, cmd)

	view.Update(view.SetProfile(testProfile())())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewProfiles}, cmd())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.ProfileSelected)
	require.True(t, ok)
	assert.Equal(t, messages.ViewChart, selected.View)
	assert.Equal(t, "p-1", selected.Profile.ID)

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.NotNil(t, cmd)
}
