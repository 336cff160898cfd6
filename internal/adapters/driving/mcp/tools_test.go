package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

func TestServer_handleChart(t *testing.T) {
	ctx := context.Background()

	t.Run("returns chart for profile", func(t *testing.T) {
		charts := &mockChartService{chart: testChart()}
		server, err := newTestServer(&Ports{Charts: charts})
		require.NoError(t, err)

		_, output, err := server.handleChart(ctx, nil, ChartInput{Profile: "Asha"})

		require.NoError(t, err)
		assert.Equal(t, "Asha", output.Profile)
		assert.Equal(t, "1990-04-15T06:30:00Z", output.UTC)
		assert.Equal(t, "Cancer", output.AscendantSign)
		require.Len(t, output.Placements, 2)
		assert.Equal(t, "Sun", output.Placements[0].Body)
		assert.Equal(t, "Aries", output.Placements[0].Sign)
		assert.Equal(t, "Moon", output.Placements[1].Body)
		assert.Equal(t, "Mrigashira", output.Placements[1].Nakshatra)
		assert.Equal(t, 11, output.Placements[1].House)
	})

	t.Run("unknown profile returns not found", func(t *testing.T) {
		server, err := newTestServer(&Ports{})
		require.NoError(t, err)

		_, _, err = server.handleChart(ctx, nil, ChartInput{Profile: "Nobody"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "Nobody")
	})

	t.Run("returns error on chart failure", func(t *testing.T) {
		charts := &mockChartService{err: domain.ErrEphemerisUnavailable}
		server, err := newTestServer(&Ports{Charts: charts})
		require.NoError(t, err)

		_, _, err = server.handleChart(ctx, nil, ChartInput{Profile: "p-1"})

		assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
	})
}

func TestServer_handleDasha(t *testing.T) {
	ctx := context.Background()
	start := time.Date(1990, 4, 15, 6, 30, 0, 0, time.UTC)
	periods := []domain.DashaPeriod{
		{ID: "1", Lord: domain.Mars, Level: domain.LevelMaha, Start: start, End: start.AddDate(3, 0, 0)},
		{ID: "1.1", ParentID: "1", Lord: domain.Rahu, Level: domain.LevelAntar, Start: start, End: start.AddDate(1, 0, 0)},
	}

	t.Run("running chain at instant", func(t *testing.T) {
		dasha := &mockDashaService{periods: periods}
		server, err := newTestServer(&Ports{Dasha: dasha})
		require.NoError(t, err)

		_, output, err := server.handleDasha(ctx, nil, DashaInput{Profile: "Asha", At: "1991-01-01", Depth: 2})

		require.NoError(t, err)
		assert.Nil(t, dasha.timeline)
		assert.Equal(t, time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC), dasha.currentAt)
		assert.Equal(t, 2, dasha.depth)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "Mars", output.Periods[0].Lord)
		assert.Equal(t, "maha", output.Periods[0].Level)
		assert.Equal(t, "1990-04-15T06:30:00Z", output.Periods[0].Start)
		assert.Equal(t, "1", output.Periods[1].ParentID)
	})

	t.Run("range uses timeline", func(t *testing.T) {
		dasha := &mockDashaService{periods: periods}
		server, err := newTestServer(&Ports{Dasha: dasha})
		require.NoError(t, err)

		_, output, err := server.handleDasha(ctx, nil, DashaInput{Profile: "Asha", From: "2000-01-01"})

		require.NoError(t, err)
		require.NotNil(t, dasha.timeline)
		assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), dasha.timeline.From)
		assert.Equal(t, time.Date(2120, 1, 1, 0, 0, 0, 0, time.UTC), dasha.timeline.To)
		assert.Equal(t, start, dasha.timeline.Birth)
		assert.InDelta(t, 56.29, dasha.timeline.MoonLongitude, 1e-9)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("invalid instant", func(t *testing.T) {
		server, err := newTestServer(&Ports{Dasha: &mockDashaService{}})
		require.NoError(t, err)

		_, _, err = server.handleDasha(ctx, nil, DashaInput{Profile: "Asha", At: "soon"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on engine failure", func(t *testing.T) {
		dasha := &mockDashaService{err: errors.New("depth out of range")}
		server, err := newTestServer(&Ports{Dasha: dasha})
		require.NoError(t, err)

		_, _, err = server.handleDasha(ctx, nil, DashaInput{Profile: "Asha"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "depth out of range")
	})
}

func TestServer_handleTransit(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &domain.TransitSnapshot{
		At:                 at,
		Frame:              domain.TransitFrameNatal,
		ReferenceAscendant: domain.Cancer,
		Positions: []domain.TransitPosition{
			{Body: domain.Saturn, Longitude: 300, Sign: domain.Capricorn, House: 7, HouseFromMoon: 9},
		},
		Highlights: []string{"Saturn transits the 9th from the Moon"},
	}

	t.Run("explicit frame", func(t *testing.T) {
		transit := &mockTransitService{snapshot: snapshot}
		server, err := newTestServer(&Ports{Transit: transit})
		require.NoError(t, err)

		_, output, err := server.handleTransit(ctx, nil, TransitInput{Profile: "Asha", Date: "2025-01-01", Frame: "transit"})

		require.NoError(t, err)
		assert.Equal(t, domain.TransitFrameTransit, transit.frame)
		assert.Equal(t, at, transit.at)
		assert.Equal(t, "2025-01-01T00:00:00Z", output.At)
		assert.Equal(t, "Cancer", output.ReferenceAscendant)
		require.Len(t, output.Positions, 1)
		assert.Equal(t, "Capricorn", output.Positions[0].Sign)
		assert.Equal(t, 9, output.Positions[0].HouseFromMoon)
		assert.Len(t, output.Highlights, 1)
	})

	t.Run("frame defaults from settings", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.Transit.Frame = domain.TransitFrameTransit
		transit := &mockTransitService{snapshot: snapshot}
		server, err := newTestServer(&Ports{Transit: transit, Settings: &mockSettingsService{settings: settings}})
		require.NoError(t, err)

		_, _, err = server.handleTransit(ctx, nil, TransitInput{Profile: "Asha"})

		require.NoError(t, err)
		assert.Equal(t, domain.TransitFrameTransit, transit.frame)
	})

	t.Run("missing frame without settings", func(t *testing.T) {
		server, err := newTestServer(&Ports{Transit: &mockTransitService{snapshot: snapshot}})
		require.NoError(t, err)

		_, _, err = server.handleTransit(ctx, nil, TransitInput{Profile: "Asha"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("invalid frame", func(t *testing.T) {
		server, err := newTestServer(&Ports{Transit: &mockTransitService{snapshot: snapshot}})
		require.NoError(t, err)

		_, _, err = server.handleTransit(ctx, nil, TransitInput{Profile: "Asha", Frame: "lunar"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns scores", func(t *testing.T) {
		match := &mockMatchService{result: &domain.MatchResult{
			Scores: []domain.KutaScore{
				{Axis: domain.AxisVarna, Score: 1, Max: 1, Detail: "Vaishya / Kshatriya"},
				{Axis: domain.AxisNadi, Score: 8, Max: 8, Symmetric: true},
			},
			Total:     20,
			Max:       domain.MatchMaxScore,
			Threshold: domain.MatchPassThreshold,
		}}
		server, err := newTestServer(&Ports{Match: match})
		require.NoError(t, err)

		_, output, err := server.handleMatch(ctx, nil, MatchInput{Profile: "Asha", With: "Ravi"})

		require.NoError(t, err)
		assert.True(t, output.Passed)
		assert.Equal(t, 20.0, output.Total)
		require.Len(t, output.Scores, 2)
		assert.Equal(t, "Varna", output.Scores[0].Axis)
		assert.True(t, output.Scores[1].Symmetric)
	})

	t.Run("unknown second profile", func(t *testing.T) {
		server, err := newTestServer(&Ports{Match: &mockMatchService{}})
		require.NoError(t, err)

		_, _, err = server.handleMatch(ctx, nil, MatchInput{Profile: "Asha", With: "Nobody"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestParseInstant(t *testing.T) {
	def := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := parseInstant("", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = parseInstant("2024-03-01T10:00:00+05:30", def)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC), got)

	_, err = parseInstant("tomorrow", def)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
