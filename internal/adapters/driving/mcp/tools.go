package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// ChartInput is the input schema for the chart tool.
type ChartInput struct {
	Profile string `json:"profile" jsonschema:"profile ID or name"`
}

// ChartOutput is the output schema for the chart tool.
type ChartOutput struct {
	Profile       string            `json:"profile"`
	UTC           string            `json:"utc"`
	Ayanamsa      float64           `json:"ayanamsa"`
	AscendantSign string            `json:"ascendant_sign"`
	Ascendant     float64           `json:"ascendant"`
	Placements    []PlacementOutput `json:"placements"`
}

// PlacementOutput is one body in a chart.
type PlacementOutput struct {
	Body       string  `json:"body"`
	Longitude  float64 `json:"longitude"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	Nakshatra  string  `json:"nakshatra"`
	Pada       int     `json:"pada"`
	House      int     `json:"house"`
	Retrograde bool    `json:"retrograde"`
}

// DashaInput is the input schema for the dasha tool.
type DashaInput struct {
	Profile string `json:"profile" jsonschema:"profile ID or name"`
	At      string `json:"at,omitempty" jsonschema:"instant for the running periods, YYYY-MM-DD or RFC3339 (default now)"`
	From    string `json:"from,omitempty" jsonschema:"list periods from this date instead of the running chain"`
	To      string `json:"to,omitempty" jsonschema:"end of the listed range (default from + 120 years)"`
	Depth   int    `json:"depth,omitempty" jsonschema:"deepest level, 1 maha to 5 prana (default from settings)"`
}

// DashaOutput is the output schema for the dasha tool.
type DashaOutput struct {
	Periods []PeriodOutput `json:"periods"`
	Count   int            `json:"count"`
}

// PeriodOutput is one dasha period.
type PeriodOutput struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Lord     string `json:"lord"`
	Level    string `json:"level"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// TransitInput is the input schema for the transit tool.
type TransitInput struct {
	Profile string `json:"profile" jsonschema:"profile ID or name"`
	Date    string `json:"date,omitempty" jsonschema:"transit instant, YYYY-MM-DD or RFC3339 (default now)"`
	Frame   string `json:"frame,omitempty" jsonschema:"house frame: natal or transit (default from settings)"`
}

// TransitOutput is the output schema for the transit tool.
type TransitOutput struct {
	At                 string                  `json:"at"`
	Frame              string                  `json:"frame"`
	ReferenceAscendant string                  `json:"reference_ascendant"`
	Positions          []TransitPositionOutput `json:"positions"`
	Highlights         []string                `json:"highlights,omitempty"`
}

// TransitPositionOutput is one transiting body.
type TransitPositionOutput struct {
	Body          string  `json:"body"`
	Longitude     float64 `json:"longitude"`
	Sign          string  `json:"sign"`
	House         int     `json:"house"`
	HouseFromMoon int     `json:"house_from_moon"`
	Retrograde    bool    `json:"retrograde"`
}

// MatchInput is the input schema for the match tool.
type MatchInput struct {
	Profile string `json:"profile" jsonschema:"first profile ID or name, the reference for asymmetric axes"`
	With    string `json:"with" jsonschema:"second profile ID or name"`
}

// MatchOutput is the output schema for the match tool.
type MatchOutput struct {
	Scores    []KutaOutput `json:"scores"`
	Total     float64      `json:"total"`
	Max       float64      `json:"max"`
	Threshold float64      `json:"threshold"`
	Passed    bool         `json:"passed"`
}

// KutaOutput is the score on one axis.
type KutaOutput struct {
	Axis      string  `json:"axis"`
	Score     float64 `json:"score"`
	Max       float64 `json:"max"`
	Symmetric bool    `json:"symmetric"`
	Detail    string  `json:"detail,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	addTool(s, &mcp.Tool{
		Name:        "chart",
		Description: "Compute the sidereal birth chart of a stored profile",
	}, s.handleChart)

	if s.ports.Dasha != nil {
		addTool(s, &mcp.Tool{
			Name:        "dasha",
			Description: "Running Vimshottari dasha periods, or the periods over a date range",
		}, s.handleDasha)
	}

	if s.ports.Transit != nil {
		addTool(s, &mcp.Tool{
			Name:        "transit",
			Description: "Transit placements against a profile's natal chart",
		}, s.handleTransit)
	}

	if s.ports.Match != nil {
		addTool(s, &mcp.Tool{
			Name:        "match",
			Description: "Ashta Kuta compatibility score of two profiles",
		}, s.handleMatch)
	}
}

// handleChart handles the chart tool invocation.
func (s *Server) handleChart(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChartInput,
) (*mcp.CallToolResult, ChartOutput, error) {
	profile, chart, err := s.natalChart(ctx, input.Profile)
	if err != nil {
		return nil, ChartOutput{}, err
	}

	output := ChartOutput{
		Profile:       profile.Name,
		UTC:           chart.Moment.UTC.Format(time.RFC3339),
		Ayanamsa:      chart.Ayanamsa,
		AscendantSign: chart.Ascendant.Sign.String(),
		Ascendant:     chart.Ascendant.Sidereal,
		Placements:    make([]PlacementOutput, len(chart.Placements)),
	}
	for i, p := range chart.Placements {
		output.Placements[i] = PlacementOutput{
			Body:       p.Body.String(),
			Longitude:  p.Longitude,
			Sign:       p.Sign.String(),
			Degree:     p.Degree,
			Nakshatra:  p.Nakshatra.String(),
			Pada:       p.Pada,
			House:      p.House,
			Retrograde: p.Retrograde,
		}
	}

	return nil, output, nil
}

// handleDasha handles the dasha tool invocation.
func (s *Server) handleDasha(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DashaInput,
) (*mcp.CallToolResult, DashaOutput, error) {
	_, chart, err := s.natalChart(ctx, input.Profile)
	if err != nil {
		return nil, DashaOutput{}, err
	}
	moon, ok := chart.Placement(domain.Moon)
	if !ok {
		return nil, DashaOutput{}, errors.New("chart has no Moon placement")
	}
	birth := chart.Moment.UTC

	var periods []domain.DashaPeriod
	if input.From != "" || input.To != "" {
		from, err := parseInstant(input.From, birth)
		if err != nil {
			return nil, DashaOutput{}, err
		}
		to, err := parseInstant(input.To, from.AddDate(domain.VimshottariYears, 0, 0))
		if err != nil {
			return nil, DashaOutput{}, err
		}
		periods, err = s.ports.Dasha.Timeline(driving.DashaRequest{
			MoonLongitude: moon.Longitude,
			Birth:         birth,
			From:          from,
			To:            to,
			Depth:         input.Depth,
		})
		if err != nil {
			return nil, DashaOutput{}, err
		}
	} else {
		at, err := parseInstant(input.At, time.Now().UTC())
		if err != nil {
			return nil, DashaOutput{}, err
		}
		periods, err = s.ports.Dasha.Current(moon.Longitude, birth, at, input.Depth)
		if err != nil {
			return nil, DashaOutput{}, err
		}
	}

	output := DashaOutput{
		Periods: make([]PeriodOutput, len(periods)),
		Count:   len(periods),
	}
	for i, p := range periods {
		output.Periods[i] = PeriodOutput{
			ID:       p.ID,
			ParentID: p.ParentID,
			Lord:     p.Lord.String(),
			Level:    p.Level.String(),
			Start:    p.Start.Format(time.RFC3339),
			End:      p.End.Format(time.RFC3339),
		}
	}

	return nil, output, nil
}

// handleTransit handles the transit tool invocation.
func (s *Server) handleTransit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TransitInput,
) (*mcp.CallToolResult, TransitOutput, error) {
	at, err := parseInstant(input.Date, time.Now().UTC())
	if err != nil {
		return nil, TransitOutput{}, err
	}
	frame, err := s.frame(input.Frame)
	if err != nil {
		return nil, TransitOutput{}, err
	}
	_, chart, err := s.natalChart(ctx, input.Profile)
	if err != nil {
		return nil, TransitOutput{}, err
	}

	snap, err := s.ports.Transit.Snapshot(ctx, chart, at, frame)
	if err != nil {
		return nil, TransitOutput{}, err
	}

	output := TransitOutput{
		At:                 snap.At.Format(time.RFC3339),
		Frame:              snap.Frame.String(),
		ReferenceAscendant: snap.ReferenceAscendant.String(),
		Positions:          make([]TransitPositionOutput, len(snap.Positions)),
		Highlights:         snap.Highlights,
	}
	for i, p := range snap.Positions {
		output.Positions[i] = TransitPositionOutput{
			Body:          p.Body.String(),
			Longitude:     p.Longitude,
			Sign:          p.Sign.String(),
			House:         p.House,
			HouseFromMoon: p.HouseFromMoon,
			Retrograde:    p.Retrograde,
		}
	}

	return nil, output, nil
}

// handleMatch handles the match tool invocation.
func (s *Server) handleMatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	_, a, err := s.natalChart(ctx, input.Profile)
	if err != nil {
		return nil, MatchOutput{}, err
	}
	_, b, err := s.natalChart(ctx, input.With)
	if err != nil {
		return nil, MatchOutput{}, err
	}

	result, err := s.ports.Match.Score(a, b)
	if err != nil {
		return nil, MatchOutput{}, err
	}

	output := MatchOutput{
		Scores:    make([]KutaOutput, len(result.Scores)),
		Total:     result.Total,
		Max:       result.Max,
		Threshold: result.Threshold,
		Passed:    result.Passed(),
	}
	for i, k := range result.Scores {
		output.Scores[i] = KutaOutput(k)
	}

	return nil, output, nil
}

// natalChart resolves a profile reference and builds its birth chart.
func (s *Server) natalChart(ctx context.Context, ref string) (*domain.Profile, *domain.Chart, error) {
	profile, err := s.ports.Profiles.Get(ctx, ref)
	if err != nil {
		return nil, nil, fmt.Errorf("profile %q: %w", ref, err)
	}
	moment, err := profile.Birth.Moment()
	if err != nil {
		return nil, nil, err
	}
	chart, err := s.ports.Charts.Build(ctx, moment)
	if err != nil {
		return nil, nil, err
	}
	return profile, chart, nil
}

// frame resolves the requested transit frame, falling back to settings.
func (s *Server) frame(value string) (domain.TransitFrame, error) {
	if value != "" {
		frame := domain.TransitFrame(value)
		if !frame.IsValid() {
			return "", fmt.Errorf("%w: frame %q (want natal or transit)", domain.ErrInvalidInput, value)
		}
		return frame, nil
	}
	if s.ports.Settings == nil {
		return "", fmt.Errorf("%w: frame is required", domain.ErrInvalidInput)
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return "", err
	}
	return settings.Transit.Frame, nil
}

// parseInstant accepts a date (midnight UTC) or an RFC3339 timestamp.
func parseInstant(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: instant %q: expected YYYY-MM-DD or RFC3339", domain.ErrInvalidInput, value)
	}
	return t, nil
}
