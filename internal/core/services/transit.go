package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jyotish-cli/internal/logger"
)

// Ensure TransitEngine implements the interface.
var _ driving.TransitService = (*TransitEngine)(nil)

// TransitEngine reads the sky at an arbitrary instant against a natal chart.
type TransitEngine struct {
	charts driving.ChartService
}

// NewTransitEngine creates a transit engine over a chart builder.
func NewTransitEngine(charts driving.ChartService) *TransitEngine {
	return &TransitEngine{charts: charts}
}

// Snapshot computes transit placements at an instant, observed from the
// natal location. Houses are counted from the Ascendant chosen by frame.
func (e *TransitEngine) Snapshot(ctx context.Context, natal *domain.Chart, at time.Time, frame domain.TransitFrame) (*domain.TransitSnapshot, error) {
	if natal == nil {
		return nil, fmt.Errorf("%w: natal chart is required", domain.ErrInvalidInput)
	}
	if !frame.IsValid() {
		return nil, fmt.Errorf("%w: transit frame %q (want %q or %q)",
			domain.ErrInvalidInput, frame, domain.TransitFrameNatal, domain.TransitFrameTransit)
	}
	moonSign, ok := natal.MoonSign()
	if !ok {
		return nil, fmt.Errorf("%w: natal chart has no Moon placement", domain.ErrInvalidInput)
	}

	moment := natal.Moment.At(at)

	var (
		chart *domain.Chart
		err   error
	)
	switch frame {
	case domain.TransitFrameNatal:
		chart, err = e.charts.BuildWithAscendant(ctx, moment, natal.Ascendant.Sign)
	case domain.TransitFrameTransit:
		chart, err = e.charts.Build(ctx, moment)
	}
	if err != nil {
		return nil, fmt.Errorf("transit chart: %w", err)
	}

	reference := natal.Ascendant.Sign
	if frame == domain.TransitFrameTransit {
		reference = chart.Ascendant.Sign
	}

	positions := make([]domain.TransitPosition, 0, len(chart.Placements))
	for _, p := range chart.Placements {
		positions = append(positions, domain.TransitPosition{
			Body:          p.Body,
			Longitude:     p.Longitude,
			Sign:          p.Sign,
			House:         p.House,
			HouseFromMoon: domain.HouseFrom(p.Sign, moonSign),
			Retrograde:    p.Retrograde,
		})
	}

	logger.Debug("transit %s: frame=%s reference=%s natal moon=%s",
		at.UTC().Format(time.RFC3339), frame, reference, moonSign)

	return &domain.TransitSnapshot{
		At:                 moment.UTC,
		Frame:              frame,
		ReferenceAscendant: reference,
		Chart:              chart,
		Positions:          positions,
		Highlights:         transitHighlights(positions),
	}, nil
}

// transitHighlights flags Sade Sati and Jupiter in a trine of the frame.
func transitHighlights(positions []domain.TransitPosition) []string {
	var out []string
	for _, p := range positions {
		switch p.Body {
		case domain.Saturn:
			switch p.HouseFromMoon {
			case 12:
				out = append(out, "Sade Sati (rising phase): Saturn in the 12th from natal Moon")
			case 1:
				out = append(out, "Sade Sati (peak phase): Saturn over natal Moon")
			case 2:
				out = append(out, "Sade Sati (setting phase): Saturn in the 2nd from natal Moon")
			}
		case domain.Jupiter:
			switch p.House {
			case 1, 5, 9:
				out = append(out, fmt.Sprintf("Jupiter transits house %d", p.House))
			}
		}
	}
	return out
}
