package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jyotish-cli/internal/logger"
)

// Ensure ChartBuilder implements the interface.
var _ driving.ChartService = (*ChartBuilder)(nil)

// ChartBuilder turns ephemeris positions into sidereal whole-sign charts.
type ChartBuilder struct {
	ephemeris driven.EphemerisPort
	ayanamsa  *AyanamsaCorrector
}

// NewChartBuilder creates a chart builder.
// A nil corrector uses the linear Lahiri model.
func NewChartBuilder(ephemeris driven.EphemerisPort, ayanamsa *AyanamsaCorrector) *ChartBuilder {
	if ayanamsa == nil {
		ayanamsa = NewAyanamsaCorrector(domain.AyanamsaLahiri)
	}
	return &ChartBuilder{
		ephemeris: ephemeris,
		ayanamsa:  ayanamsa,
	}
}

// Build computes the chart for a moment, houses counted from its Ascendant.
func (b *ChartBuilder) Build(ctx context.Context, moment domain.Moment) (*domain.Chart, error) {
	return b.build(ctx, moment, nil)
}

// BuildWithAscendant computes the chart for a moment, houses counted from
// the supplied reference sign. The chart still records its own Ascendant.
func (b *ChartBuilder) BuildWithAscendant(ctx context.Context, moment domain.Moment, reference domain.Sign) (*domain.Chart, error) {
	if !reference.IsValid() {
		return nil, fmt.Errorf("%w: reference ascendant sign %d out of range", domain.ErrInvalidInput, int(reference))
	}
	return b.build(ctx, moment, &reference)
}

func (b *ChartBuilder) build(ctx context.Context, moment domain.Moment, reference *domain.Sign) (*domain.Chart, error) {
	if err := moment.Location.Validate(); err != nil {
		return nil, err
	}
	if b.ephemeris == nil {
		return nil, domain.ErrEphemerisUnavailable
	}

	at := moment.UTC
	positions, err := b.positions(ctx, at)
	if err != nil {
		return nil, err
	}

	ayanamsa := b.ayanamsa.Ayanamsa(at)
	tropicalAsc := tropicalAscendant(at, moment.Location)
	siderealAsc := b.ayanamsa.Correct(tropicalAsc, at)
	asc := domain.Ascendant{
		Tropical: tropicalAsc,
		Sidereal: siderealAsc,
		Sign:     domain.SignOf(siderealAsc),
	}

	ref := asc.Sign
	if reference != nil {
		ref = *reference
	}

	placements := make([]domain.SiderealPlacement, 0, domain.BodyCount)
	for _, pos := range positions {
		sidereal := b.ayanamsa.Correct(pos.Longitude, at)
		placements = append(placements, domain.PlaceSidereal(pos.Body, sidereal, pos.Retrograde, ref))
	}

	logger.Debug("chart %s: ephemeris=%s ayanamsa=%s (%.6f) asc=%s ref=%s",
		at.Format(time.RFC3339), b.ephemeris.Name(), b.ayanamsa.Model(), ayanamsa, asc.Sign, ref)

	return &domain.Chart{
		Moment:     moment,
		Ayanamsa:   ayanamsa,
		Ascendant:  asc,
		Placements: placements,
	}, nil
}

// positions queries every body in order. The first failure aborts the build.
func (b *ChartBuilder) positions(ctx context.Context, at time.Time) ([]domain.BodyPosition, error) {
	out := make([]domain.BodyPosition, 0, domain.BodyCount)
	for _, body := range domain.AllBodies() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pos, err := b.ephemeris.PositionOf(ctx, body, at)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownBody) {
				logger.Warn("ephemeris %s rejected %s: %v", b.ephemeris.Name(), body, err)
			}
			var ephErr *domain.EphemerisError
			if errors.As(err, &ephErr) {
				return nil, err
			}
			return nil, &domain.EphemerisError{Body: body, At: at, Err: err}
		}
		pos.Body = body
		out = append(out, pos)
	}
	return out, nil
}
