package driving

import (
	"context"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// ChartService builds sidereal whole-sign charts.
type ChartService interface {
	// Build computes the chart for a moment with houses counted from the
	// Ascendant rising at that moment.
	Build(ctx context.Context, moment domain.Moment) (*domain.Chart, error)

	// BuildWithAscendant computes the chart for a moment with houses counted
	// from a supplied reference Ascendant sign.
	BuildWithAscendant(ctx context.Context, moment domain.Moment, reference domain.Sign) (*domain.Chart, error)
}

// YogaService detects planetary combinations in a chart.
type YogaService interface {
	// Detect returns the yogas present in the chart, in rule order.
	Detect(chart *domain.Chart) []domain.Yoga
}
