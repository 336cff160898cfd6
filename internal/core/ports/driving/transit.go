package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// TransitService reads the sky at an arbitrary date against a natal chart.
type TransitService interface {
	// Snapshot computes transit placements at an instant. The frame is
	// required and decides which Ascendant houses are counted from.
	Snapshot(ctx context.Context, natal *domain.Chart, at time.Time, frame domain.TransitFrame) (*domain.TransitSnapshot, error)
}
