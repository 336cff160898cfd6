package driving

import (
	"iter"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// DashaRequest describes a Vimshottari timeline query.
type DashaRequest struct {
	// MoonLongitude is the sidereal longitude of the Moon at birth.
	MoonLongitude float64

	// Birth is the birth instant.
	Birth time.Time

	// From and To bound the returned periods (inclusive range).
	From time.Time
	To   time.Time

	// Depth is the deepest level emitted. Zero uses the service default.
	Depth int

	// MaxCycles bounds generation in 120-year cycles. Zero uses the default.
	MaxCycles int
}

// DashaService computes Vimshottari period hierarchies.
type DashaService interface {
	// Periods lazily yields the periods overlapping the request range,
	// parents before children, in chronological order.
	Periods(req DashaRequest) (iter.Seq[domain.DashaPeriod], error)

	// Timeline collects Periods into a slice.
	Timeline(req DashaRequest) ([]domain.DashaPeriod, error)

	// Current returns the chain of running periods at an instant,
	// from the major period down to the requested depth.
	Current(moonLongitude float64, birth, at time.Time, depth int) ([]domain.DashaPeriod, error)
}
