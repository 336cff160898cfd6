package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// EphemerisPort answers tropical ecliptic positions of the tracked bodies.
// Implementations may be precise or coarse; callers must not assume more
// angular resolution than the adapter documents.
type EphemerisPort interface {
	// PositionOf returns the tropical position of a body at a UTC instant.
	// Returns domain.ErrEphemerisUnavailable outside the supported range and
	// domain.ErrUnknownBody for a body outside the enumeration.
	PositionOf(ctx context.Context, body domain.Body, at time.Time) (domain.BodyPosition, error)

	// Name identifies the adapter for diagnostics.
	Name() string

	// Range returns the supported [from, to) interval.
	Range() (from, to time.Time)
}
