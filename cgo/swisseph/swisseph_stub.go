//go:build !cgo || !swisseph

package swisseph

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
)

// Ensure Ephemeris implements the interface.
var _ driven.EphemerisPort = (*Ephemeris)(nil)

// Ephemeris answers positions from the Swiss Ephemeris.
// This is a stub for builds without the swisseph tag.
type Ephemeris struct{}

// Available reports whether the native library is compiled in.
func Available() bool {
	return false
}

// New always fails in stub builds.
func New(_ string) (*Ephemeris, error) {
	return nil, fmt.Errorf("%w: swisseph support not compiled in (build with -tags swisseph)",
		domain.ErrEphemerisUnavailable)
}

// Name identifies the adapter.
func (e *Ephemeris) Name() string {
	return "swisseph"
}

// Range returns an empty interval.
func (e *Ephemeris) Range() (from, to time.Time) {
	return time.Time{}, time.Time{}
}

// PositionOf always fails in stub builds.
func (e *Ephemeris) PositionOf(_ context.Context, _ domain.Body, _ time.Time) (domain.BodyPosition, error) {
	return domain.BodyPosition{}, domain.ErrEphemerisUnavailable
}

// Close releases resources.
func (e *Ephemeris) Close() error {
	return nil
}
