//go:build cgo && swisseph

package swisseph

/*
#cgo LDFLAGS: -lswe -lm
#include <stdlib.h>
#include <swephexp.h>
*/
import "C"

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
)

// Ensure Ephemeris implements the interface.
var _ driven.EphemerisPort = (*Ephemeris)(nil)

var (
	rangeFrom = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)
	rangeTo   = time.Date(2400, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Swiss Ephemeris planet numbers by body. Rahu is the mean node.
var planets = [domain.BodyCount]C.int32{
	domain.Sun:     C.SE_SUN,
	domain.Moon:    C.SE_MOON,
	domain.Mars:    C.SE_MARS,
	domain.Mercury: C.SE_MERCURY,
	domain.Jupiter: C.SE_JUPITER,
	domain.Venus:   C.SE_VENUS,
	domain.Saturn:  C.SE_SATURN,
	domain.Rahu:    C.SE_MEAN_NODE,
	domain.Ketu:    C.SE_MEAN_NODE,
}

// Ephemeris answers positions from the Swiss Ephemeris.
// The C library keeps global state, so calls are serialised.
type Ephemeris struct {
	mu sync.Mutex
}

// Available reports whether the native library is compiled in.
func Available() bool {
	return true
}

// New initialises the library with the directory holding the data files.
// An empty path uses the library default.
func New(ephePath string) (*Ephemeris, error) {
	if ephePath != "" {
		cpath := C.CString(ephePath)
		defer C.free(unsafe.Pointer(cpath))
		C.swe_set_ephe_path(cpath)
	}
	return &Ephemeris{}, nil
}

// Name identifies the adapter.
func (e *Ephemeris) Name() string {
	return "swisseph"
}

// Range returns the supported [from, to) interval.
func (e *Ephemeris) Range() (from, to time.Time) {
	return rangeFrom, rangeTo
}

// PositionOf returns the tropical longitude of date of a body.
func (e *Ephemeris) PositionOf(ctx context.Context, body domain.Body, at time.Time) (domain.BodyPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.BodyPosition{}, err
	}
	if !body.IsValid() {
		return domain.BodyPosition{}, fmt.Errorf("%w: %d", domain.ErrUnknownBody, int(body))
	}
	if at.Before(rangeFrom) || !at.Before(rangeTo) {
		return domain.BodyPosition{}, fmt.Errorf("%w: %s outside swisseph range",
			domain.ErrEphemerisUnavailable, at.UTC().Format(time.RFC3339))
	}

	var xx [6]C.double
	serr := (*C.char)(C.malloc(C.AS_MAXCH))
	defer C.free(unsafe.Pointer(serr))

	e.mu.Lock()
	rc := C.swe_calc_ut(C.double(domain.JulianDay(at)), planets[body],
		C.SEFLG_SWIEPH|C.SEFLG_SPEED, &xx[0], serr)
	e.mu.Unlock()

	if rc < 0 {
		return domain.BodyPosition{}, fmt.Errorf("%w: %w", domain.ErrEphemerisUnavailable,
			errors.New(C.GoString(serr)))
	}

	lon := float64(xx[0])
	if body == domain.Ketu {
		lon = domain.NormalizeDegrees(lon + 180)
	}
	speed := float64(xx[3])
	return domain.BodyPosition{
		Body:       body,
		Longitude:  lon,
		Retrograde: speed < 0,
		Speed:      speed,
	}, nil
}

// Close releases the library's file handles.
func (e *Ephemeris) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	C.swe_close()
	return nil
}
