package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Computation Errors.

	// ErrEphemerisUnavailable indicates the ephemeris backend cannot answer for
	// the requested instant. Retrying cannot change data availability.
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

	// ErrInvalidLocation indicates malformed geographic coordinates.
	// It is returned before any ephemeris lookup is attempted.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrUnknownBody indicates a body identifier outside the fixed enumeration.
	// Reaching it is an invariant violation, not a recoverable condition.
	ErrUnknownBody = errors.New("unknown body")

	// ErrUnscorableAxis indicates a compatibility lookup miss.
	// It is distinct from a zero score.
	ErrUnscorableAxis = errors.New("unscorable axis")
)

// EphemerisError carries the body and instant of a failed position lookup.
type EphemerisError struct {
	Body Body
	At   time.Time
	Err  error
}

func (e *EphemerisError) Error() string {
	return fmt.Sprintf("position of %s at %s: %v", e.Body, e.At.UTC().Format(time.RFC3339), e.Err)
}

func (e *EphemerisError) Unwrap() error {
	return e.Err
}

// AxisError names the compatibility axis that could not be scored.
type AxisError struct {
	Axis   string
	Detail string
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrUnscorableAxis, e.Axis, e.Detail)
}

// Is reports ErrUnscorableAxis so callers can match with errors.Is.
func (e *AxisError) Is(target error) bool {
	return target == ErrUnscorableAxis
}
