// Package domain defines the core astrological entities for jyotish.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Body, Sign, Nakshatra: the fixed enumerations and their lookup tables
//   - Moment, Location: UTC-normalised instants observed from a place
//   - Chart: sidereal whole-sign placements for one moment
//   - DashaPeriod: one node of the Vimshottari period hierarchy
//   - TransitSnapshot, MatchResult: derived readings of charts
//
// All values are immutable once constructed.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
