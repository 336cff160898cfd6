// Package swisseph provides CGO bindings for the Swiss Ephemeris.
// It implements the driven.EphemerisPort interface.
//
// The binding is compiled only with the swisseph build tag:
//
//	go build -tags swisseph ./...
//
// Build requires:
//   - libswe and swephexp.h on the compiler search paths
//   - Ephemeris data files (sepl_*.se1, semo_*.se1) for full precision;
//     without them the library falls back to its Moshier model
package swisseph
