// Package ephemeris provides driven adapters answering tropical body
// positions for the chart engine.
//
// Three backends implement driven.EphemerisPort:
//
//   - analytic: orbital elements evaluated in pure Go, 1800..2200
//   - tabulated: daily CSV rows interpolated linearly, optionally reloaded
//     when the file changes
//   - swisseph: the Swiss Ephemeris C library (see cgo/swisseph)
//
// Cache wraps any backend with a bounded LRU keyed by (body, instant) and
// collapses concurrent misses for the same key. NewFromSettings selects and
// assembles the backend from application settings; the engine never probes
// for one at runtime.
package ephemeris
