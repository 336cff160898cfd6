// Package services implements the driving port interfaces.
// Services contain the core astrological computations and orchestrate
// calls to driven ports (ephemeris, config and profile stores).
//
// Computation services are pure and synchronous. The only blocking call
// is the EphemerisPort lookup made by ChartBuilder, which honours its
// context. Services are pure Go with no CGO dependencies.
package services
