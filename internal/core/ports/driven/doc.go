// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EphemerisPort: Tropical body positions (analytic, tabulated or Swiss Ephemeris)
//   - ConfigStore: Application configuration
//   - ProfileStore: Birth profile persistence
//
// The engine never caches or selects between ephemeris backends itself;
// both concerns live in the adapter layer.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
