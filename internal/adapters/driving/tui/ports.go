// Package tui provides an interactive terminal user interface for jyotish.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Profiles lists stored birth profiles.
	Profiles driving.ProfileService

	// Charts builds sidereal charts.
	Charts driving.ChartService

	// Dasha generates Vimshottari periods.
	Dasha driving.DashaService

	// Yoga detects combinations in a chart. Optional.
	Yoga driving.YogaService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Profiles == nil {
		return ErrMissingProfileService
	}
	if p.Charts == nil {
		return ErrMissingChartService
	}
	if p.Dasha == nil {
		return ErrMissingDashaService
	}
	return nil
}
