package mcp

import (
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Profiles resolves stored birth profiles.
	Profiles driving.ProfileService

	// Charts builds sidereal charts.
	Charts driving.ChartService

	// Dasha generates Vimshottari periods.
	Dasha driving.DashaService

	// Transit computes transit snapshots.
	Transit driving.TransitService

	// Match scores compatibility.
	Match driving.MatchService

	// Settings supplies the default transit frame.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Dasha, Transit, Match and Settings are optional: their tools are only
// registered when present.
func (p *Ports) Validate() error {
	if p.Profiles == nil {
		return ErrMissingProfileService
	}
	if p.Charts == nil {
		return ErrMissingChartService
	}
	return nil
}
