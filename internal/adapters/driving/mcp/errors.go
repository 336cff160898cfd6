// Package mcp provides an MCP (Model Context Protocol) server adapter for jyotish.
// It lets AI assistants compute charts, dasha periods, transits and match
// scores from stored birth profiles.
package mcp

import "errors"

var (
	// ErrMissingProfileService is returned when the profile service is not provided.
	ErrMissingProfileService = errors.New("mcp: profile service is required")

	// ErrMissingChartService is returned when the chart service is not provided.
	ErrMissingChartService = errors.New("mcp: chart service is required")
)
