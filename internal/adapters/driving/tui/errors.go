package tui

import "errors"

// ErrMissingProfileService is returned when the profile service is not provided.
var ErrMissingProfileService = errors.New("tui: profile service is required")

// ErrMissingChartService is returned when the chart service is not provided.
var ErrMissingChartService = errors.New("tui: chart service is required")

// ErrMissingDashaService is returned when the dasha service is not provided.
var ErrMissingDashaService = errors.New("tui: dasha service is required")
