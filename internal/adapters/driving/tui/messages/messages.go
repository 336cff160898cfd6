// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewProfiles lists stored profiles.
	ViewProfiles
	// ViewChart shows the birth chart of a profile.
	ViewChart
	// ViewDasha shows the dasha periods of a profile.
	ViewDasha
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewProfiles:
		return "profiles"
	case ViewChart:
		return "chart"
	case ViewDasha:
		return "dasha"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ProfilesLoaded carries the stored profiles.
type ProfilesLoaded struct {
	Profiles []domain.Profile
	Err      error
}

// ProfileSelected opens a profile in the chart or dasha view.
type ProfileSelected struct {
	Profile domain.Profile
	View    ViewType
}

// ChartLoaded carries a computed chart and its yogas.
type ChartLoaded struct {
	ProfileID string
	Chart     *domain.Chart
	Yogas     []domain.Yoga
	Err       error
}

// DashaLoaded carries the running periods and the major periods of a life.
type DashaLoaded struct {
	ProfileID string
	Running   []domain.DashaPeriod
	Majors    []domain.DashaPeriod
	Err       error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
