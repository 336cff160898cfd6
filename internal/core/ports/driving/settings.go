package driving

import "github.com/custodia-labs/jyotish-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEphemerisBackend selects the position backend and its CSV table.
	SetEphemerisBackend(backend domain.EphemerisBackend, csvPath string) error

	// SetAyanamsaModel selects the Lahiri correction formula.
	SetAyanamsaModel(model domain.AyanamsaModel) error

	// SetTransitFrame selects the Ascendant transit houses are counted from.
	SetTransitFrame(frame domain.TransitFrame) error

	// SetDashaDepth sets the deepest dasha level emitted.
	SetDashaDepth(depth int) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
