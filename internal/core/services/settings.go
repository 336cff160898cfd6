package services

import (
	"fmt"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyEphemerisBackend = "ephemeris.backend"
	keyEphemerisCSV     = "ephemeris.csv_path"
	keyEphemerisCache   = "ephemeris.cache_size"
	keyEphemerisWatch   = "ephemeris.watch"
	keyAyanamsaModel    = "ayanamsa.model"
	keyTransitFrame     = "transit.frame"
	keyDashaDepth       = "dasha.depth"
	keyDashaMaxCycles   = "dasha.max_cycles"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Ephemeris: domain.EphemerisSettings{
			Backend:   s.getBackend(defaults.Ephemeris.Backend),
			CSVPath:   s.configStore.GetString(keyEphemerisCSV),
			CacheSize: s.getNonNegativeInt(keyEphemerisCache, defaults.Ephemeris.CacheSize),
			Watch:     s.getBool(keyEphemerisWatch, defaults.Ephemeris.Watch),
		},
		Ayanamsa: s.getAyanamsa(defaults.Ayanamsa),
		Transit: domain.TransitSettings{
			Frame: s.getFrame(defaults.Transit.Frame),
		},
		Dasha: domain.DashaSettings{
			Depth:     s.getDepth(defaults.Dasha.Depth),
			MaxCycles: s.getPositiveInt(keyDashaMaxCycles, defaults.Dasha.MaxCycles),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	// Ephemeris
	if err := s.configStore.Set(keyEphemerisBackend, settings.Ephemeris.Backend.String()); err != nil {
		return fmt.Errorf("save ephemeris backend: %w", err)
	}
	if err := s.configStore.Set(keyEphemerisCSV, settings.Ephemeris.CSVPath); err != nil {
		return fmt.Errorf("save ephemeris csv_path: %w", err)
	}
	if err := s.configStore.Set(keyEphemerisCache, settings.Ephemeris.CacheSize); err != nil {
		return fmt.Errorf("save ephemeris cache_size: %w", err)
	}
	if err := s.configStore.Set(keyEphemerisWatch, settings.Ephemeris.Watch); err != nil {
		return fmt.Errorf("save ephemeris watch: %w", err)
	}

	if err := s.configStore.Set(keyAyanamsaModel, settings.Ayanamsa.String()); err != nil {
		return fmt.Errorf("save ayanamsa model: %w", err)
	}
	if err := s.configStore.Set(keyTransitFrame, settings.Transit.Frame.String()); err != nil {
		return fmt.Errorf("save transit frame: %w", err)
	}

	// Dasha
	if err := s.configStore.Set(keyDashaDepth, settings.Dasha.Depth); err != nil {
		return fmt.Errorf("save dasha depth: %w", err)
	}
	if err := s.configStore.Set(keyDashaMaxCycles, settings.Dasha.MaxCycles); err != nil {
		return fmt.Errorf("save dasha max_cycles: %w", err)
	}

	return nil
}

// SetEphemerisBackend selects the position backend.
// The tabulated backend requires a CSV path.
func (s *SettingsService) SetEphemerisBackend(backend domain.EphemerisBackend, csvPath string) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: ephemeris backend %q", domain.ErrInvalidInput, backend)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if csvPath != "" {
		settings.Ephemeris.CSVPath = csvPath
	}
	if backend.RequiresTable() && settings.Ephemeris.CSVPath == "" {
		return fmt.Errorf("%w: backend %s requires a CSV path", domain.ErrInvalidInput, backend)
	}
	settings.Ephemeris.Backend = backend
	return s.Save(settings)
}

// SetAyanamsaModel selects the Lahiri correction formula.
func (s *SettingsService) SetAyanamsaModel(model domain.AyanamsaModel) error {
	if !model.IsValid() {
		return fmt.Errorf("%w: ayanamsa model %q", domain.ErrInvalidInput, model)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Ayanamsa = model
	return s.Save(settings)
}

// SetTransitFrame selects the default transit frame.
func (s *SettingsService) SetTransitFrame(frame domain.TransitFrame) error {
	if !frame.IsValid() {
		return fmt.Errorf("%w: transit frame %q", domain.ErrInvalidInput, frame)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Transit.Frame = frame
	return s.Save(settings)
}

// SetDashaDepth sets the deepest dasha level emitted by default.
func (s *SettingsService) SetDashaDepth(depth int) error {
	if !domain.DashaLevel(depth).IsValid() {
		return fmt.Errorf("%w: dasha depth %d outside 1..%d", domain.ErrInvalidInput, depth, domain.MaxDashaDepth)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Dasha.Depth = depth
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.Ephemeris.IsConfigured() {
		return fmt.Errorf("ephemeris backend %q is not configured (csv_path=%q)",
			settings.Ephemeris.Backend, settings.Ephemeris.CSVPath)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDepth(defaultVal int) int {
	val := s.configStore.GetInt(keyDashaDepth)
	if !domain.DashaLevel(val).IsValid() {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.EphemerisBackend) domain.EphemerisBackend {
	backend := domain.EphemerisBackend(s.configStore.GetString(keyEphemerisBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getAyanamsa(defaultVal domain.AyanamsaModel) domain.AyanamsaModel {
	model := domain.AyanamsaModel(s.configStore.GetString(keyAyanamsaModel))
	if !model.IsValid() {
		return defaultVal
	}
	return model
}

func (s *SettingsService) getFrame(defaultVal domain.TransitFrame) domain.TransitFrame {
	frame := domain.TransitFrame(s.configStore.GetString(keyTransitFrame))
	if !frame.IsValid() {
		return defaultVal
	}
	return frame
}
