package domain

// EphemerisBackend identifies the adapter answering position lookups.
type EphemerisBackend string

// Available ephemeris backends.
const (
	// EphemerisAnalytic computes positions from orbital elements in pure Go.
	EphemerisAnalytic EphemerisBackend = "analytic"

	// EphemerisTabulated interpolates daily positions from a CSV table.
	EphemerisTabulated EphemerisBackend = "tabulated"

	// EphemerisSwiss uses the Swiss Ephemeris C library (build tag swisseph).
	EphemerisSwiss EphemerisBackend = "swisseph"
)

// IsValid returns true if the backend is recognised.
func (b EphemerisBackend) IsValid() bool {
	switch b {
	case EphemerisAnalytic, EphemerisTabulated, EphemerisSwiss:
		return true
	default:
		return false
	}
}

// RequiresTable returns true if the backend reads a CSV table.
func (b EphemerisBackend) RequiresTable() bool {
	return b == EphemerisTabulated
}

// String returns the string representation.
func (b EphemerisBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b EphemerisBackend) Description() string {
	switch b {
	case EphemerisAnalytic:
		return "Analytic (orbital elements, 1800-2200)"
	case EphemerisTabulated:
		return "Tabulated (daily CSV, interpolated)"
	case EphemerisSwiss:
		return "Swiss Ephemeris (native library)"
	default:
		return unknownDescription
	}
}

// AyanamsaModel selects the Lahiri correction formula.
type AyanamsaModel string

// Available ayanamsa models.
const (
	// AyanamsaLahiri is a linear precession rate anchored at J2000.
	AyanamsaLahiri AyanamsaModel = "lahiri"

	// AyanamsaLahiriPrecession adds the quadratic general precession term.
	AyanamsaLahiriPrecession AyanamsaModel = "lahiri_precession"
)

// IsValid returns true if the model is recognised.
func (m AyanamsaModel) IsValid() bool {
	return m == AyanamsaLahiri || m == AyanamsaLahiriPrecession
}

// String returns the string representation.
func (m AyanamsaModel) String() string {
	return string(m)
}

// Description returns a human-readable description of the model.
func (m AyanamsaModel) Description() string {
	switch m {
	case AyanamsaLahiri:
		return "Lahiri (linear rate)"
	case AyanamsaLahiriPrecession:
		return "Lahiri (general precession polynomial)"
	default:
		return unknownDescription
	}
}

// EphemerisSettings configures the position backend.
type EphemerisSettings struct {
	// Backend selects the adapter.
	Backend EphemerisBackend `json:"backend" yaml:"backend"`

	// CSVPath is the table read by the tabulated backend.
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`

	// CacheSize bounds the memoised lookups. Zero disables caching.
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// Watch reloads the CSV table when the file changes.
	Watch bool `json:"watch" yaml:"watch"`
}

// IsConfigured returns true if the backend has what it needs to run.
func (e EphemerisSettings) IsConfigured() bool {
	if !e.Backend.IsValid() {
		return false
	}
	if e.Backend.RequiresTable() && e.CSVPath == "" {
		return false
	}
	return true
}

// TransitSettings configures transit snapshots.
type TransitSettings struct {
	// Frame is the Ascendant transit houses are counted from.
	Frame TransitFrame `json:"frame" yaml:"frame"`
}

// DashaSettings configures timeline generation.
type DashaSettings struct {
	// Depth is the deepest level emitted (1 maha .. 5 prana).
	Depth int `json:"depth" yaml:"depth"`

	// MaxCycles bounds generation in 120-year cycles from the cycle origin.
	MaxCycles int `json:"max_cycles" yaml:"max_cycles"`
}

// AppSettings contains all application settings.
type AppSettings struct {
	Ephemeris EphemerisSettings `json:"ephemeris" yaml:"ephemeris"`
	Ayanamsa  AyanamsaModel     `json:"ayanamsa" yaml:"ayanamsa"`
	Transit   TransitSettings   `json:"transit" yaml:"transit"`
	Dasha     DashaSettings     `json:"dasha" yaml:"dasha"`
}

// DefaultAppSettings returns the default application settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Ephemeris: EphemerisSettings{
			Backend:   EphemerisAnalytic,
			CacheSize: 4096,
		},
		Ayanamsa: AyanamsaLahiri,
		Transit: TransitSettings{
			Frame: TransitFrameNatal,
		},
		Dasha: DashaSettings{
			Depth:     int(LevelPratyantar),
			MaxCycles: 2,
		},
	}
}

// AllEphemerisBackends returns every supported backend.
func AllEphemerisBackends() []EphemerisBackend {
	return []EphemerisBackend{EphemerisAnalytic, EphemerisTabulated, EphemerisSwiss}
}

// AllAyanamsaModels returns every supported ayanamsa model.
func AllAyanamsaModels() []AyanamsaModel {
	return []AyanamsaModel{AyanamsaLahiri, AyanamsaLahiriPrecession}
}
