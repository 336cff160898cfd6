package file

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment overrides, e.g. JYOTISH_DASHA_DEPTH.
const EnvPrefix = "JYOTISH"

// envOverrides lists the settings that may be set from the environment.
// Pointer fields stay nil when the variable is unset.
type envOverrides struct {
	EphemerisBackend   string `envconfig:"EPHEMERIS_BACKEND"`
	EphemerisCSVPath   string `envconfig:"EPHEMERIS_CSV_PATH"`
	EphemerisCacheSize *int   `envconfig:"EPHEMERIS_CACHE_SIZE"`
	EphemerisWatch     *bool  `envconfig:"EPHEMERIS_WATCH"`
	AyanamsaModel      string `envconfig:"AYANAMSA_MODEL"`
	TransitFrame       string `envconfig:"TRANSIT_FRAME"`
	DashaDepth         *int   `envconfig:"DASHA_DEPTH"`
	DashaMaxCycles     *int   `envconfig:"DASHA_MAX_CYCLES"`
}

// loadEnvOverrides reads prefixed variables into dot keys.
func loadEnvOverrides(prefix string) (map[string]any, error) {
	var env envOverrides
	if err := envconfig.Process(prefix, &env); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	out := make(map[string]any)
	setString := func(key, v string) {
		if v != "" {
			out[key] = v
		}
	}
	setString("ephemeris.backend", env.EphemerisBackend)
	setString("ephemeris.csv_path", env.EphemerisCSVPath)
	setString("ayanamsa.model", env.AyanamsaModel)
	setString("transit.frame", env.TransitFrame)

	if env.EphemerisCacheSize != nil {
		out["ephemeris.cache_size"] = *env.EphemerisCacheSize
	}
	if env.EphemerisWatch != nil {
		out["ephemeris.watch"] = *env.EphemerisWatch
	}
	if env.DashaDepth != nil {
		out["dasha.depth"] = *env.DashaDepth
	}
	if env.DashaMaxCycles != nil {
		out["dasha.max_cycles"] = *env.DashaMaxCycles
	}
	return out, nil
}
