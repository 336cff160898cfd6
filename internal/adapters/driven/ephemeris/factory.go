package ephemeris

import (
	"context"
	"fmt"

	"github.com/custodia-labs/jyotish-cli/cgo/swisseph"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish-cli/internal/logger"
)

// InitResult contains the assembled ephemeris backend.
type InitResult struct {
	// Port answers positions; it is Cache when caching is enabled.
	Port driven.EphemerisPort

	// Cache is nil when ephemeris.cache_size is zero.
	Cache *Cache

	closer func() error
}

// Close releases native resources held by the backend.
func (r *InitResult) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer()
}

// NewFromSettings builds the configured backend and wraps it in a cache
// when CacheSize is positive. A tabulated backend with Watch set reloads
// its table until ctx is cancelled, and each reload purges the cache.
func NewFromSettings(ctx context.Context, settings domain.EphemerisSettings) (*InitResult, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: ephemeris backend %q is not configured. Run 'jyotish settings backend' to fix",
			domain.ErrInvalidInput, settings.Backend)
	}

	result := &InitResult{}
	var tabulated *Tabulated
	switch settings.Backend {
	case domain.EphemerisAnalytic:
		result.Port = NewAnalytic()
	case domain.EphemerisTabulated:
		tab, err := NewTabulated(settings.CSVPath)
		if err != nil {
			return nil, err
		}
		if settings.Watch {
			if err := tab.Watch(ctx); err != nil {
				return nil, err
			}
		}
		result.Port = tab
		tabulated = tab
	case domain.EphemerisSwiss:
		swe, err := swisseph.New("")
		if err != nil {
			return nil, err
		}
		result.Port = swe
		result.closer = swe.Close
	}

	log := logger.Logger("ephemeris")
	log.Debug().
		Str("backend", result.Port.Name()).
		Int("cache_size", settings.CacheSize).
		Bool("watch", settings.Watch).
		Msg("ephemeris backend selected")

	if settings.CacheSize > 0 {
		result.Cache = NewCache(result.Port, settings.CacheSize)
		result.Port = result.Cache
		if tabulated != nil {
			tabulated.OnReload(result.Cache.Purge)
		}
	}
	return result, nil
}
