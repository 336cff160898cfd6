// Command jyotish computes sidereal charts, dashas, transits and
// compatibility scores from stored birth profiles.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driven/ephemeris"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/services"
	"github.com/custodia-labs/jyotish-cli/internal/logger"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters behind the driving ports.
func bootstrap(ctx context.Context, configDir string) (cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("reading settings: %w", err)
	}

	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("opening profile store: %w", err)
	}

	svc := cli.Services{
		Profiles: services.NewProfileService(store.ProfileStore()),
		Dasha:    services.NewDashaEngine(settings.Dasha),
		Match:    services.NewMatchEngine(),
		Yoga:     services.NewYogaDetector(domain.DefaultYogaRules()),
		Settings: settingsService,
	}

	// Chart services stay unset on a bad backend; settings still work.
	eph, err := ephemeris.NewFromSettings(ctx, settings.Ephemeris)
	if err != nil {
		logger.Warn("ephemeris unavailable: %v", err)
	} else {
		charts := services.NewChartBuilder(eph.Port, services.NewAyanamsaCorrector(settings.Ayanamsa))
		svc.Charts = charts
		svc.Transit = services.NewTransitEngine(charts)
	}

	release := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing profile store: %v", err)
		}
		if err := eph.Close(); err != nil {
			logger.Warn("closing ephemeris: %v", err)
		}
	}
	return svc, release, nil
}
