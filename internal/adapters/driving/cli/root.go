// Package cli provides the cobra command tree for the jyotish binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jyotish-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// annotationNoServices marks commands that run without the bootstrap.
const annotationNoServices = "jyotish/no-services"

var (
	verbose    bool
	configDir  string
	jsonOutput bool
	yamlOutput bool
)

// Driving ports used by the commands. Set by SetServices or the bootstrap.
var (
	profileService  driving.ProfileService
	chartService    driving.ChartService
	dashaService    driving.DashaService
	transitService  driving.TransitService
	matchService    driving.MatchService
	yogaService     driving.YogaService
	settingsService driving.SettingsService
)

// Services holds the driving ports the command tree talks to.
type Services struct {
	Profiles driving.ProfileService
	Charts   driving.ChartService
	Dasha    driving.DashaService
	Transit  driving.TransitService
	Match    driving.MatchService
	Yoga     driving.YogaService
	Settings driving.SettingsService
}

// Bootstrap builds the services once global flags are parsed.
// The returned func releases whatever the services hold open.
type Bootstrap func(ctx context.Context, configDir string) (Services, func(), error)

var (
	bootstrap Bootstrap
	teardown  func()
)

var rootCmd = &cobra.Command{
	Use:   "jyotish",
	Short: "Deterministic Vedic astrology engine",
	Long: `jyotish computes sidereal birth charts, Vimshottari dasha timelines,
transits and Ashta Kuta compatibility scores from stored birth profiles.

Positions come from a configurable ephemeris backend. Results are
reproducible: the same inputs always give the same output.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.jyotish)")
	flags.BoolVar(&jsonOutput, "json", false, "Write results as JSON")
	flags.BoolVar(&yamlOutput, "yaml", false, "Write results as YAML")
}

// SetServices replaces the driving ports used by the commands.
func SetServices(s Services) {
	profileService = s.Profiles
	chartService = s.Charts
	dashaService = s.Dasha
	transitService = s.Transit
	matchService = s.Match
	yogaService = s.Yoga
	settingsService = s.Settings
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the command tree and releases bootstrapped services.
func Execute(ctx context.Context) error {
	defer runTeardown()
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if jsonOutput && yamlOutput {
		return errors.New("--json and --yaml are mutually exclusive")
	}

	if bootstrap == nil || cmd.Annotations[annotationNoServices] != "" {
		return nil
	}

	services, release, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	teardown = release
	return nil
}

func runTeardown() {
	if teardown != nil {
		teardown()
		teardown = nil
	}
}
