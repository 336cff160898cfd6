package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the ephemeris backend, ayanamsa model, transit frame
and dasha depth.

Each setter takes its value as an argument. Run one without an argument
in a terminal to pick from a list. JYOTISH_* environment variables
override stored values for the current process only.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend [analytic|tabulated|swisseph]",
	Short: "Set the ephemeris backend",
	Long: `Set the ephemeris backend that supplies planetary longitudes.

Available backends:
  analytic   - Built-in orbital elements (no data files, 1800-2200)
  tabulated  - Daily longitudes from a CSV table (requires --csv)
  swisseph   - Swiss Ephemeris (binary built with -tags swisseph)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsBackend,
}

var settingsFrameCmd = &cobra.Command{
	Use:   "frame [natal|transit]",
	Short: "Set the default transit house frame",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsFrame,
}

var settingsDepthCmd = &cobra.Command{
	Use:   "depth [1-5]",
	Short: "Set the default dasha depth",
	Long: `Set the deepest dasha level listed by default.

  1 maha, 2 antar, 3 pratyantar, 4 sookshma, 5 prana`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsDepth,
}

var settingsAyanamsaCmd = &cobra.Command{
	Use:   "ayanamsa [lahiri|lahiri_precession]",
	Short: "Set the ayanamsa model",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsAyanamsa,
}

func init() {
	settingsBackendCmd.Flags().String("csv", "", "CSV table path for the tabulated backend")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsFrameCmd)
	settingsCmd.AddCommand(settingsDepthCmd)
	settingsCmd.AddCommand(settingsAyanamsaCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	return render(cmd, settings, func(w io.Writer) error {
		fmt.Fprintln(w, "Current Settings")
		fmt.Fprintln(w, "================")
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Ephemeris]")
		fmt.Fprintf(w, "  Backend: %s\n", settings.Ephemeris.Backend.Description())
		if settings.Ephemeris.Backend.RequiresTable() {
			path := settings.Ephemeris.CSVPath
			if path == "" {
				path = "(not set)"
			}
			fmt.Fprintf(w, "  CSV table: %s\n", path)
			fmt.Fprintf(w, "  Watch: %t\n", settings.Ephemeris.Watch)
		}
		if settings.Ephemeris.CacheSize > 0 {
			fmt.Fprintf(w, "  Cache: %d entries\n", settings.Ephemeris.CacheSize)
		} else {
			fmt.Fprintln(w, "  Cache: disabled")
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Ayanamsa]")
		fmt.Fprintf(w, "  Model: %s\n", settings.Ayanamsa.Description())
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Transit]")
		fmt.Fprintf(w, "  Frame: %s\n", settings.Transit.Frame.Description())
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Dasha]")
		fmt.Fprintf(w, "  Depth: %d (%s)\n", settings.Dasha.Depth, domain.DashaLevel(settings.Dasha.Depth))
		fmt.Fprintf(w, "  Max cycles: %d\n", settings.Dasha.MaxCycles)
		fmt.Fprintln(w)

		if err := settingsService.Validate(); err != nil {
			fmt.Fprintf(w, "Warning: %v\n", err)
			_, err = fmt.Fprintln(w, "Run 'jyotish settings backend' to fix configuration issues.")
			return err
		}
		_, err := fmt.Fprintln(w, "Configuration is valid.")
		return err
	})
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	csvPath, _ := cmd.Flags().GetString("csv")

	var backend domain.EphemerisBackend
	if len(args) == 1 {
		backend = domain.EphemerisBackend(args[0])
	} else {
		reader, err := promptReader(cmd)
		if err != nil {
			return err
		}
		backends := domain.AllEphemerisBackends()
		descriptions := make([]string, len(backends))
		for i, b := range backends {
			descriptions[i] = b.Description()
		}
		backend = backends[choose(cmd, reader, "Select Ephemeris Backend", descriptions)-1]

		if backend.RequiresTable() && csvPath == "" {
			cmd.Print("CSV table path: ")
			csvPath = readLine(reader)
		}
	}

	if err := settingsService.SetEphemerisBackend(backend, csvPath); err != nil {
		return fmt.Errorf("failed to set ephemeris backend: %w", err)
	}
	cmd.Printf("Set ephemeris backend to: %s\n", backend.Description())
	return nil
}

func runSettingsFrame(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var frame domain.TransitFrame
	if len(args) == 1 {
		frame = domain.TransitFrame(args[0])
	} else {
		reader, err := promptReader(cmd)
		if err != nil {
			return err
		}
		frames := domain.AllTransitFrames()
		descriptions := make([]string, len(frames))
		for i, f := range frames {
			descriptions[i] = f.Description()
		}
		frame = frames[choose(cmd, reader, "Select Transit Frame", descriptions)-1]
	}

	if err := settingsService.SetTransitFrame(frame); err != nil {
		return fmt.Errorf("failed to set transit frame: %w", err)
	}
	cmd.Printf("Set transit frame to: %s\n", frame.Description())
	return nil
}

func runSettingsDepth(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var depth int
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: depth %q is not a number", domain.ErrInvalidInput, args[0])
		}
		depth = n
	} else {
		reader, err := promptReader(cmd)
		if err != nil {
			return err
		}
		levels := make([]string, domain.MaxDashaDepth)
		for i := range levels {
			levels[i] = domain.DashaLevel(i + 1).String()
		}
		depth = choose(cmd, reader, "Select Dasha Depth", levels)
	}

	if err := settingsService.SetDashaDepth(depth); err != nil {
		return fmt.Errorf("failed to set dasha depth: %w", err)
	}
	cmd.Printf("Set dasha depth to: %d (%s)\n", depth, domain.DashaLevel(depth))
	return nil
}

func runSettingsAyanamsa(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var model domain.AyanamsaModel
	if len(args) == 1 {
		model = domain.AyanamsaModel(args[0])
	} else {
		reader, err := promptReader(cmd)
		if err != nil {
			return err
		}
		models := domain.AllAyanamsaModels()
		descriptions := make([]string, len(models))
		for i, m := range models {
			descriptions[i] = m.Description()
		}
		model = models[choose(cmd, reader, "Select Ayanamsa Model", descriptions)-1]
	}

	if err := settingsService.SetAyanamsaModel(model); err != nil {
		return fmt.Errorf("failed to set ayanamsa model: %w", err)
	}
	cmd.Printf("Set ayanamsa model to: %s\n", model.Description())
	return nil
}

// promptReader returns a reader for interactive choices. A stdin that is
// not a terminal cannot answer prompts.
func promptReader(cmd *cobra.Command) (*bufio.Reader, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("a value argument is required when not running in a terminal")
	}
	return bufio.NewReader(in), nil
}

// choose prints a numbered menu and returns the 1-based selection.
func choose(cmd *cobra.Command, reader *bufio.Reader, title string, options []string) int {
	cmd.Println(title)
	cmd.Println(strings.Repeat("-", len(title)))
	for i, opt := range options {
		cmd.Printf("  %d. %s\n", i+1, opt)
	}
	cmd.Print("\nEnter choice [1]: ")
	return parseChoice(readLine(reader), len(options), 1)
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
