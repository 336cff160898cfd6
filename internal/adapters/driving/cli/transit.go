package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

var transitBirth birthFlags

var transitCmd = &cobra.Command{
	Use:   "transit",
	Short: "Compute transits against a natal chart",
	Long: `Compute transit placements at an instant against a natal chart.

The frame decides which Ascendant houses are counted from:
  natal    - the natal Ascendant (transit over natal houses)
  transit  - the Ascendant rising at the transit instant

Houses from the natal Moon are always shown.

Example:
  jyotish transit --profile Asha --date 2025-01-01 --frame transit`,
	RunE: runTransit,
}

func init() {
	transitCmd.Flags().StringVarP(&transitBirth.profile, "profile", "p", "", "Profile ID or name (required)")
	transitCmd.Flags().String("date", "", "Transit instant, YYYY-MM-DD or RFC3339 (default now)")
	transitCmd.Flags().String("frame", "", "House frame: natal or transit (default from settings)")
	_ = transitCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(transitCmd)
}

func runTransit(cmd *cobra.Command, _ []string) error {
	if transitService == nil {
		return errors.New("transit service not configured")
	}

	dateArg, _ := cmd.Flags().GetString("date")
	at, err := parseInstantFlag("date", dateArg, time.Now().UTC())
	if err != nil {
		return err
	}

	frame, err := transitFrame(cmd)
	if err != nil {
		return err
	}

	n, err := transitBirth.resolve(cmd.Context())
	if err != nil {
		return err
	}

	snap, err := transitService.Snapshot(cmd.Context(), n.Chart, at, frame)
	if err != nil {
		return fmt.Errorf("failed to compute transits: %w", err)
	}

	return render(cmd, snap, func(w io.Writer) error {
		fmt.Fprintf(w, "Transits for %s at %s\n", n.Label, snap.At.Format(time.DateTime+" MST"))
		fmt.Fprintf(w, "Frame: %s, houses from %s\n\n", snap.Frame.Description(), snap.ReferenceAscendant)

		t := newTable("Body", "Sign", "Degree", "House", "From Moon", "")
		for _, p := range snap.Positions {
			t.Row(p.Body.String(), p.Sign.String(), formatDMS(p.Longitude-float64(p.Sign)*30),
				strconv.Itoa(p.House), strconv.Itoa(p.HouseFromMoon), motion(p.Retrograde))
		}
		if err := writeTable(w, t); err != nil {
			return err
		}
		for _, h := range snap.Highlights {
			fmt.Fprintf(w, "  * %s\n", h)
		}
		return nil
	})
}

// transitFrame reads --frame, falling back to the configured frame.
func transitFrame(cmd *cobra.Command) (domain.TransitFrame, error) {
	value, _ := cmd.Flags().GetString("frame")
	if value != "" {
		frame := domain.TransitFrame(value)
		if !frame.IsValid() {
			return "", fmt.Errorf("%w: frame %q (want natal or transit)", domain.ErrInvalidInput, value)
		}
		return frame, nil
	}
	if settingsService == nil {
		return "", errors.New("--frame is required when settings are unavailable")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Transit.Frame, nil
}
