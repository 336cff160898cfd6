package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	matchFirst  birthFlags
	matchSecond birthFlags
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score Ashta Kuta compatibility of two profiles",
	Long: `Score the eight Ashta Kuta axes from the Moon placements of two charts.

The first profile is the reference for the one directional axis, Varna,
which scores when its class does not outrank the second. Totals of 18 or more out of 36 are reported as a pass.

Example:
  jyotish match --profile Asha --with Ravi`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchFirst.profile, "profile", "p", "", "First profile ID or name (required)")
	matchCmd.Flags().StringVarP(&matchSecond.profile, "with", "w", "", "Second profile ID or name (required)")
	_ = matchCmd.MarkFlagRequired("profile")
	_ = matchCmd.MarkFlagRequired("with")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if matchService == nil {
		return errors.New("match service not configured")
	}

	a, err := matchFirst.resolve(cmd.Context())
	if err != nil {
		return err
	}
	b, err := matchSecond.resolve(cmd.Context())
	if err != nil {
		return err
	}

	result, err := matchService.Score(a.Chart, b.Chart)
	if err != nil {
		return fmt.Errorf("failed to score match: %w", err)
	}

	return render(cmd, result, func(w io.Writer) error {
		fmt.Fprintf(w, "Ashta Kuta: %s and %s\n\n", a.Label, b.Label)
		t := newTable("Axis", "Score", "Max", "Detail")
		for _, s := range result.Scores {
			t.Row(s.Axis, formatPoints(s.Score), formatPoints(s.Max), s.Detail)
		}
		if err := writeTable(w, t); err != nil {
			return err
		}
		verdict := "below threshold"
		if result.Passed() {
			verdict = "compatible"
		}
		_, err := fmt.Fprintf(w, "Total: %s / %s (%s, threshold %s)\n",
			formatPoints(result.Total), formatPoints(result.Max), verdict, formatPoints(result.Threshold))
		return err
	})
}

// formatPoints prints half points without trailing zeros.
func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
