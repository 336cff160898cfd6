package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

var (
	dashaTimelineBirth birthFlags
	dashaNowBirth      birthFlags
)

var dashaCmd = &cobra.Command{
	Use:   "dasha",
	Short: "Vimshottari dasha periods",
	Long: `Compute Vimshottari dasha periods from the natal Moon.

Depth selects how far the hierarchy is expanded:
  1 maha, 2 antar, 3 pratyantar, 4 sookshma, 5 prana`,
}

var dashaTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "List dasha periods over a date range",
	Long: `List dasha periods overlapping a date range, parents before children.

The range defaults to the 120 years following birth. Dates are shown
rounded to the nearest day in the birth time zone.`,
	RunE: runDashaTimeline,
}

var dashaNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show the running dasha periods",
	RunE:  runDashaNow,
}

func init() {
	dashaTimelineBirth.register(dashaTimelineCmd)
	dashaTimelineCmd.Flags().String("from", "", "Range start, YYYY-MM-DD or RFC3339 (default birth)")
	dashaTimelineCmd.Flags().String("to", "", "Range end, YYYY-MM-DD or RFC3339 (default birth + 120 years)")
	dashaTimelineCmd.Flags().Int("depth", 0, "Deepest level to list (default from settings)")
	dashaTimelineCmd.Flags().Int("max-cycles", 0, "Bound on 120-year cycles (default from settings)")

	dashaNowBirth.register(dashaNowCmd)
	dashaNowCmd.Flags().String("at", "", "Instant to inspect, YYYY-MM-DD or RFC3339 (default now)")
	dashaNowCmd.Flags().Int("depth", 0, "Deepest level to show (default from settings)")

	dashaCmd.AddCommand(dashaTimelineCmd)
	dashaCmd.AddCommand(dashaNowCmd)
	rootCmd.AddCommand(dashaCmd)
}

func runDashaTimeline(cmd *cobra.Command, _ []string) error {
	if dashaService == nil {
		return errors.New("dasha service not configured")
	}

	n, err := dashaTimelineBirth.resolve(cmd.Context())
	if err != nil {
		return err
	}
	moon, err := natalMoon(n.Chart)
	if err != nil {
		return err
	}

	birth := n.Chart.Moment.UTC
	flags := cmd.Flags()
	fromArg, _ := flags.GetString("from")
	toArg, _ := flags.GetString("to")
	depth, _ := flags.GetInt("depth")
	maxCycles, _ := flags.GetInt("max-cycles")

	from, err := parseInstantFlag("from", fromArg, birth)
	if err != nil {
		return err
	}
	to, err := parseInstantFlag("to", toArg, from.AddDate(domain.VimshottariYears, 0, 0))
	if err != nil {
		return err
	}

	periods, err := dashaService.Timeline(driving.DashaRequest{
		MoonLongitude: moon,
		Birth:         birth,
		From:          from,
		To:            to,
		Depth:         depth,
		MaxCycles:     maxCycles,
	})
	if err != nil {
		return fmt.Errorf("failed to compute timeline: %w", err)
	}
	if periods == nil {
		periods = []domain.DashaPeriod{}
	}

	loc := n.Chart.Moment.Local().Location()
	return render(cmd, periods, func(w io.Writer) error {
		fmt.Fprintf(w, "Vimshottari dasha for %s\n\n", n.Label)
		if len(periods) == 0 {
			_, err := fmt.Fprintln(w, "No periods in range.")
			return err
		}
		t := newTable("Lord", "Level", "Start", "End")
		for _, p := range periods {
			indent := strings.Repeat("  ", int(p.Level)-1)
			t.Row(indent+p.Lord.String(), p.Level.String(), formatDay(p.Start, loc), formatDay(p.End, loc))
		}
		return writeTable(w, t)
	})
}

func runDashaNow(cmd *cobra.Command, _ []string) error {
	if dashaService == nil {
		return errors.New("dasha service not configured")
	}

	n, err := dashaNowBirth.resolve(cmd.Context())
	if err != nil {
		return err
	}
	moon, err := natalMoon(n.Chart)
	if err != nil {
		return err
	}

	atArg, _ := cmd.Flags().GetString("at")
	depth, _ := cmd.Flags().GetInt("depth")
	at, err := parseInstantFlag("at", atArg, time.Now().UTC())
	if err != nil {
		return err
	}

	chain, err := dashaService.Current(moon, n.Chart.Moment.UTC, at, depth)
	if err != nil {
		return fmt.Errorf("failed to find running periods: %w", err)
	}
	if chain == nil {
		chain = []domain.DashaPeriod{}
	}

	loc := n.Chart.Moment.Local().Location()
	return render(cmd, chain, func(w io.Writer) error {
		fmt.Fprintf(w, "Running periods for %s at %s\n\n", n.Label, at.Format(time.DateOnly))
		if len(chain) == 0 {
			_, err := fmt.Fprintln(w, "No period is running at that instant.")
			return err
		}
		t := newTable("Level", "Lord", "Start", "End", "Ends")
		for _, p := range chain {
			t.Row(p.Level.String(), p.Lord.String(), formatDay(p.Start, loc), formatDay(p.End, loc),
				humanize.RelTime(p.End, at, "ago", "from now"))
		}
		return writeTable(w, t)
	})
}

// natalMoon returns the sidereal Moon longitude of a chart.
func natalMoon(c *domain.Chart) (float64, error) {
	p, ok := c.Placement(domain.Moon)
	if !ok {
		return 0, errors.New("chart has no Moon placement")
	}
	return p.Longitude, nil
}

// parseInstantFlag accepts a date (midnight UTC) or an RFC3339 timestamp.
// An empty value yields def.
func parseInstantFlag(name, value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s %q: expected YYYY-MM-DD or RFC3339", domain.ErrInvalidInput, name, value)
	}
	return t, nil
}
