package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// birthFlags selects a birth moment from a stored profile or inline fields.
type birthFlags struct {
	profile string
	date    string
	clock   string
	zone    string
	lat     float64
	lon     float64
}

func (b *birthFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&b.profile, "profile", "p", "", "Profile ID or name")
	flags.StringVar(&b.date, "date", "", "Birth date, YYYY-MM-DD (instead of --profile)")
	flags.StringVar(&b.clock, "time", "12:00", "Birth time, HH:MM or HH:MM:SS")
	flags.StringVar(&b.zone, "zone", "", "Birth time zone, IANA name or ±HH:MM (required with --date)")
	flags.Float64Var(&b.lat, "lat", 0, "Latitude in degrees, north positive")
	flags.Float64Var(&b.lon, "lon", 0, "Longitude in degrees, east positive")
	cmd.MarkFlagsMutuallyExclusive("profile", "date")
}

// natal is a resolved birth with its chart.
type natal struct {
	Label string
	Chart *domain.Chart
}

// resolve builds the natal chart selected by the flags.
func (b *birthFlags) resolve(ctx context.Context) (*natal, error) {
	if chartService == nil {
		return nil, errors.New("chart service not configured (check the ephemeris backend with 'jyotish settings')")
	}

	var (
		moment domain.Moment
		label  string
	)
	switch {
	case b.profile != "":
		if profileService == nil {
			return nil, errors.New("profile service not configured")
		}
		p, err := profileService.Get(ctx, b.profile)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", b.profile, err)
		}
		if moment, err = p.Birth.Moment(); err != nil {
			return nil, err
		}
		label = p.Name
	case b.date != "":
		var err error
		moment, err = domain.ParseMoment(b.date, b.clock, b.zone,
			domain.Location{Latitude: b.lat, Longitude: b.lon})
		if err != nil {
			return nil, err
		}
		label = b.date + " " + b.clock + " " + b.zone
	default:
		return nil, errors.New("either --profile or --date is required")
	}

	chart, err := chartService.Build(ctx, moment)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart: %w", err)
	}
	return &natal{Label: label, Chart: chart}, nil
}

var chartBirth birthFlags

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute a sidereal birth chart",
	Long: `Compute the sidereal (Lahiri) birth chart with whole-sign houses.

Example:
  jyotish chart --profile Asha
  jyotish chart --date 1990-04-15 --time 12:00 --zone Asia/Kolkata --lat 28.61 --lon 77.21`,
	RunE: runChart,
}

func init() {
	chartBirth.register(chartCmd)
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	n, err := chartBirth.resolve(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, n.Chart, func(w io.Writer) error {
		return writeChart(w, n)
	})
}

func writeChart(w io.Writer, n *natal) error {
	c := n.Chart
	fmt.Fprintf(w, "Chart for %s\n", n.Label)
	fmt.Fprintf(w, "Local time: %s  (UTC %s)\n",
		c.Moment.Local().Format("2006-01-02 15:04:05 -07:00"), c.Moment.UTC.Format(time.DateTime))
	fmt.Fprintf(w, "Ayanamsa:   %s\n", formatDMS(c.Ayanamsa))
	fmt.Fprintf(w, "Ascendant:  %s %s\n\n", c.Ascendant.Sign, formatDMS(domain.NormalizeDegrees(c.Ascendant.Sidereal)-float64(c.Ascendant.Sign)*30))

	t := newTable("Body", "Sign", "Degree", "Nakshatra", "Pada", "House", "")
	for _, p := range c.Placements {
		t.Row(p.Body.String(), p.Sign.String(), formatDMS(p.Degree), p.Nakshatra.String(),
			strconv.Itoa(p.Pada), strconv.Itoa(p.House), motion(p.Retrograde))
	}
	return writeTable(w, t)
}
