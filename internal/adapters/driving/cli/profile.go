package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage birth profiles",
	Long: `Create, list, show and delete stored birth profiles.

Profiles are referenced by ID or by name (case-insensitive) in every
command that accepts --profile.`,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a birth profile",
	Long: `Create a birth profile from local birth date, time and zone.

The zone must be explicit: an IANA name such as Asia/Kolkata, UTC,
or a fixed offset such as +05:30.

Example:
  jyotish profile create --name Asha --date 1990-04-15 --time 12:00 \
    --zone Asia/Kolkata --lat 28.6139 --lon 77.2090`,
	RunE: runProfileCreate,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List birth profiles",
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <id-or-name>",
	Short: "Show a birth profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a birth profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

func init() {
	flags := profileCreateCmd.Flags()
	flags.String("name", "", "Profile name (required)")
	flags.String("date", "", "Birth date, YYYY-MM-DD (required)")
	flags.String("time", "12:00", "Birth time, HH:MM or HH:MM:SS")
	flags.String("zone", "", "Birth time zone (required)")
	flags.Float64("lat", 0, "Latitude in degrees, north positive")
	flags.Float64("lon", 0, "Longitude in degrees, east positive")
	flags.String("notes", "", "Free-form notes")

	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileCreate(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	date, _ := flags.GetString("date")
	clock, _ := flags.GetString("time")
	zone, _ := flags.GetString("zone")
	lat, _ := flags.GetFloat64("lat")
	lon, _ := flags.GetFloat64("lon")
	notes, _ := flags.GetString("notes")

	profile, err := profileService.Create(cmd.Context(), driving.ProfileInput{
		Name:      name,
		Date:      date,
		Time:      clock,
		Zone:      zone,
		Latitude:  lat,
		Longitude: lon,
		Notes:     notes,
	})
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return render(cmd, profile, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Created profile %s (%s)\n", profile.Name, profile.ID)
		return err
	})
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profiles, err := profileService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}

	return render(cmd, profiles, func(w io.Writer) error {
		if len(profiles) == 0 {
			_, err := fmt.Fprintln(w, "No profiles. Create one with 'jyotish profile create'.")
			return err
		}
		t := newTable("ID", "Name", "Born", "Zone", "Lat", "Lon", "Created")
		for i := range profiles {
			p := &profiles[i]
			t.Row(shortID(p.ID), p.Name, p.Birth.Date+" "+p.Birth.Time, p.Birth.Zone,
				formatCoord(p.Birth.Location.Latitude), formatCoord(p.Birth.Location.Longitude),
				humanize.Time(p.CreatedAt))
		}
		return writeTable(w, t)
	})
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profile, err := profileService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	return render(cmd, profile, func(w io.Writer) error {
		moment, err := profile.Birth.Moment()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Name:      %s\n", profile.Name)
		fmt.Fprintf(w, "ID:        %s\n", profile.ID)
		fmt.Fprintf(w, "Born:      %s %s (%s)\n", profile.Birth.Date, profile.Birth.Time, profile.Birth.Zone)
		fmt.Fprintf(w, "UTC:       %s\n", moment.UTC.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Location:  %s, %s\n",
			formatCoord(profile.Birth.Location.Latitude), formatCoord(profile.Birth.Location.Longitude))
		if profile.Notes != "" {
			fmt.Fprintf(w, "Notes:     %s\n", profile.Notes)
		}
		_, err = fmt.Fprintf(w, "Created:   %s\n", profile.CreatedAt.Format(timeLayout))
		return err
	})
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	if err := profileService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	cmd.Printf("Deleted profile %s\n", args[0])
	return nil
}

const timeLayout = "2006-01-02 15:04"

// shortID trims a UUID to its first block for tables.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
