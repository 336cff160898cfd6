// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// ProfileList displays stored profiles in a navigable list.
type ProfileList struct {
	profiles []domain.Profile
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewProfileList creates a new profile list component.
func NewProfileList(s *styles.Styles) *ProfileList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProfileList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation messages.
func (r *ProfileList) Update(msg tea.Msg) (*ProfileList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the profile list.
func (r *ProfileList) View() string {
	if len(r.profiles) == 0 {
		return r.styles.Muted.Render("No profiles. Create one with 'jyotish profile create'.")
	}

	lines := make([]string, 0, len(r.profiles)*2+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Profiles (%d)", len(r.profiles))), "")

	// Two lines per profile.
	visible := (r.height - 4) / 2
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.profiles))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderProfile(i, &r.profiles[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *ProfileList) renderProfile(index int, p *domain.Profile) string {
	name := p.Name
	maxName := max(r.width-20, 10)
	if len(name) > maxName {
		name = name[:maxName-3] + "..."
	}

	var title string
	if index == r.selected {
		title = r.styles.Selected.Render("> " + name)
	} else {
		title = r.styles.Normal.Render("  " + name)
	}

	detail := fmt.Sprintf("    %s %s %s  %.2f, %.2f",
		p.Birth.Date, p.Birth.Time, p.Birth.Zone,
		p.Birth.Location.Latitude, p.Birth.Location.Longitude)
	if !p.CreatedAt.IsZero() {
		detail += "  added " + humanize.Time(p.CreatedAt)
	}

	return title + "\n" + r.styles.Muted.Render(detail)
}

// SetProfiles replaces the list contents and resets the cursor.
func (r *ProfileList) SetProfiles(profiles []domain.Profile) {
	r.profiles = profiles
	r.selected = 0
}

// Profiles returns the current profiles.
func (r *ProfileList) Profiles() []domain.Profile {
	return r.profiles
}

// Selected returns the cursor index.
func (r *ProfileList) Selected() int {
	return r.selected
}

// SelectedProfile returns the profile under the cursor, or nil if none.
func (r *ProfileList) SelectedProfile() *domain.Profile {
	if r.selected < 0 || r.selected >= len(r.profiles) {
		return nil
	}
	return &r.profiles[r.selected]
}

// MoveUp moves selection up.
func (r *ProfileList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ProfileList) MoveDown() {
	if r.selected < len(r.profiles)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ProfileList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of profiles.
func (r *ProfileList) Count() int {
	return len(r.profiles)
}
