// Package dasha provides the Vimshottari dasha view for the TUI.
package dasha

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// DefaultDepth is the running chain depth shown before settings load.
const DefaultDepth = 3

// View shows the running periods of a profile and its major periods.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	charts driving.ChartService
	dasha  driving.DashaService
	ctx    context.Context
	now    func() time.Time

	profile *domain.Profile
	depth   int
	at      time.Time
	running []domain.DashaPeriod
	majors  []domain.DashaPeriod
	bar     *status.Bar

	width  int
	height int
}

// NewView creates a new dasha view.
func NewView(s *styles.Styles, charts driving.ChartService, dasha driving.DashaService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.DashaHelp())

	return &View{
		styles: s,
		keymap: km,
		charts: charts,
		dasha:  dasha,
		ctx:    context.Background(),
		now:    time.Now,
		depth:  DefaultDepth,
		bar:    bar,
		width:  80,
		height: 24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetClock replaces the source of the current instant.
func (v *View) SetClock(now func() time.Time) {
	v.now = now
}

// SetDepth sets the running chain depth, clamped to the valid levels.
func (v *View) SetDepth(depth int) {
	v.depth = min(max(depth, 1), domain.MaxDashaDepth)
}

// Depth returns the running chain depth.
func (v *View) Depth() int {
	return v.depth
}

// SetProfile switches to a profile and starts computing its periods.
func (v *View) SetProfile(p domain.Profile) tea.Cmd {
	v.profile = &p
	v.running = nil
	v.majors = nil
	return v.load()
}

func (v *View) load() tea.Cmd {
	if v.profile == nil {
		return nil
	}
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage("Computing periods...")

	p := *v.profile
	ctx := v.ctx
	depth := v.depth
	v.at = v.now().UTC()
	at := v.at
	return func() tea.Msg {
		if v.charts == nil || v.dasha == nil {
			return messages.DashaLoaded{ProfileID: p.ID, Err: errors.New("dasha service not available")}
		}
		moment, err := p.Birth.Moment()
		if err != nil {
			return messages.DashaLoaded{ProfileID: p.ID, Err: err}
		}
		chart, err := v.charts.Build(ctx, moment)
		if err != nil {
			return messages.DashaLoaded{ProfileID: p.ID, Err: err}
		}
		moon, ok := chart.Placement(domain.Moon)
		if !ok {
			return messages.DashaLoaded{ProfileID: p.ID, Err: errors.New("chart has no Moon placement")}
		}

		birth := moment.UTC
		majors, err := v.dasha.Timeline(driving.DashaRequest{
			MoonLongitude: moon.Longitude,
			Birth:         birth,
			From:          birth,
			To:            birth.AddDate(domain.VimshottariYears, 0, 0),
			Depth:         int(domain.LevelMaha),
			MaxCycles:     1,
		})
		if err != nil {
			return messages.DashaLoaded{ProfileID: p.ID, Err: err}
		}

		// Nothing runs before birth; show only the major periods then.
		var running []domain.DashaPeriod
		if !at.Before(birth) {
			running, err = v.dasha.Current(moon.Longitude, birth, at, depth)
			if err != nil {
				return messages.DashaLoaded{ProfileID: p.ID, Err: err}
			}
		}
		return messages.DashaLoaded{ProfileID: p.ID, Running: running, Majors: majors}
	}
}

// Update handles messages for the dasha view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DashaLoaded:
		if v.profile == nil || msg.ProfileID != v.profile.ID {
			return v, nil
		}
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.running = msg.Running
		v.majors = msg.Majors
		v.bar.Clear()
		v.bar.SetMessage(fmt.Sprintf("Depth %d (%s)", v.depth, domain.DashaLevel(v.depth)))
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewProfiles}
			}
		case keymap.Matches(key, v.keymap.Chart):
			if v.profile == nil {
				return v, nil
			}
			p := *v.profile
			return v, func() tea.Msg {
				return messages.ProfileSelected{Profile: p, View: messages.ViewChart}
			}
		case keymap.Matches(key, v.keymap.Deeper):
			if v.depth < domain.MaxDashaDepth {
				v.depth++
				return v, v.load()
			}
		case keymap.Matches(key, v.keymap.Shallower):
			if v.depth > 1 {
				v.depth--
				return v, v.load()
			}
		case keymap.Matches(key, v.keymap.Refresh):
			return v, v.load()
		}
	}

	return v, nil
}

// View renders the dasha view.
func (v *View) View() string {
	var b strings.Builder

	if v.profile == nil {
		b.WriteString(v.styles.Title.Render("Dasha"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No profile selected."))
		return b.String()
	}

	b.WriteString(v.styles.Title.Render("Vimshottari Dasha: " + v.profile.Name))
	b.WriteString("\n\n")

	if len(v.running) > 0 {
		b.WriteString(v.styles.Subtitle.Render("Running at " + v.at.Format(time.DateOnly)))
		b.WriteString("\n")
		b.WriteString(v.renderRunning())
		b.WriteString("\n\n")
	}
	if len(v.majors) > 0 {
		b.WriteString(v.styles.Subtitle.Render("Major periods"))
		b.WriteString("\n")
		b.WriteString(v.renderMajors())
		b.WriteString("\n\n")
	}

	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(v.styles.Theme().Border)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return v.styles.TableHeader
			}
			return v.styles.TableCell
		})
}

func (v *View) renderRunning() string {
	t := v.newTable("Level", "Lord", "Start", "End", "Ends")
	for _, p := range v.running {
		t.Row(p.Level.String(), p.Lord.String(),
			p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly),
			humanize.RelTime(p.End, v.at, "ago", "from now"))
	}
	return t.String()
}

func (v *View) renderMajors() string {
	t := v.newTable("Lord", "Start", "End", "")
	for _, p := range v.majors {
		mark := ""
		if p.Contains(v.at) {
			mark = v.styles.Running.Render("now")
		}
		t.Row(p.Lord.String(), p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly), mark)
	}
	return t.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.SetWidth(width)
}

// Running returns the periods running at the last computed instant.
func (v *View) Running() []domain.DashaPeriod {
	return v.running
}

// Majors returns the major periods of the first cycle.
func (v *View) Majors() []domain.DashaPeriod {
	return v.majors
}
