// Package chart provides the birth chart view for the TUI.
package chart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// View shows the sidereal chart of one profile.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	charts driving.ChartService
	yogas  driving.YogaService
	ctx    context.Context

	profile  *domain.Profile
	chart    *domain.Chart
	detected []domain.Yoga
	bar      *status.Bar

	width  int
	height int
}

// NewView creates a new chart view. yogas may be nil.
func NewView(s *styles.Styles, charts driving.ChartService, yogas driving.YogaService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.ChartHelp())

	return &View{
		styles: s,
		keymap: km,
		charts: charts,
		yogas:  yogas,
		ctx:    context.Background(),
		bar:    bar,
		width:  80,
		height: 24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetProfile switches to a profile and starts computing its chart.
func (v *View) SetProfile(p domain.Profile) tea.Cmd {
	v.profile = &p
	v.chart = nil
	v.detected = nil
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage("Casting chart...")
	return v.load()
}

func (v *View) load() tea.Cmd {
	if v.profile == nil {
		return nil
	}
	p := *v.profile
	ctx := v.ctx
	return func() tea.Msg {
		if v.charts == nil {
			return messages.ChartLoaded{ProfileID: p.ID, Err: errors.New("chart service not available")}
		}
		moment, err := p.Birth.Moment()
		if err != nil {
			return messages.ChartLoaded{ProfileID: p.ID, Err: err}
		}
		chart, err := v.charts.Build(ctx, moment)
		if err != nil {
			return messages.ChartLoaded{ProfileID: p.ID, Err: err}
		}
		var yogas []domain.Yoga
		if v.yogas != nil {
			yogas = v.yogas.Detect(chart)
		}
		return messages.ChartLoaded{ProfileID: p.ID, Chart: chart, Yogas: yogas}
	}
}

// Update handles messages for the chart view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ChartLoaded:
		// Drop results for a profile that is no longer shown.
		if v.profile == nil || msg.ProfileID != v.profile.ID {
			return v, nil
		}
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.chart = msg.Chart
		v.detected = msg.Yogas
		v.bar.Clear()
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewProfiles}
			}
		case keymap.Matches(key, v.keymap.Dasha):
			if v.profile == nil {
				return v, nil
			}
			p := *v.profile
			return v, func() tea.Msg {
				return messages.ProfileSelected{Profile: p, View: messages.ViewDasha}
			}
		case keymap.Matches(key, v.keymap.Refresh):
			if v.profile == nil {
				return v, nil
			}
			return v, v.SetProfile(*v.profile)
		}
	}

	return v, nil
}

// View renders the chart view.
func (v *View) View() string {
	var b strings.Builder

	if v.profile == nil {
		b.WriteString(v.styles.Title.Render("Chart"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No profile selected."))
		return b.String()
	}

	b.WriteString(v.styles.Title.Render("Chart: " + v.profile.Name))
	b.WriteString("\n\n")

	if v.chart != nil {
		b.WriteString(v.renderHeader())
		b.WriteString("\n\n")
		b.WriteString(v.renderPlacements())
		b.WriteString("\n")
		b.WriteString(v.renderYogas())
		b.WriteString("\n")
	}

	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderHeader() string {
	c := v.chart
	lines := []string{
		fmt.Sprintf("Local time: %s", c.Moment.Local().Format(time.DateTime+" MST")),
		fmt.Sprintf("Ayanamsa:   %s", dms(c.Ayanamsa)),
		fmt.Sprintf("Ascendant:  %s %s", c.Ascendant.Sign, dms(c.Ascendant.Sidereal-float64(c.Ascendant.Sign)*30)),
	}
	return v.styles.Normal.Render(strings.Join(lines, "\n"))
}

func (v *View) renderPlacements() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(v.styles.Theme().Border)).
		Headers("Body", "Sign", "Degree", "Nakshatra", "Pada", "House", "").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return v.styles.TableHeader
			}
			return v.styles.TableCell
		})

	for _, p := range v.chart.Placements {
		motion := ""
		if p.Retrograde {
			motion = v.styles.Retrograde.Render("R")
		}
		t.Row(p.Body.String(), p.Sign.String(), dms(p.Degree), p.Nakshatra.String(),
			strconv.Itoa(p.Pada), strconv.Itoa(p.House), motion)
	}
	return t.String()
}

func (v *View) renderYogas() string {
	if v.yogas == nil {
		return ""
	}
	if len(v.detected) == 0 {
		return v.styles.Muted.Render("No yogas detected.")
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Yogas"))
	b.WriteString("\n")
	for _, y := range v.detected {
		bodies := make([]string, len(y.Bodies))
		for i, body := range y.Bodies {
			bodies[i] = body.String()
		}
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %s (%s)", y.Name, strings.Join(bodies, ", "))))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("    " + y.Description))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.SetWidth(width)
}

// Chart returns the chart on display, or nil while computing.
func (v *View) Chart() *domain.Chart {
	return v.chart
}

// dms renders degrees as 12°03'45".
func dms(deg float64) string {
	total := int64(math.Round(deg * 3600))
	return fmt.Sprintf("%d°%02d'%02d\"", total/3600, (total%3600)/60, total%60)
}
