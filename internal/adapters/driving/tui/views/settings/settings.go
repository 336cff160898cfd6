// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionBackend
	SectionAyanamsa
	SectionFrame
	SectionDepth
)

// overviewItems is the number of editable rows on the overview.
const overviewItems = 4

const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

var errNoService = errors.New("settings service not available")

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	section  Section
	selected int

	// csvFocused is true while the CSV path input has focus.
	csvFocused bool
	csvInput   *input.PathInput

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		csvInput:        input.NewPathInput(s, "CSV table"),
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.leaveSection()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.leaveSection()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionBackend:
		return v.handleBackendKeys(msg)
	case SectionAyanamsa:
		models := domain.AllAyanamsaModels()
		return v.handleChoiceKeys(msg, len(models), func(i int) tea.Cmd {
			return v.save(func(s driving.SettingsService) error { return s.SetAyanamsaModel(models[i]) })
		})
	case SectionFrame:
		frames := domain.AllTransitFrames()
		return v.handleChoiceKeys(msg, len(frames), func(i int) tea.Cmd {
			return v.save(func(s driving.SettingsService) error { return s.SetTransitFrame(frames[i]) })
		})
	case SectionDepth:
		return v.handleChoiceKeys(msg, domain.MaxDashaDepth, func(i int) tea.Cmd {
			return v.save(func(s driving.SettingsService) error { return s.SetDashaDepth(i + 1) })
		})
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < overviewItems-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		v.section = Section(v.selected + 1)
		v.selected = v.currentIndex()
	}
	return v, nil
}

func (v *View) handleChoiceKeys(msg tea.KeyMsg, count int, apply func(int) tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < count-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < count {
			return v, apply(v.selected)
		}
	}
	return v, nil
}

func (v *View) handleBackendKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	backends := domain.AllEphemerisBackends()

	if v.csvFocused {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.csvFocused = false
			v.csvInput.Blur()
			return v, nil
		case keyEnter:
			return v, v.saveBackend(backends[v.selected], v.csvInput.Value())
		default:
			var cmd tea.Cmd
			v.csvInput, cmd = v.csvInput.Update(msg)
			return v, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(backends)-1 {
			v.selected++
		}
	case keyTab:
		if backends[v.selected].RequiresTable() {
			v.csvFocused = true
			return v, v.csvInput.Focus()
		}
	case keyEnter:
		backend := backends[v.selected]
		if backend.RequiresTable() && v.csvInput.Value() == "" {
			v.csvFocused = true
			return v, v.csvInput.Focus()
		}
		return v, v.saveBackend(backend, v.csvInput.Value())
	}
	return v, nil
}

func (v *View) saveBackend(backend domain.EphemerisBackend, csvPath string) tea.Cmd {
	if !backend.RequiresTable() {
		csvPath = ""
	}
	return v.save(func(s driving.SettingsService) error {
		return s.SetEphemerisBackend(backend, csvPath)
	})
}

func (v *View) save(apply func(driving.SettingsService) error) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoService}
		}
		return messages.SettingsSaved{Err: apply(v.settingsService)}
	}
}

// leaveSection returns to the overview with the row of the section selected.
func (v *View) leaveSection() {
	if v.section != SectionOverview {
		v.selected = int(v.section) - 1
	}
	v.section = SectionOverview
	v.csvFocused = false
	v.csvInput.Blur()
}

// currentIndex returns the list index of the stored value of the section.
func (v *View) currentIndex() int {
	switch v.section {
	case SectionBackend:
		if v.settings.Ephemeris.Backend.RequiresTable() {
			v.csvInput.SetValue(v.settings.Ephemeris.CSVPath)
		}
		return indexOf(domain.AllEphemerisBackends(), v.settings.Ephemeris.Backend)
	case SectionAyanamsa:
		return indexOf(domain.AllAyanamsaModels(), v.settings.Ayanamsa)
	case SectionFrame:
		return indexOf(domain.AllTransitFrames(), v.settings.Transit.Frame)
	case SectionDepth:
		return max(v.settings.Dasha.Depth-1, 0)
	case SectionOverview:
	}
	return 0
}

func indexOf[T comparable](values []T, v T) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionBackend:
		b.WriteString(v.renderBackendSelect())
	case SectionAyanamsa:
		b.WriteString(v.renderChoices("Select Ayanamsa Model", descriptions(domain.AllAyanamsaModels()),
			indexOf(domain.AllAyanamsaModels(), v.settings.Ayanamsa)))
	case SectionFrame:
		b.WriteString(v.renderChoices("Select Transit Frame", descriptions(domain.AllTransitFrames()),
			indexOf(domain.AllTransitFrames(), v.settings.Transit.Frame)))
	case SectionDepth:
		levels := make([]string, domain.MaxDashaDepth)
		for i := range levels {
			levels[i] = fmt.Sprintf("%d %s", i+1, domain.DashaLevel(i+1))
		}
		b.WriteString(v.renderChoices("Select Dasha Depth", levels, v.settings.Dasha.Depth-1))
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	backend := v.settings.Ephemeris.Backend.Description()
	if v.settings.Ephemeris.Backend.RequiresTable() {
		path := v.settings.Ephemeris.CSVPath
		if path == "" {
			path = "not set"
		}
		backend = fmt.Sprintf("%s (%s)", backend, path)
	}

	items := []struct{ label, value string }{
		{"Ephemeris Backend", backend},
		{"Ayanamsa", v.settings.Ayanamsa.Description()},
		{"Transit Frame", v.settings.Transit.Frame.Description()},
		{"Dasha Depth", fmt.Sprintf("%d (%s)", v.settings.Dasha.Depth, domain.DashaLevel(v.settings.Dasha.Depth))},
	}

	for i, item := range items {
		line := fmt.Sprintf("%s: %s", item.label, item.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderBackendSelect() string {
	backends := domain.AllEphemerisBackends()

	var b strings.Builder
	b.WriteString(v.renderChoices("Select Ephemeris Backend", descriptions(backends),
		indexOf(backends, v.settings.Ephemeris.Backend)))

	if backends[v.selected].RequiresTable() {
		b.WriteString("\n")
		b.WriteString(v.csvInput.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderChoices(title string, options []string, current int) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	for i, opt := range options {
		marker := ""
		if i == current {
			marker = v.styles.Success.Render(" (current)")
		}
		if i == v.selected && !v.csvFocused {
			b.WriteString(v.styles.Selected.Render("> " + opt))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + opt))
		}
		b.WriteString(marker)
		b.WriteString("\n")
	}
	return b.String()
}

type described interface {
	Description() string
}

func descriptions[T described](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Description()
	}
	return out
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionBackend:
		if v.csvFocused {
			return v.styles.Help.Render("[tab] back to list  [enter] save  [esc] back")
		}
		return v.styles.Help.Render("[j/k] navigate  [tab] CSV path  [enter] select  [esc] back")
	case SectionAyanamsa, SectionFrame, SectionDepth:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	}
	return ""
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.csvInput.SetWidth(width)
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Reset returns the view to the overview.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.csvFocused = false
	v.err = nil
	v.csvInput.Reset()
}
