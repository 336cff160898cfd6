package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/views/chart"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/views/dasha"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/views/profiles"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView     *menu.View
	profilesView *profiles.View
	chartView    *chart.View
	dashaView    *dasha.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// selected is the profile open in the chart or dasha view.
	selected *domain.Profile

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	dashaView := dasha.NewView(s, ports.Charts, ports.Dasha)
	if ports.Settings != nil {
		if current, err := ports.Settings.Get(); err == nil {
			dashaView.SetDepth(current.Dasha.Depth)
		}
	}

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		profilesView: profiles.NewView(s, ports.Profiles),
		chartView:    chart.NewView(s, ports.Charts, ports.Yoga),
		dashaView:    dashaView,
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.profilesView.SetContext(ctx)
	a.chartView.SetContext(ctx)
	a.dashaView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("jyotish"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewProfiles:
			return a, a.profilesView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewChart:
			if a.selected != nil {
				return a, a.chartView.SetProfile(*a.selected)
			}
		case messages.ViewDasha:
			if a.selected != nil {
				return a, a.dashaView.SetProfile(*a.selected)
			}
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.ProfileSelected:
		profile := msg.Profile
		a.selected = &profile
		if msg.View == messages.ViewDasha {
			a.currentView = messages.ViewDasha
			return a, a.dashaView.SetProfile(profile)
		}
		a.currentView = messages.ViewChart
		return a, a.chartView.SetProfile(profile)

	case messages.ProfilesLoaded:
		a.profilesView, cmd = a.profilesView.Update(msg)
		return a, cmd

	case messages.ChartLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.chartView, cmd = a.chartView.Update(msg)
		return a, cmd

	case messages.DashaLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.dashaView, cmd = a.dashaView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		if msg.Err == nil && msg.Settings != nil {
			a.dashaView.SetDepth(msg.Settings.Dasha.Depth)
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewProfiles:
		a.profilesView, cmd = a.profilesView.Update(msg)
	case messages.ViewChart:
		a.chartView, cmd = a.chartView.Update(msg)
	case messages.ViewDasha:
		a.dashaView, cmd = a.dashaView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewProfiles:
		return a.profilesView.View()
	case messages.ViewChart:
		return a.chartView.View()
	case messages.ViewDasha:
		return a.dashaView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Profiles:
  j/k, ↑/↓    Move
  enter, c    Open chart
  d           Open dasha
  r           Reload

Chart:
  d           Switch to dasha
  r           Recompute

Dasha:
  +/-         Change depth of running periods
  c           Switch to chart

[esc] back to menu`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Selected returns the open profile, or nil.
func (a *App) Selected() *domain.Profile {
	return a.selected
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.profilesView.SetDimensions(width, height)
	a.chartView.SetDimensions(width, height)
	a.dashaView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
