// Package profiles provides the stored profile list view for the TUI.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// View lists stored profiles and opens one in the chart or dasha view.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.ProfileService
	ctx     context.Context

	list *list.ProfileList
	bar  *status.Bar

	width  int
	height int
}

// NewView creates a new profiles view.
func NewView(s *styles.Styles, service driving.ProfileService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.ProfilesHelp())

	return &View{
		styles:  s,
		keymap:  km,
		service: service,
		ctx:     context.Background(),
		list:    list.NewProfileList(s),
		bar:     bar,
		width:   80,
		height:  24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the profile list.
func (v *View) Init() tea.Cmd {
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage("Loading profiles...")
	return v.loadProfiles()
}

func (v *View) loadProfiles() tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.service == nil {
			return messages.ProfilesLoaded{Err: errors.New("profile service not available")}
		}
		profiles, err := v.service.List(ctx)
		return messages.ProfilesLoaded{Profiles: profiles, Err: err}
	}
}

// Update handles messages for the profiles view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProfilesLoaded:
		if msg.Err != nil {
			v.bar.SetError(msg.Err)
			return v, nil
		}
		v.list.SetProfiles(msg.Profiles)
		v.bar.Clear()
		v.bar.SetMessage(fmt.Sprintf("%d profiles", len(msg.Profiles)))
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, v.keymap.Select), keymap.Matches(key, v.keymap.Chart):
		return v, v.open(messages.ViewChart)
	case keymap.Matches(key, v.keymap.Dasha):
		return v, v.open(messages.ViewDasha)
	case keymap.Matches(key, v.keymap.Refresh):
		return v, v.Init()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) open(target messages.ViewType) tea.Cmd {
	p := v.list.SelectedProfile()
	if p == nil {
		return nil
	}
	profile := *p
	return func() tea.Msg {
		return messages.ProfileSelected{Profile: profile, View: target}
	}
}

// View renders the profiles view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Profiles"))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.bar.View())

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-4)
	v.bar.SetWidth(width)
}

// Count returns the number of listed profiles.
func (v *View) Count() int {
	return v.list.Count()
}
