// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Up and Down move the cursor in a list.
	Up   key.Binding
	Down key.Binding

	// Select opens the item under the cursor.
	Select key.Binding

	// Chart and Dasha switch the open profile between views.
	Chart key.Binding
	Dasha key.Binding

	// Refresh reloads the current view.
	Refresh key.Binding

	// Deeper and Shallower change the dasha depth shown.
	Deeper    key.Binding
	Shallower key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "chart"),
		),
		Chart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chart"),
		),
		Dasha: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dasha"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Deeper: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "deeper"),
		),
		Shallower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shallower"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ProfilesHelp returns keybindings for the profile list.
func (k *KeyMap) ProfilesHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Dasha, k.Back}
}

// ChartHelp returns keybindings for the chart view.
func (k *KeyMap) ChartHelp() []key.Binding {
	return []key.Binding{k.Dasha, k.Refresh, k.Back}
}

// DashaHelp returns keybindings for the dasha view.
func (k *KeyMap) DashaHelp() []key.Binding {
	return []key.Binding{k.Deeper, k.Shallower, k.Chart, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Chart, k.Dasha, k.Refresh},
		{k.Deeper, k.Shallower},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
