package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Len(t, bar.hints, 2)
}

func TestBar_View_Ready(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()

	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "q: quit")
	assert.Contains(t, view, "?: help")
}

func TestBar_View_Message(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetMessage("3 profiles")

	assert.Contains(t, bar.View(), "3 profiles")
}

func TestBar_View_Loading(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateLoading)

	assert.Contains(t, bar.View(), "Computing...")

	bar.SetMessage("Casting chart...")
	assert.Contains(t, bar.View(), "Casting chart...")
}

func TestBar_SetError(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetError(errors.New("outside ephemeris range"))

	assert.Equal(t, StateError, bar.State())
	assert.Contains(t, bar.View(), "Error: outside ephemeris range")
}

func TestBar_SetHints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)

	bar.SetHints(km.DashaHelp())
	view := bar.View()
	assert.Contains(t, view, "+: deeper")
	assert.Contains(t, view, "c: chart")

	bar.SetHints(nil)
	assert.Len(t, bar.hints, 2)
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetError(errors.New("boom"))

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}

func TestBar_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(10)

	assert.Equal(t, 10, bar.Width())
	assert.NotEmpty(t, bar.View())
}
