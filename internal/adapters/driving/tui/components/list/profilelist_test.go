package list

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

func testProfiles(n int) []domain.Profile {
	profiles := make([]domain.Profile, n)
	for i := range profiles {
		profiles[i] = domain.Profile{
			ID:   fmt.Sprintf("p-%d", i),
			Name: fmt.Sprintf("Person %d", i),
			Birth: domain.BirthDetails{
				Date:     "1990-04-15",
				Time:     "12:00",
				Zone:     "Asia/Kolkata",
				Location: domain.Location{Latitude: 28.6139, Longitude: 77.209},
			},
		}
	}
	return profiles
}

func TestNewProfileList(t *testing.T) {
	l := NewProfileList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.Equal(t, 0, l.Count())
	assert.Nil(t, l.SelectedProfile())
}

func TestProfileList_EmptyView(t *testing.T) {
	l := NewProfileList(nil)

	assert.Contains(t, l.View(), "No profiles")
}

func TestProfileList_View(t *testing.T) {
	l := NewProfileList(nil)
	l.SetProfiles(testProfiles(2))

	view := l.View()

	assert.Contains(t, view, "Profiles (2)")
	assert.Contains(t, view, "> Person 0")
	assert.Contains(t, view, "Person 1")
	assert.Contains(t, view, "1990-04-15 12:00 Asia/Kolkata")
	assert.Contains(t, view, "28.61, 77.21")
}

func TestProfileList_ViewShowsAge(t *testing.T) {
	profiles := testProfiles(1)
	profiles[0].CreatedAt = time.Now().Add(-3 * time.Hour)
	l := NewProfileList(nil)
	l.SetProfiles(profiles)

	assert.Contains(t, l.View(), "added 3 hours ago")
}

func TestProfileList_Navigation(t *testing.T) {
	l := NewProfileList(nil)
	l.SetProfiles(testProfiles(3))

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	// Bounded at the end.
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())
	assert.Equal(t, "p-2", l.SelectedProfile().ID)

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())
}

func TestProfileList_SetProfilesResetsCursor(t *testing.T) {
	l := NewProfileList(nil)
	l.SetProfiles(testProfiles(3))
	l.MoveDown()

	l.SetProfiles(testProfiles(2))

	assert.Equal(t, 0, l.Selected())
	assert.Len(t, l.Profiles(), 2)
}

func TestProfileList_ScrollsToCursor(t *testing.T) {
	l := NewProfileList(nil)
	l.SetProfiles(testProfiles(10))
	l.SetDimensions(80, 8) // two visible rows

	for range 5 {
		l.MoveDown()
	}
	view := l.View()

	assert.Contains(t, view, "> Person 5")
	assert.Contains(t, view, "Person 4")
	assert.NotContains(t, view, "Person 0")
}

func TestProfileList_TruncatesLongNames(t *testing.T) {
	profiles := testProfiles(1)
	profiles[0].Name = "A very long name that will not fit in a narrow terminal window"
	l := NewProfileList(nil)
	l.SetProfiles(profiles)
	l.SetDimensions(30, 10)

	assert.Contains(t, l.View(), "...")
}
