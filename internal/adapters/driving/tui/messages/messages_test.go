package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewProfiles, "profiles"},
		{ViewChart, "chart"},
		{ViewDasha, "dasha"},
		{ViewSettings, "settings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := make(map[ViewType]bool)
	for _, v := range []ViewType{ViewMenu, ViewProfiles, ViewChart, ViewDasha, ViewSettings, ViewHelp} {
		assert.False(t, seen[v], "duplicate view %s", v)
		seen[v] = true
	}
}

func TestProfileSelected_CarriesTarget(t *testing.T) {
	msg := ProfileSelected{Profile: domain.Profile{ID: "p-1", Name: "Asha"}, View: ViewDasha}

	assert.Equal(t, "Asha", msg.Profile.Name)
	assert.Equal(t, ViewDasha, msg.View)
}

func TestLoadedMessages_CarryErrors(t *testing.T) {
	err := errors.New("ephemeris unavailable")

	assert.Equal(t, err, ProfilesLoaded{Err: err}.Err)
	assert.Equal(t, err, ChartLoaded{Err: err}.Err)
	assert.Equal(t, err, DashaLoaded{Err: err}.Err)
	assert.Equal(t, err, SettingsLoaded{Err: err}.Err)
	assert.Equal(t, err, SettingsSaved{Err: err}.Err)
}
