package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

func TestTransitCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")

	out, err := execute(t, "transit", "--profile", "Asha", "--date", "2024-01-01", "--frame", "natal")
	require.NoError(t, err)
	assert.Contains(t, out, "Transits for Asha")
	assert.Contains(t, out, "Natal Ascendant")
	assert.Contains(t, out, "From Moon")
}

func TestTransitCmd_FrameDefaultsToSettings(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")
	require.NoError(t, settingsService.SetTransitFrame(domain.TransitFrameTransit))

	out, err := execute(t, "--json", "transit", "--profile", "Asha", "--date", "2024-01-01")
	require.NoError(t, err)

	var snap domain.TransitSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, domain.TransitFrameTransit, snap.Frame)
	require.NotNil(t, snap.Chart)
	assert.Equal(t, snap.Chart.Ascendant.Sign, snap.ReferenceAscendant)
}

func TestTransitCmd_NatalFrameJSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")

	natalOut, err := execute(t, "--json", "chart", "--profile", "Asha")
	require.NoError(t, err)
	var natal domain.Chart
	require.NoError(t, json.Unmarshal([]byte(natalOut), &natal))

	out, err := execute(t, "--json", "transit", "--profile", "Asha", "--date", "2024-01-01", "--frame", "natal")
	require.NoError(t, err)

	var snap domain.TransitSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, domain.TransitFrameNatal, snap.Frame)
	assert.Equal(t, natal.Ascendant.Sign, snap.ReferenceAscendant)
	require.Len(t, snap.Positions, domain.BodyCount)

	// Saturn in Capricorn is the 9th sign from a Taurus Moon
	for _, p := range snap.Positions {
		if p.Body == domain.Saturn {
			assert.Equal(t, domain.Capricorn, p.Sign)
			assert.Equal(t, 9, p.HouseFromMoon)
		}
		assert.Equal(t, domain.HouseFrom(p.Sign, natal.Ascendant.Sign), p.House)
	}
}

func TestTransitCmd_InvalidFrame(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")

	_, err := execute(t, "transit", "--profile", "Asha", "--frame", "equal")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransitCmd_RequiresProfile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "transit", "--date", "2024-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile")
}

func TestTransitCmd_FrameWithoutSettings(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")
	settingsService = nil

	_, err := execute(t, "transit", "--profile", "Asha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--frame is required")
}
