package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

func TestYogaCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")

	out, err := execute(t, "yoga", "--profile", "Asha")
	require.NoError(t, err)
	assert.Contains(t, out, "Yogas for Asha")
	assert.Contains(t, out, "Budha-Aditya")
	assert.Contains(t, out, "Sun, Mercury")
	assert.NotContains(t, out, "Kemadruma")
}

func TestYogaCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")

	out, err := execute(t, "--json", "yoga", "--profile", "Asha")
	require.NoError(t, err)

	var yogas []domain.Yoga
	require.NoError(t, json.Unmarshal([]byte(out), &yogas))
	require.Len(t, yogas, 1)
	assert.Equal(t, "Budha-Aditya", yogas[0].Name)
	assert.Equal(t, []domain.Body{domain.Sun, domain.Mercury}, yogas[0].Bodies)
}

func TestYogaCmd_NoService(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "yoga", "--date", "1990-04-15")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yoga service not configured")
}
