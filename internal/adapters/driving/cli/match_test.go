package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

func TestMatchCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")
	createProfile(t, "Ravi")

	out, err := execute(t, "match", "--profile", "Asha", "--with", "Ravi")
	require.NoError(t, err)
	assert.Contains(t, out, "Ashta Kuta: Asha and Ravi")
	for _, axis := range []string{domain.AxisVarna, domain.AxisVashya, domain.AxisTara, domain.AxisYoni,
		domain.AxisGrahaMaitri, domain.AxisGana, domain.AxisBhakoot, domain.AxisNadi} {
		assert.Contains(t, out, axis)
	}
	assert.Contains(t, out, "Total:")
	assert.Contains(t, out, "/ 36")
}

func TestMatchCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")
	createProfile(t, "Ravi")

	out, err := execute(t, "--json", "match", "--profile", "Asha", "--with", "Ravi")
	require.NoError(t, err)

	var result domain.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Scores, 8)

	var sum float64
	for _, s := range result.Scores {
		sum += s.Score
	}
	assert.Equal(t, sum, result.Total)
	assert.Equal(t, domain.MatchMaxScore, result.Max)
	assert.Equal(t, domain.MatchPassThreshold, result.Threshold)
}

func TestMatchCmd_RequiresBothProfiles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")

	_, err := execute(t, "match", "--profile", "Asha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "with")
}

func TestMatchCmd_UnknownProfile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	createProfile(t, "Asha")

	_, err := execute(t, "match", "--profile", "Asha", "--with", "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "0", formatPoints(0))
	assert.Equal(t, "1.5", formatPoints(1.5))
	assert.Equal(t, "36", formatPoints(36))
}
