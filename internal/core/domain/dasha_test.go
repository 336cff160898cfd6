package domain

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVimshottariYears_SumToCycle(t *testing.T) {
	var sum int64
	for _, lord := range VimshottariOrder() {
		sum += VimshottariYearsOf(lord)
	}
	assert.Equal(t, int64(VimshottariYears), sum)
}

func TestVimshottariOrder(t *testing.T) {
	order := VimshottariOrder()
	assert.Equal(t, []DashaLord{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}, order)

	// Returned slice is a copy.
	order[0] = Sun
	assert.Equal(t, Ketu, VimshottariOrder()[0])

	assert.Equal(t, 1, VimshottariIndex(Venus))
	assert.Equal(t, -1, VimshottariIndex(Body(42)))
}

func TestDashaLevel(t *testing.T) {
	assert.Equal(t, "maha", LevelMaha.String())
	assert.Equal(t, "prana", LevelPrana.String())
	assert.False(t, DashaLevel(0).IsValid())
	assert.False(t, DashaLevel(6).IsValid())
	assert.Equal(t, MaxDashaDepth, int(LevelPrana))
}

func TestDashaPeriod_ExactOffsetsAreCopies(t *testing.T) {
	start := big.NewRat(1, 2)
	end := big.NewRat(21, 2)
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

	p := NewDashaPeriod("0.Venus", "", Venus, LevelMaha, birth, birth.AddDate(10, 0, 0), start, end)
	start.SetInt64(99)
	p.EndYears().SetInt64(99)

	assert.Equal(t, 0, p.StartYears().Cmp(big.NewRat(1, 2)))
	assert.Equal(t, 0, p.EndYears().Cmp(big.NewRat(21, 2)))
	assert.Equal(t, 0, p.Years().Cmp(big.NewRat(10, 1)))
}

func TestDashaPeriod_Contains(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	p := NewDashaPeriod("x", "", Sun, LevelAntar, start, end, new(big.Rat), big.NewRat(1, 1))

	assert.True(t, p.Contains(start))
	assert.True(t, p.Contains(end.Add(-time.Nanosecond)))
	assert.False(t, p.Contains(end))
	assert.Equal(t, "antar Sun 2000-01-01 -> 2001-01-01", p.String())
}

func TestDashaPeriod_ZeroValueOffsets(t *testing.T) {
	var p DashaPeriod
	assert.Equal(t, 0, p.Years().Sign())
}

func TestDashaLevel_UnmarshalText(t *testing.T) {
	var l DashaLevel
	require.NoError(t, l.UnmarshalText([]byte("sookshma")))
	assert.Equal(t, LevelSookshma, l)
	assert.ErrorIs(t, l.UnmarshalText([]byte("Unknown")), ErrInvalidInput)
}
