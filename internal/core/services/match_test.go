package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// moonChart builds a chart whose Moon sits at a sidereal longitude.
func moonChart(moon float64) *domain.Chart {
	chart := &domain.Chart{Ascendant: domain.Ascendant{Sign: domain.Aries}}
	for _, b := range domain.AllBodies() {
		lon := 0.0
		if b == domain.Moon {
			lon = moon
		}
		chart.Placements = append(chart.Placements, domain.PlaceSidereal(b, lon, false, domain.Aries))
	}
	return chart
}

func TestMatchEngine_SameMoon(t *testing.T) {
	engine := NewMatchEngine()

	result, err := engine.Score(moonChart(bharaniMoon), moonChart(bharaniMoon))

	require.NoError(t, err)
	want := map[string]float64{
		domain.AxisVarna:       1,
		domain.AxisVashya:      2,
		domain.AxisTara:        3,
		domain.AxisYoni:        4,
		domain.AxisGrahaMaitri: 5,
		domain.AxisGana:        6,
		domain.AxisBhakoot:     7,
		domain.AxisNadi:        0,
	}
	require.Len(t, result.Scores, len(want))
	for axis, score := range want {
		got, ok := result.Score(axis)
		require.True(t, ok, axis)
		assert.Equal(t, score, got.Score, axis)
	}
	assert.Equal(t, 28.0, result.Total)
	assert.Equal(t, 36.0, result.Max)
	assert.Equal(t, 18.0, result.Threshold)
	assert.True(t, result.Passed())
}

func TestMatchEngine_AxisOrderAndMaxima(t *testing.T) {
	engine := NewMatchEngine()

	result, err := engine.Score(moonChart(5), moonChart(200))
	require.NoError(t, err)

	axes := []string{
		domain.AxisVarna, domain.AxisVashya, domain.AxisTara, domain.AxisYoni,
		domain.AxisGrahaMaitri, domain.AxisGana, domain.AxisBhakoot, domain.AxisNadi,
	}
	var maxSum float64
	for i, s := range result.Scores {
		assert.Equal(t, axes[i], s.Axis)
		assert.Equal(t, float64(i+1), s.Max)
		assert.Equal(t, s.Axis != domain.AxisVarna, s.Symmetric)
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, s.Max)
		maxSum += s.Max
	}
	assert.Equal(t, domain.MatchMaxScore, maxSum)
}

func TestMatchEngine_SymmetricAxes(t *testing.T) {
	engine := NewMatchEngine()

	for i := range domain.NakshatraCount {
		for j := range domain.NakshatraCount {
			a := moonChart(float64(i)*domain.NakshatraSpan + 1)
			b := moonChart(float64(j)*domain.NakshatraSpan + 7)

			ab, err := engine.Score(a, b)
			require.NoError(t, err)
			ba, err := engine.Score(b, a)
			require.NoError(t, err)

			var total float64
			for k, s := range ab.Scores {
				total += s.Score
				if s.Symmetric {
					assert.Equal(t, s.Score, ba.Scores[k].Score, "%s for %d/%d", s.Axis, i, j)
				}
			}
			assert.Equal(t, total, ab.Total)
		}
	}
}

func TestMatchEngine_VarnaAsymmetric(t *testing.T) {
	engine := NewMatchEngine()
	aries := moonChart(10)   // Kshatriya
	cancer := moonChart(100) // Brahmin

	ab, err := engine.Score(aries, cancer)
	require.NoError(t, err)
	ba, err := engine.Score(cancer, aries)
	require.NoError(t, err)

	varnaAB, _ := ab.Score(domain.AxisVarna)
	varnaBA, _ := ba.Score(domain.AxisVarna)
	assert.Equal(t, 1.0, varnaAB.Score)
	assert.Equal(t, 0.0, varnaBA.Score)
	assert.False(t, varnaAB.Symmetric)
}

func TestMatchEngine_BhakootDosha(t *testing.T) {
	engine := NewMatchEngine()

	tests := []struct {
		name  string
		moonB float64
		want  float64
	}{
		{"2/12", 40, 0},
		{"12/2", 340, 0},
		{"6/8", 160, 0},
		{"8/6", 220, 0},
		{"5/9", 130, 7},
		{"9/5", 250, 7},
		{"3/11", 70, 7},
		{"4/10", 100, 7},
		{"7/7", 190, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Score(moonChart(10), moonChart(tt.moonB))
			require.NoError(t, err)
			s, _ := result.Score(domain.AxisBhakoot)
			assert.Equal(t, tt.want, s.Score)
		})
	}
}

func TestMatchEngine_AxisScores(t *testing.T) {
	engine := NewMatchEngine()
	ashlesha := 8*domain.NakshatraSpan + 5

	tests := []struct {
		name         string
		moonA, moonB float64
		axis         string
		want         float64
	}{
		{"varna Shudra under Brahmin", 70, 100, domain.AxisVarna, 1},
		{"varna Brahmin over Shudra", 100, 70, domain.AxisVarna, 0},
		{"vashya same group", 10, 40, domain.AxisVashya, 2},
		{"vashya across groups", 10, 70, domain.AxisVashya, 1},
		{"bhakoot Aries to Leo", 10, 130, domain.AxisBhakoot, 7},
		{"maitri Sun and Mercury", 130, 70, domain.AxisGrahaMaitri, 1},
		{"maitri Mars and Jupiter", 10, 250, domain.AxisGrahaMaitri, 5},
		{"maitri Venus and Mars", 40, 10, domain.AxisGrahaMaitri, 3},
		{"tara ninth from Ashwini", 5, ashlesha, domain.AxisTara, 1.5},
		{"tara third from Ashwini", 5, 2*domain.NakshatraSpan + 5, domain.AxisTara, 1.5},
		{"yoni repeats after fourteen", 5, 14*domain.NakshatraSpan + 5, domain.AxisYoni, 4},
		{"yoni differs", 5, bharaniMoon, domain.AxisYoni, 2},
		{"gana Deva and Rakshasa", 5, 2*domain.NakshatraSpan + 5, domain.AxisGana, 0},
		{"gana Deva and Manushya", 5, bharaniMoon, domain.AxisGana, 5},
		{"gana Manushya and Rakshasa", bharaniMoon, 2*domain.NakshatraSpan + 5, domain.AxisGana, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Score(moonChart(tt.moonA), moonChart(tt.moonB))
			require.NoError(t, err)
			s, ok := result.Score(tt.axis)
			require.True(t, ok)
			assert.Equal(t, tt.want, s.Score)
		})
	}
}

func TestMatchEngine_NadiDiffers(t *testing.T) {
	engine := NewMatchEngine()

	// Ashwini (Adi) against Bharani (Madhya).
	result, err := engine.Score(moonChart(5), moonChart(bharaniMoon))
	require.NoError(t, err)

	s, _ := result.Score(domain.AxisNadi)
	assert.Equal(t, 8.0, s.Score)
}

func TestMatchEngine_MissingMoonIsUnscorable(t *testing.T) {
	engine := NewMatchEngine()
	noMoon := &domain.Chart{}

	_, err := engine.Score(moonChart(10), noMoon)

	assert.ErrorIs(t, err, domain.ErrUnscorableAxis)
	var axisErr *domain.AxisError
	assert.ErrorAs(t, err, &axisErr)
}

func TestMatchEngine_OutOfTableKeyIsUnscorable(t *testing.T) {
	engine := NewMatchEngine()
	broken := moonChart(10)
	broken.Placements[domain.Moon].Nakshatra = domain.Nakshatra(40)

	_, err := engine.Score(moonChart(10), broken)

	require.ErrorIs(t, err, domain.ErrUnscorableAxis)
	assert.Contains(t, err.Error(), domain.AxisTara)
}

func TestMatchEngine_NilChart(t *testing.T) {
	_, err := NewMatchEngine().Score(nil, moonChart(1))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
