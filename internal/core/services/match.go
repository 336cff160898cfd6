package services

import (
	"fmt"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// Ensure MatchEngine implements the interface.
var _ driving.MatchService = (*MatchEngine)(nil)

// MatchEngine scores Ashta Kuta compatibility from two Moon placements.
// Varna is the only directional axis: it awards its point when chart A's
// class does not outrank chart B's.
type MatchEngine struct{}

// NewMatchEngine creates a match engine.
func NewMatchEngine() *MatchEngine {
	return &MatchEngine{}
}

// kutaAxis scores one axis from the two Moon placements.
type kutaAxis struct {
	name      string
	max       float64
	symmetric bool
	score     func(a, b domain.SiderealPlacement) (float64, string, error)
}

var kutaAxes = []kutaAxis{
	{domain.AxisVarna, 1, false, scoreVarna},
	{domain.AxisVashya, 2, true, scoreVashya},
	{domain.AxisTara, 3, true, scoreTara},
	{domain.AxisYoni, 4, true, scoreYoni},
	{domain.AxisGrahaMaitri, 5, true, scoreMaitri},
	{domain.AxisGana, 6, true, scoreGana},
	{domain.AxisBhakoot, 7, true, scoreBhakoot},
	{domain.AxisNadi, 8, true, scoreNadi},
}

// Score computes all eight axes. Any lookup miss fails the whole match.
func (m *MatchEngine) Score(a, b *domain.Chart) (*domain.MatchResult, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: two charts are required", domain.ErrInvalidInput)
	}
	moonA, ok := a.Placement(domain.Moon)
	if !ok {
		return nil, &domain.AxisError{Axis: "Moon", Detail: "first chart has no Moon placement"}
	}
	moonB, ok := b.Placement(domain.Moon)
	if !ok {
		return nil, &domain.AxisError{Axis: "Moon", Detail: "second chart has no Moon placement"}
	}

	result := &domain.MatchResult{
		ChartA:    a,
		ChartB:    b,
		Scores:    make([]domain.KutaScore, 0, len(kutaAxes)),
		Max:       domain.MatchMaxScore,
		Threshold: domain.MatchPassThreshold,
	}
	for _, axis := range kutaAxes {
		score, detail, err := axis.score(moonA, moonB)
		if err != nil {
			return nil, err
		}
		result.Scores = append(result.Scores, domain.KutaScore{
			Axis:      axis.name,
			Score:     score,
			Max:       axis.max,
			Symmetric: axis.symmetric,
			Detail:    detail,
		})
		result.Total += score
	}
	return result, nil
}

func unscorable(axis, format string, args ...any) error {
	return &domain.AxisError{Axis: axis, Detail: fmt.Sprintf(format, args...)}
}

func scoreVarna(a, b domain.SiderealPlacement) (float64, string, error) {
	va, okA := domain.VarnaOf(a.Sign)
	vb, okB := domain.VarnaOf(b.Sign)
	if !okA || !okB {
		return 0, "", unscorable(domain.AxisVarna, "no varna for signs %d/%d", int(a.Sign), int(b.Sign))
	}
	detail := fmt.Sprintf("%s / %s", va, vb)
	if va <= vb {
		return 1, detail, nil
	}
	return 0, detail, nil
}

func scoreVashya(a, b domain.SiderealPlacement) (float64, string, error) {
	va, okA := domain.VashyaOf(a.Sign)
	vb, okB := domain.VashyaOf(b.Sign)
	if !okA || !okB {
		return 0, "", unscorable(domain.AxisVashya, "no vashya for signs %d/%d", int(a.Sign), int(b.Sign))
	}
	points, ok := domain.VashyaPoints(va, vb)
	if !ok {
		return 0, "", unscorable(domain.AxisVashya, "no entry for %s/%s", va, vb)
	}
	return points, fmt.Sprintf("%s / %s", va, vb), nil
}

func scoreTara(a, b domain.SiderealPlacement) (float64, string, error) {
	if !a.Nakshatra.IsValid() || !b.Nakshatra.IsValid() {
		return 0, "", unscorable(domain.AxisTara, "nakshatra out of range")
	}
	ab := domain.TaraOf(a.Nakshatra, b.Nakshatra)
	ba := domain.TaraOf(b.Nakshatra, a.Nakshatra)
	var points float64
	for _, tara := range []int{ab, ba} {
		if !domain.IsInauspiciousTara(tara) {
			points += 1.5
		}
	}
	return points, fmt.Sprintf("tara %d / %d", ab, ba), nil
}

func scoreYoni(a, b domain.SiderealPlacement) (float64, string, error) {
	ya, okA := domain.YoniOf(a.Nakshatra)
	yb, okB := domain.YoniOf(b.Nakshatra)
	if !okA || !okB {
		return 0, "", unscorable(domain.AxisYoni, "no yoni for nakshatras %d/%d", int(a.Nakshatra), int(b.Nakshatra))
	}
	points, ok := domain.YoniPoints(ya, yb)
	if !ok {
		return 0, "", unscorable(domain.AxisYoni, "no entry for %s/%s", ya, yb)
	}
	return points, fmt.Sprintf("%s / %s", ya, yb), nil
}

func scoreMaitri(a, b domain.SiderealPlacement) (float64, string, error) {
	if !a.Sign.IsValid() || !b.Sign.IsValid() {
		return 0, "", unscorable(domain.AxisGrahaMaitri, "sign out of range")
	}
	la, lb := a.Sign.Lord(), b.Sign.Lord()
	points, ok := domain.MaitriPoints(la, lb)
	if !ok {
		return 0, "", unscorable(domain.AxisGrahaMaitri, "no relationship between %s and %s", la, lb)
	}
	return points, fmt.Sprintf("%s / %s", la, lb), nil
}

func scoreGana(a, b domain.SiderealPlacement) (float64, string, error) {
	ga, okA := domain.GanaOf(a.Nakshatra)
	gb, okB := domain.GanaOf(b.Nakshatra)
	if !okA || !okB {
		return 0, "", unscorable(domain.AxisGana, "no gana for nakshatras %d/%d", int(a.Nakshatra), int(b.Nakshatra))
	}
	points, ok := domain.GanaPoints(ga, gb)
	if !ok {
		return 0, "", unscorable(domain.AxisGana, "no entry for %s/%s", ga, gb)
	}
	return points, fmt.Sprintf("%s / %s", ga, gb), nil
}

func scoreBhakoot(a, b domain.SiderealPlacement) (float64, string, error) {
	if !a.Sign.IsValid() || !b.Sign.IsValid() {
		return 0, "", unscorable(domain.AxisBhakoot, "sign out of range")
	}
	ab := domain.SignDistance(a.Sign, b.Sign)
	ba := domain.SignDistance(b.Sign, a.Sign)
	detail := fmt.Sprintf("%d/%d", ab, ba)
	if domain.IsBhakootDosha(ab) {
		return 0, detail, nil
	}
	return 7, detail, nil
}

func scoreNadi(a, b domain.SiderealPlacement) (float64, string, error) {
	na, okA := domain.NadiOf(a.Nakshatra)
	nb, okB := domain.NadiOf(b.Nakshatra)
	if !okA || !okB {
		return 0, "", unscorable(domain.AxisNadi, "no nadi for nakshatras %d/%d", int(a.Nakshatra), int(b.Nakshatra))
	}
	detail := fmt.Sprintf("%s / %s", na, nb)
	if na == nb {
		return 0, detail, nil
	}
	return 8, detail, nil
}
