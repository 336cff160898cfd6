package services

import (
	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// Ensure YogaDetector implements the interface.
var _ driving.YogaService = (*YogaDetector)(nil)

// YogaDetector evaluates deterministic yoga rules against a chart.
type YogaDetector struct {
	rules []domain.YogaRule
}

// NewYogaDetector creates a detector. Nil rules use the built-in set.
func NewYogaDetector(rules []domain.YogaRule) *YogaDetector {
	if rules == nil {
		rules = domain.DefaultYogaRules()
	}
	return &YogaDetector{rules: rules}
}

// Detect returns the yogas present in the chart, in rule order.
func (d *YogaDetector) Detect(chart *domain.Chart) []domain.Yoga {
	if chart == nil {
		return nil
	}
	var out []domain.Yoga
	for _, rule := range d.rules {
		if matchesRule(chart, rule) {
			out = append(out, domain.Yoga{
				Name:        rule.Name,
				Description: rule.Description,
				Bodies:      append([]domain.Body(nil), rule.Bodies...),
			})
		}
	}
	return out
}

func matchesRule(chart *domain.Chart, rule domain.YogaRule) bool {
	if len(rule.Bodies) == 0 {
		return false
	}
	switch rule.Condition {
	case domain.YogaSameHouse:
		first, ok := chart.Placement(rule.Bodies[0])
		if !ok {
			return false
		}
		for _, b := range rule.Bodies[1:] {
			p, ok := chart.Placement(b)
			if !ok || p.House != first.House {
				return false
			}
		}
		return true

	case domain.YogaKendraFromMoon:
		moon, ok := chart.MoonSign()
		if !ok {
			return false
		}
		p, ok := chart.Placement(rule.Bodies[0])
		if !ok {
			return false
		}
		switch domain.HouseFrom(p.Sign, moon) {
		case 1, 4, 7, 10:
			return true
		}
		return false

	case domain.YogaMoonUnflanked:
		moon, ok := chart.MoonSign()
		if !ok {
			return false
		}
		for _, p := range chart.Placements {
			if p.Body == domain.Moon || p.Body == domain.Sun || p.Body.IsNode() {
				continue
			}
			switch domain.HouseFrom(p.Sign, moon) {
			case 2, 12:
				return false
			}
		}
		return true
	}
	return false
}
