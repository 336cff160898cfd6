package driving

import "github.com/custodia-labs/jyotish-cli/internal/core/domain"

// MatchService scores compatibility between two charts.
type MatchService interface {
	// Score computes the Ashta Kuta axes from the two Moon placements.
	// Returns domain.ErrUnscorableAxis when a lookup table has no entry.
	Score(a, b *domain.Chart) (*domain.MatchResult, error)
}
