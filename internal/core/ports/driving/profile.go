package driving

import (
	"context"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// ProfileInput is the user-supplied data for a new profile.
type ProfileInput struct {
	Name      string  `validate:"required,max=128"`
	Date      string  `validate:"required,datetime=2006-01-02"`
	Time      string  `validate:"required,clock"`
	Zone      string  `validate:"required,zone"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Notes     string  `validate:"max=1024"`
}

// ProfileService manages stored birth profiles.
type ProfileService interface {
	// Create validates input, resolves the birth moment and stores a profile.
	Create(ctx context.Context, input ProfileInput) (*domain.Profile, error)

	// List returns all profiles.
	List(ctx context.Context) ([]domain.Profile, error)

	// Get retrieves a profile by ID or, failing that, by name.
	Get(ctx context.Context, ref string) (*domain.Profile, error)

	// Delete removes a profile by ID or name.
	Delete(ctx context.Context, ref string) error
}
