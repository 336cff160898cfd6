package driven

import (
	"context"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// ProfileStore persists birth profiles.
// Backed by SQLite for durable storage.
type ProfileStore interface {
	// Save stores or updates a profile.
	Save(ctx context.Context, profile domain.Profile) error

	// Get retrieves a profile by ID.
	Get(ctx context.Context, id string) (*domain.Profile, error)

	// GetByName retrieves a profile by case-insensitive name.
	GetByName(ctx context.Context, name string) (*domain.Profile, error)

	// Delete removes a profile.
	Delete(ctx context.Context, id string) error

	// List returns all profiles ordered by name.
	List(ctx context.Context) ([]domain.Profile, error)
}
