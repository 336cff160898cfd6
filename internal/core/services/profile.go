package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService manages stored birth profiles.
type ProfileService struct {
	store    driven.ProfileStore
	validate *validator.Validate
	now      func() time.Time
}

// NewProfileService creates a new profile service.
func NewProfileService(store driven.ProfileStore) *ProfileService {
	return &ProfileService{
		store:    store,
		validate: newProfileValidator(),
		now:      time.Now,
	}
}

// newProfileValidator registers the custom tags used by ProfileInput.
// It panics if a tag cannot be registered.
func newProfileValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	tags := map[string]validator.Func{
		"clock": validateClock,
		"zone":  validateZone,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %q validation: %v", tag, err))
		}
	}
	return v
}

// validateClock accepts "15:04" and "15:04:05".
func validateClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// validateZone accepts IANA zone names and fixed ±HH:MM offsets.
func validateZone(fl validator.FieldLevel) bool {
	_, err := domain.ResolveZone(fl.Field().String())
	return err == nil
}

// Create validates input, resolves the birth moment and stores a profile.
func (s *ProfileService) Create(ctx context.Context, input driving.ProfileInput) (*domain.Profile, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}

	birth := domain.BirthDetails{
		Date: input.Date,
		Time: input.Time,
		Zone: input.Zone,
		Location: domain.Location{
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
		},
	}
	if _, err := birth.Moment(); err != nil {
		return nil, err
	}

	if existing, err := s.store.GetByName(ctx, input.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: profile %q", domain.ErrAlreadyExists, input.Name)
	}

	now := s.now().UTC()
	profile := domain.Profile{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Birth:     birth,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return &profile, nil
}

// List returns all profiles.
func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Get retrieves a profile by ID, falling back to a name lookup.
func (s *ProfileService) Get(ctx context.Context, ref string) (*domain.Profile, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.store.Get(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.store.GetByName(ctx, ref)
}

// Delete removes a profile by ID or name.
func (s *ProfileService) Delete(ctx context.Context, ref string) error {
	p, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, p.ID)
}

// describeValidation flattens validator errors into one line.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
