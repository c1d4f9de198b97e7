// Package tracker manages the entities a user tracks and the encounter
// entries logged against them. Its data feeds the leaderboard stats.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/cpnboard/internal/entitlement"
	"github.com/mmynk/cpnboard/internal/models"
	"github.com/mmynk/cpnboard/internal/storage"
)

const (
	minAge    = 18
	maxRating = 10
	dateOnly  = "2006-01-02"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrActiveLimit    = errors.New("Your plan allows 1 active profile. Upgrade to track more.")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// EntityInput is the caller-supplied part of a new entity.
type EntityInput struct {
	Name            string
	Age             int
	Nationality     string
	Ethnicity       string
	HairColor       string
	LocationCity    string
	LocationCountry string
	Rating          float64
}

// EntryInput is the caller-supplied part of a new entry.
type EntryInput struct {
	EntityID        string
	Date            string
	AmountSpent     float64
	DurationMinutes int
	UnitsCount      int
}

// Service implements entity and entry bookkeeping.
type Service struct {
	store storage.Store
}

// NewService creates a tracker Service.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// CreateEntity adds a new active entity for userID, subject to the tier's
// active entity allowance.
func (s *Service) CreateEntity(ctx context.Context, userID string, in EntityInput) (*models.Entity, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.Age < minAge {
		return nil, &ValidationError{Field: "age", Message: "Must be 18 or older"}
	}
	if in.Rating < 0 || in.Rating > maxRating {
		return nil, &ValidationError{Field: "rating", Message: "Rating must be between 0 and 10"}
	}

	if err := s.checkActiveLimit(ctx, userID); err != nil {
		return nil, err
	}

	entity := &models.Entity{
		UserID:          userID,
		Name:            name,
		Age:             in.Age,
		Nationality:     strings.TrimSpace(in.Nationality),
		Ethnicity:       strings.TrimSpace(in.Ethnicity),
		HairColor:       strings.TrimSpace(in.HairColor),
		LocationCity:    strings.TrimSpace(in.LocationCity),
		LocationCountry: strings.TrimSpace(in.LocationCountry),
		Rating:          in.Rating,
		IsActive:        true,
	}
	if err := s.store.CreateEntity(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	slog.Info("Entity created", "entity_id", entity.ID, "user_id", userID)
	return entity, nil
}

// ListEntities returns the user's entities, active and inactive.
func (s *Service) ListEntities(ctx context.Context, userID string) ([]*models.Entity, error) {
	entities, err := s.store.ListEntitiesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	if entities == nil {
		entities = []*models.Entity{}
	}
	return entities, nil
}

// SetEntityActive deactivates or reactivates an entity. Reactivation counts
// against the tier's allowance.
func (s *Service) SetEntityActive(ctx context.Context, userID, entityID string, active bool) error {
	entity, err := s.ownedEntity(ctx, userID, entityID)
	if err != nil {
		return err
	}
	if active && !entity.IsActive {
		if err := s.checkActiveLimit(ctx, userID); err != nil {
			return err
		}
	}

	err = s.store.SetEntityActive(ctx, entityID, userID, active)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrEntityNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return nil
}

// DeleteEntity hard-deletes an entity and its entries.
func (s *Service) DeleteEntity(ctx context.Context, userID, entityID string) error {
	err := s.store.DeleteEntity(ctx, entityID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrEntityNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	slog.Info("Entity deleted", "entity_id", entityID, "user_id", userID)
	return nil
}

// AddEntry logs an encounter against one of the user's entities.
func (s *Service) AddEntry(ctx context.Context, userID string, in EntryInput) (*models.Entry, error) {
	if _, err := time.Parse(dateOnly, in.Date); err != nil {
		return nil, &ValidationError{Field: "date", Message: "Date must be formatted YYYY-MM-DD"}
	}
	if in.AmountSpent < 0 {
		return nil, &ValidationError{Field: "amount_spent", Message: "Amount spent cannot be negative"}
	}
	if in.DurationMinutes <= 0 {
		return nil, &ValidationError{Field: "duration_minutes", Message: "Duration must be greater than 0"}
	}
	if in.UnitsCount < 0 {
		return nil, &ValidationError{Field: "units_count", Message: "Count cannot be negative"}
	}

	if _, err := s.ownedEntity(ctx, userID, in.EntityID); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		EntityID:        in.EntityID,
		Date:            in.Date,
		AmountSpent:     in.AmountSpent,
		DurationMinutes: in.DurationMinutes,
		UnitsCount:      in.UnitsCount,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns an entity's entries, most recent first.
func (s *Service) ListEntries(ctx context.Context, userID, entityID string) ([]*models.Entry, error) {
	if _, err := s.ownedEntity(ctx, userID, entityID); err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntriesByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		entries = []*models.Entry{}
	}
	return entries, nil
}

// ownedEntity loads an entity, hiding entities owned by someone else.
func (s *Service) ownedEntity(ctx context.Context, userID, entityID string) (*models.Entity, error) {
	entity, err := s.store.GetEntity(ctx, entityID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if entity.UserID != userID {
		return nil, ErrEntityNotFound
	}
	return entity, nil
}

func (s *Service) checkActiveLimit(ctx context.Context, userID string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	limit := entitlement.ActiveEntityLimit(user.SubscriptionTier)
	if limit == 0 {
		return nil
	}

	active, err := s.store.CountActiveEntities(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count active entities: %w", err)
	}
	if active >= limit {
		return ErrActiveLimit
	}
	return nil
}

// validateName accepts a single word: first names only.
func validateName(name string) (string, error) {
	fields := strings.Fields(name)
	switch {
	case len(fields) == 0:
		return "", &ValidationError{Field: "name", Message: "Name is required"}
	case len(fields) > 1:
		return "", &ValidationError{Field: "name", Message: "Enter first name only"}
	}
	return fields[0], nil
}
