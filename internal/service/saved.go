package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// SavedService manages users' favorite listings
type SavedService struct {
	saved    domain.SavedRepository
	listings domain.ListingRatingRepository
}

// NewSavedService creates a new saved-listing service
func NewSavedService(saved domain.SavedRepository, listings domain.ListingRatingRepository) *SavedService {
	return &SavedService{saved: saved, listings: listings}
}

// Save adds a listing to the caller's favorites
func (s *SavedService) Save(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID uuid.UUID) (*domain.SavedListing, error) {
	ok, err := s.listings.Exists(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, kind)
	}

	saved := &domain.SavedListing{
		ID:        uuid.New(),
		Kind:      kind,
		EntityID:  entityID,
		UserID:    actor.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.saved.Save(ctx, saved); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: %s already saved", domain.ErrConflict, kind)
		}
		return nil, err
	}
	return saved, nil
}

// Unsave removes a listing from the caller's favorites
func (s *SavedService) Unsave(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID uuid.UUID) error {
	removed, err := s.saved.Remove(ctx, kind, entityID, actor.UserID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s is not saved", domain.ErrInvalidInput, kind)
	}
	return nil
}

// List returns the caller's saved listings of one kind
func (s *SavedService) List(ctx context.Context, actor domain.Actor, kind domain.ListingKind) ([]domain.SavedListing, error) {
	return s.saved.ListByUser(ctx, kind, actor.UserID)
}
