package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SavedListing is an entry in a user's favorites
type SavedListing struct {
	ID        uuid.UUID   `json:"id"`
	Kind      ListingKind `json:"kind"`
	EntityID  uuid.UUID   `json:"entity_id"`
	UserID    uuid.UUID   `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
}

// SavedRepository defines the interface for favorites storage
type SavedRepository interface {
	// Save returns ErrConflict when the listing is already saved.
	Save(ctx context.Context, saved *SavedListing) error
	// Remove reports false when nothing was saved.
	Remove(ctx context.Context, kind ListingKind, entityID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, kind ListingKind, userID uuid.UUID) ([]SavedListing, error)
}
