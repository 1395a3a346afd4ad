package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating of a listing. All listing kinds share this shape.
type Review struct {
	ID           uuid.UUID   `json:"id"`
	Kind         ListingKind `json:"kind"`
	EntityID     uuid.UUID   `json:"entity_id"`
	UserID       uuid.UUID   `json:"user_id"`
	Rating       int         `json:"rating"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	HelpfulCount int         `json:"helpful_count"`
	Reported     bool        `json:"reported"`
	ReportReason string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ReviewCreate represents review creation data
type ReviewCreate struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title,omitempty" validate:"max=200"`
	Content string `json:"content" validate:"required"`
}

// ReviewUpdate represents a partial review update
type ReviewUpdate struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Title   *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

// ReviewReport carries an optional moderation reason
type ReviewReport struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// Review list orderings
const (
	ReviewSortCreated = "created_at"
	ReviewSortRating  = "rating"
	ReviewSortHelpful = "helpful"
)

// ReviewRepository defines the interface for review storage
type ReviewRepository interface {
	// Create returns ErrConflict when the user already reviewed the listing.
	Create(ctx context.Context, review *Review) error
	Get(ctx context.Context, kind ListingKind, entityID, id uuid.UUID) (*Review, error)
	ListByEntity(ctx context.Context, kind ListingKind, entityID uuid.UUID, sortBy string) ([]Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, kind ListingKind, id uuid.UUID) error
	IncrementHelpful(ctx context.Context, kind ListingKind, id uuid.UUID) (int, error)
	MarkReported(ctx context.Context, kind ListingKind, id uuid.UUID, reason string) error
	// ListRatings returns the rating of every review currently attached to the listing.
	ListRatings(ctx context.Context, kind ListingKind, entityID uuid.UUID) ([]int, error)
}
