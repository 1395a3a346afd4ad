package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event statuses
const (
	EventDraft     = "draft"
	EventPublished = "published"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
)

// Event is a dated happening that can be booked
type Event struct {
	ID               uuid.UUID       `json:"id"`
	OwnerID          uuid.UUID       `json:"organizer_id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	Region           string          `json:"region"`
	City             string          `json:"city"`
	Venue            string          `json:"venue"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Price            decimal.Decimal `json:"price"`
	Capacity         int             `json:"capacity"`
	CurrentAttendees int             `json:"current_attendees"`
	Images           StringList      `json:"images"`
	IsFeatured       bool            `json:"is_featured"`
	Status           string          `json:"status"`
	Rating           decimal.Decimal `json:"rating"`
	ReviewCount      int             `json:"review_count"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// EventCreate represents event creation data
type EventCreate struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required"`
	Category    string          `json:"category" validate:"required,oneof=cultural music food sports business educational religious festival historical other"`
	Region      string          `json:"region" validate:"required,max=100"`
	City        string          `json:"city" validate:"max=100"`
	Venue       string          `json:"venue" validate:"max=200"`
	StartDate   time.Time       `json:"start_date" validate:"required"`
	EndDate     time.Time       `json:"end_date" validate:"required,gtefield=StartDate"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity" validate:"min=0"`
	Images      StringList      `json:"images"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft published cancelled completed"`
}

// EventUpdate represents a partial event update
type EventUpdate struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,oneof=cultural music food sports business educational religious festival historical other"`
	Region      *string          `json:"region,omitempty" validate:"omitempty,max=100"`
	City        *string          `json:"city,omitempty" validate:"omitempty,max=100"`
	Venue       *string          `json:"venue,omitempty" validate:"omitempty,max=200"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Capacity    *int             `json:"capacity,omitempty" validate:"omitempty,min=0"`
	Images      *StringList      `json:"images,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=draft published cancelled completed"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, filter ListingFilter) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	// SetAttendees reports false when the event no longer exists.
	SetAttendees(ctx context.Context, id uuid.UUID, attendees int) (bool, error)
}
