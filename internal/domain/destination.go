package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Destination statuses
const (
	DestinationDraft    = "draft"
	DestinationActive   = "active"
	DestinationInactive = "inactive"
)

// Destination is a tourist destination listing
type Destination struct {
	ID              uuid.UUID        `json:"id"`
	OwnerID         uuid.UUID        `json:"owner_id"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	Region          string           `json:"region"`
	City            string           `json:"city"`
	Address         string           `json:"address"`
	Latitude        *decimal.Decimal `json:"latitude,omitempty"`
	Longitude       *decimal.Decimal `json:"longitude,omitempty"`
	EntranceFee     decimal.Decimal  `json:"entrance_fee"`
	BestTimeToVisit string           `json:"best_time_to_visit"`
	Images          StringList       `json:"images"`
	GalleryImages   StringList       `json:"gallery_images"`
	IsFeatured      bool             `json:"is_featured"`
	Status          string           `json:"status"`
	Rating          decimal.Decimal  `json:"rating"`
	ReviewCount     int              `json:"review_count"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// DestinationCreate represents destination creation data
type DestinationCreate struct {
	Title           string           `json:"title" validate:"required,max=200"`
	Description     string           `json:"description" validate:"required"`
	Category        string           `json:"category" validate:"required,oneof=historical natural cultural religious adventure beach mountain city"`
	Region          string           `json:"region" validate:"required,max=100"`
	City            string           `json:"city" validate:"max=100"`
	Address         string           `json:"address"`
	Latitude        *decimal.Decimal `json:"latitude,omitempty"`
	Longitude       *decimal.Decimal `json:"longitude,omitempty"`
	EntranceFee     decimal.Decimal  `json:"entrance_fee"`
	BestTimeToVisit string           `json:"best_time_to_visit" validate:"max=200"`
	Images          StringList       `json:"images"`
	GalleryImages   StringList       `json:"gallery_images"`
	Status          string           `json:"status" validate:"omitempty,oneof=draft active inactive"`
}

// DestinationUpdate represents a partial destination update
type DestinationUpdate struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,max=200"`
	Description     *string          `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty" validate:"omitempty,oneof=historical natural cultural religious adventure beach mountain city"`
	Region          *string          `json:"region,omitempty" validate:"omitempty,max=100"`
	City            *string          `json:"city,omitempty" validate:"omitempty,max=100"`
	Address         *string          `json:"address,omitempty"`
	EntranceFee     *decimal.Decimal `json:"entrance_fee,omitempty"`
	BestTimeToVisit *string          `json:"best_time_to_visit,omitempty" validate:"omitempty,max=200"`
	Images          *StringList      `json:"images,omitempty"`
	GalleryImages   *StringList      `json:"gallery_images,omitempty"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=draft active inactive"`
}

// DestinationRepository defines the interface for destination storage
type DestinationRepository interface {
	Create(ctx context.Context, d *Destination) error
	GetByID(ctx context.Context, id uuid.UUID) (*Destination, error)
	List(ctx context.Context, filter ListingFilter) ([]Destination, error)
	Update(ctx context.Context, d *Destination) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
