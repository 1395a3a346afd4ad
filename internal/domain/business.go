package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Business statuses
const (
	BusinessPending  = "pending"
	BusinessApproved = "approved"
	BusinessRejected = "rejected"
)

// Business is a tourism-related business listing
type Business struct {
	ID               uuid.UUID       `json:"id"`
	OwnerID          uuid.UUID       `json:"owner_id"`
	Title            string          `json:"name"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	BusinessType     string          `json:"business_type"`
	Region           string          `json:"region"`
	City             string          `json:"city"`
	Address          string          `json:"address"`
	ContactEmail     string          `json:"contact_email"`
	ContactPhone     string          `json:"contact_phone"`
	Website          string          `json:"website"`
	Facilities       StringList      `json:"facilities"`
	Services         StringList      `json:"services"`
	GalleryImages    StringList      `json:"gallery_images"`
	IsFeatured       bool            `json:"is_featured"`
	Status           string          `json:"status"`
	IsVerified       bool            `json:"is_verified"`
	VerificationDate *time.Time      `json:"verification_date,omitempty"`
	Rating           decimal.Decimal `json:"rating"`
	ReviewCount      int             `json:"review_count"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// BusinessCreate represents business creation data
type BusinessCreate struct {
	Name          string     `json:"name" validate:"required,max=200"`
	Description   string     `json:"description" validate:"required"`
	BusinessType  string     `json:"business_type" validate:"required,oneof=hotel restaurant tour_operator transport shop other"`
	Region        string     `json:"region" validate:"required,max=100"`
	City          string     `json:"city" validate:"max=100"`
	Address       string     `json:"address"`
	ContactEmail  string     `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  string     `json:"contact_phone" validate:"max=50"`
	Website       string     `json:"website" validate:"omitempty,url"`
	Facilities    StringList `json:"facilities"`
	Services      StringList `json:"services"`
	GalleryImages StringList `json:"gallery_images"`
}

// BusinessUpdate represents a partial business update
type BusinessUpdate struct {
	Name          *string     `json:"name,omitempty" validate:"omitempty,max=200"`
	Description   *string     `json:"description,omitempty"`
	BusinessType  *string     `json:"business_type,omitempty" validate:"omitempty,oneof=hotel restaurant tour_operator transport shop other"`
	Region        *string     `json:"region,omitempty" validate:"omitempty,max=100"`
	City          *string     `json:"city,omitempty" validate:"omitempty,max=100"`
	Address       *string     `json:"address,omitempty"`
	ContactEmail  *string     `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  *string     `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	Website       *string     `json:"website,omitempty" validate:"omitempty,url"`
	Facilities    *StringList `json:"facilities,omitempty"`
	Services      *StringList `json:"services,omitempty"`
	GalleryImages *StringList `json:"gallery_images,omitempty"`
}

// BusinessRepository defines the interface for business storage
type BusinessRepository interface {
	Create(ctx context.Context, b *Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*Business, error)
	List(ctx context.Context, filter ListingFilter) ([]Business, error)
	Update(ctx context.Context, b *Business) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
