package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Package statuses
const (
	PackageDraft  = "draft"
	PackageActive = "active"
)

// Package is a bookable multi-day travel package
type Package struct {
	ID               uuid.UUID        `json:"id"`
	OwnerID          uuid.UUID        `json:"owner_id"`
	Title            string           `json:"title"`
	Slug             string           `json:"slug"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	Region           string           `json:"region"`
	Location         string           `json:"location"`
	Price            decimal.Decimal  `json:"price"`
	DiscountedPrice  *decimal.Decimal `json:"discounted_price,omitempty"`
	DurationDays     int              `json:"duration_days"`
	Difficulty       string           `json:"difficulty"`
	MaxGroupSize     int              `json:"max_group_size"`
	MinAge           int              `json:"min_age"`
	Categories       StringList       `json:"categories"`
	Included         StringList       `json:"included"`
	NotIncluded      StringList       `json:"not_included"`
	Itinerary        StringList       `json:"itinerary"`
	Languages        StringList       `json:"languages"`
	GalleryImages    StringList       `json:"gallery_images"`
	IsFeatured       bool             `json:"is_featured"`
	Status           string           `json:"status"`
	Rating           decimal.Decimal  `json:"rating"`
	ReviewCount      int              `json:"review_count"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// PackageCreate represents package creation data
type PackageCreate struct {
	Title            string           `json:"title" validate:"required,max=200"`
	Description      string           `json:"description" validate:"required"`
	ShortDescription string           `json:"short_description" validate:"max=300"`
	Region           string           `json:"region" validate:"required,max=100"`
	Location         string           `json:"location" validate:"max=200"`
	Price            decimal.Decimal  `json:"price"`
	DiscountedPrice  *decimal.Decimal `json:"discounted_price,omitempty"`
	DurationDays     int              `json:"duration_days" validate:"required,min=1"`
	Difficulty       string           `json:"difficulty" validate:"omitempty,oneof=Easy Moderate Challenging"`
	MaxGroupSize     int              `json:"max_group_size" validate:"required,min=1"`
	MinAge           int              `json:"min_age" validate:"min=0"`
	Categories       StringList       `json:"categories"`
	Included         StringList       `json:"included"`
	NotIncluded      StringList       `json:"not_included"`
	Itinerary        StringList       `json:"itinerary"`
	Languages        StringList       `json:"languages"`
	GalleryImages    StringList       `json:"gallery_images"`
	Status           string           `json:"status" validate:"omitempty,oneof=draft active"`
}

// PackageUpdate represents a partial package update
type PackageUpdate struct {
	Title            *string          `json:"title,omitempty" validate:"omitempty,max=200"`
	Description      *string          `json:"description,omitempty"`
	ShortDescription *string          `json:"short_description,omitempty" validate:"omitempty,max=300"`
	Region           *string          `json:"region,omitempty" validate:"omitempty,max=100"`
	Location         *string          `json:"location,omitempty" validate:"omitempty,max=200"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	DiscountedPrice  *decimal.Decimal `json:"discounted_price,omitempty"`
	DurationDays     *int             `json:"duration_days,omitempty" validate:"omitempty,min=1"`
	Difficulty       *string          `json:"difficulty,omitempty" validate:"omitempty,oneof=Easy Moderate Challenging"`
	MaxGroupSize     *int             `json:"max_group_size,omitempty" validate:"omitempty,min=1"`
	MinAge           *int             `json:"min_age,omitempty" validate:"omitempty,min=0"`
	Categories       *StringList      `json:"categories,omitempty"`
	Included         *StringList      `json:"included,omitempty"`
	NotIncluded      *StringList      `json:"not_included,omitempty"`
	Itinerary        *StringList      `json:"itinerary,omitempty"`
	Languages        *StringList      `json:"languages,omitempty"`
	GalleryImages    *StringList      `json:"gallery_images,omitempty"`
	Status           *string          `json:"status,omitempty" validate:"omitempty,oneof=draft active"`
}

// PackageRepository defines the interface for package storage
type PackageRepository interface {
	Create(ctx context.Context, p *Package) error
	GetByID(ctx context.Context, id uuid.UUID) (*Package, error)
	List(ctx context.Context, filter ListingFilter) ([]Package, error)
	Update(ctx context.Context, p *Package) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
