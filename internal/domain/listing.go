package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingKind names a reviewable entity type
type ListingKind string

const (
	KindDestination ListingKind = "destination"
	KindEvent       ListingKind = "event"
	KindBusiness    ListingKind = "business"
	KindPackage     ListingKind = "package"
)

// ListingKinds lists every reviewable kind
var ListingKinds = []ListingKind{KindDestination, KindEvent, KindBusiness, KindPackage}

// ParseListingKind validates a kind name
func ParseListingKind(s string) (ListingKind, error) {
	for _, k := range ListingKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown listing kind %q", ErrInvalidInput, s)
}

// RatingSummary holds the derived aggregate of a listing's reviews
type RatingSummary struct {
	Rating      decimal.Decimal `json:"rating"`
	ReviewCount int             `json:"review_count"`
}

// ListingFilter narrows list queries. Zero values mean "no filter".
type ListingFilter struct {
	Featured *bool
	Category string
	Region   string
	Status   string
	OwnerID  *uuid.UUID
	Search   string
	Ordering string
	Limit    int
	Offset   int
}

// Orderings accepted by list endpoints
var ListingOrderings = map[string]bool{
	"rating":        true,
	"-rating":       true,
	"review_count":  true,
	"-review_count": true,
	"created_at":    true,
	"-created_at":   true,
}

// ListingRatingRepository is the store side of the rating aggregate
type ListingRatingRepository interface {
	Exists(ctx context.Context, kind ListingKind, id uuid.UUID) (bool, error)
	// UpdateRating reports false when the listing no longer exists.
	UpdateRating(ctx context.Context, kind ListingKind, id uuid.UUID, summary RatingSummary) (bool, error)
}

// ListingCache caches listing detail payloads
type ListingCache interface {
	Get(ctx context.Context, kind ListingKind, id uuid.UUID, dest any) (bool, error)
	Set(ctx context.Context, kind ListingKind, id uuid.UUID, value any) error
	Invalidate(ctx context.Context, kind ListingKind, id uuid.UUID) error
	FlushAll(ctx context.Context) (int64, error)
}
