package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageService handles travel package listings
type PackageService struct {
	repo  domain.PackageRepository
	cache listingCache
	now   func() time.Time
}

// NewPackageService creates a new package service. cache may be nil.
func NewPackageService(repo domain.PackageRepository, cache domain.ListingCache) *PackageService {
	return &PackageService{
		repo:  repo,
		cache: listingCache{cache: cache},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a package owned by the caller
func (s *PackageService) Create(ctx context.Context, actor domain.Actor, input domain.PackageCreate) (*domain.Package, error) {
	if err := validatePackagePrice(input.Price, input.DiscountedPrice); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(ctx, input.Title, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Package{
		ID:               uuid.New(),
		OwnerID:          actor.UserID,
		Title:            strings.TrimSpace(input.Title),
		Slug:             slug,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Region:           input.Region,
		Location:         input.Location,
		Price:            input.Price,
		DiscountedPrice:  input.DiscountedPrice,
		DurationDays:     input.DurationDays,
		Difficulty:       orDefault(input.Difficulty, "Moderate"),
		MaxGroupSize:     input.MaxGroupSize,
		MinAge:           input.MinAge,
		Categories:       input.Categories,
		Included:         input.Included,
		NotIncluded:      input.NotIncluded,
		Itinerary:        input.Itinerary,
		Languages:        input.Languages,
		GalleryImages:    input.GalleryImages,
		Status:           orDefault(input.Status, domain.PackageDraft),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a package. Drafts are visible to their owner and admins only.
func (s *PackageService) Get(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Package, error) {
	var p domain.Package
	if !s.cache.get(ctx, domain.KindPackage, id, &p) {
		found, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		p = *found
		s.cache.set(ctx, domain.KindPackage, id, p)
	}

	if !canView(actor, p.OwnerID, p.Status, domain.PackageActive) {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// List returns active packages, or all of the caller's own when mine is set.
// filter.Category matches any of the package's categories.
func (s *PackageService) List(ctx context.Context, actor *domain.Actor, mine bool, filter domain.ListingFilter) ([]domain.Package, error) {
	return s.repo.List(ctx, publicFilter(filter, actor, mine, domain.PackageActive))
}

// Update applies a partial update. Owner or admin only.
func (s *PackageService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.PackageUpdate) (*domain.Package, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, p.OwnerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		p.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.ShortDescription != nil {
		p.ShortDescription = *input.ShortDescription
	}
	if input.Region != nil {
		p.Region = *input.Region
	}
	if input.Location != nil {
		p.Location = *input.Location
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.DiscountedPrice != nil {
		p.DiscountedPrice = input.DiscountedPrice
	}
	if input.DurationDays != nil {
		p.DurationDays = *input.DurationDays
	}
	if input.Difficulty != nil {
		p.Difficulty = *input.Difficulty
	}
	if input.MaxGroupSize != nil {
		p.MaxGroupSize = *input.MaxGroupSize
	}
	if input.MinAge != nil {
		p.MinAge = *input.MinAge
	}
	if input.Categories != nil {
		p.Categories = *input.Categories
	}
	if input.Included != nil {
		p.Included = *input.Included
	}
	if input.NotIncluded != nil {
		p.NotIncluded = *input.NotIncluded
	}
	if input.Itinerary != nil {
		p.Itinerary = *input.Itinerary
	}
	if input.Languages != nil {
		p.Languages = *input.Languages
	}
	if input.GalleryImages != nil {
		p.GalleryImages = *input.GalleryImages
	}
	if input.Status != nil {
		p.Status = *input.Status
	}

	if err := validatePackagePrice(p.Price, p.DiscountedPrice); err != nil {
		return nil, err
	}
	return p, s.save(ctx, p)
}

// Delete removes a package. Owner or admin only.
func (s *PackageService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, p.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, domain.KindPackage, id)
	return nil
}

// ToggleFeatured flips is_featured. Admin only.
func (s *PackageService) ToggleFeatured(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Package, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsFeatured = !p.IsFeatured
	return p, s.save(ctx, p)
}

func (s *PackageService) save(ctx context.Context, p *domain.Package) error {
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.cache.invalidate(ctx, domain.KindPackage, p.ID)
	return nil
}

func validatePackagePrice(price decimal.Decimal, discounted *decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if discounted != nil && !discounted.LessThan(price) {
		return fmt.Errorf("%w: discounted_price must be less than price", domain.ErrInvalidInput)
	}
	return nil
}
