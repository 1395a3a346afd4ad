package service

import (
	"context"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// DestinationService handles destination listings
type DestinationService struct {
	repo  domain.DestinationRepository
	cache listingCache
	now   func() time.Time
}

// NewDestinationService creates a new destination service. cache may be nil.
func NewDestinationService(repo domain.DestinationRepository, cache domain.ListingCache) *DestinationService {
	return &DestinationService{
		repo:  repo,
		cache: listingCache{cache: cache},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a destination owned by the caller
func (s *DestinationService) Create(ctx context.Context, actor domain.Actor, input domain.DestinationCreate) (*domain.Destination, error) {
	slug, err := uniqueSlug(ctx, input.Title, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	now := s.now()
	d := &domain.Destination{
		ID:              uuid.New(),
		OwnerID:         actor.UserID,
		Title:           strings.TrimSpace(input.Title),
		Slug:            slug,
		Description:     input.Description,
		Category:        input.Category,
		Region:          input.Region,
		City:            input.City,
		Address:         input.Address,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		EntranceFee:     input.EntranceFee,
		BestTimeToVisit: input.BestTimeToVisit,
		Images:          input.Images,
		GalleryImages:   input.GalleryImages,
		Status:          orDefault(input.Status, domain.DestinationDraft),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns a destination. Non-active ones are visible to their owner and admins only.
func (s *DestinationService) Get(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Destination, error) {
	var d domain.Destination
	if !s.cache.get(ctx, domain.KindDestination, id, &d) {
		found, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		d = *found
		s.cache.set(ctx, domain.KindDestination, id, d)
	}

	if !canView(actor, d.OwnerID, d.Status, domain.DestinationActive) {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

// List returns active destinations, or all of the caller's own when mine is set
func (s *DestinationService) List(ctx context.Context, actor *domain.Actor, mine bool, filter domain.ListingFilter) ([]domain.Destination, error) {
	return s.repo.List(ctx, publicFilter(filter, actor, mine, domain.DestinationActive))
}

// Update applies a partial update. Owner or admin only.
func (s *DestinationService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.DestinationUpdate) (*domain.Destination, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, d.OwnerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		d.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		d.Description = *input.Description
	}
	if input.Category != nil {
		d.Category = *input.Category
	}
	if input.Region != nil {
		d.Region = *input.Region
	}
	if input.City != nil {
		d.City = *input.City
	}
	if input.Address != nil {
		d.Address = *input.Address
	}
	if input.EntranceFee != nil {
		d.EntranceFee = *input.EntranceFee
	}
	if input.BestTimeToVisit != nil {
		d.BestTimeToVisit = *input.BestTimeToVisit
	}
	if input.Images != nil {
		d.Images = *input.Images
	}
	if input.GalleryImages != nil {
		d.GalleryImages = *input.GalleryImages
	}
	if input.Status != nil {
		d.Status = *input.Status
	}

	return d, s.save(ctx, d)
}

// Delete removes a destination. Owner or admin only.
func (s *DestinationService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, d.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, domain.KindDestination, id)
	return nil
}

// ToggleFeatured flips is_featured. Admin only.
func (s *DestinationService) ToggleFeatured(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Destination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.IsFeatured = !d.IsFeatured
	return d, s.save(ctx, d)
}

// ToggleStatus switches a destination between draft and active
func (s *DestinationService) ToggleStatus(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Destination, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, d.OwnerID); err != nil {
		return nil, err
	}
	if d.Status == domain.DestinationDraft {
		d.Status = domain.DestinationActive
	} else {
		d.Status = domain.DestinationDraft
	}
	return d, s.save(ctx, d)
}

func (s *DestinationService) save(ctx context.Context, d *domain.Destination) error {
	d.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		return err
	}
	s.cache.invalidate(ctx, domain.KindDestination, d.ID)
	return nil
}
