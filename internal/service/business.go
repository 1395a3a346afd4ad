package service

import (
	"context"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// BusinessService handles business listings
type BusinessService struct {
	repo  domain.BusinessRepository
	cache listingCache
	now   func() time.Time
}

// NewBusinessService creates a new business service. cache may be nil.
func NewBusinessService(repo domain.BusinessRepository, cache domain.ListingCache) *BusinessService {
	return &BusinessService{
		repo:  repo,
		cache: listingCache{cache: cache},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a business owned by the caller. New businesses await approval.
func (s *BusinessService) Create(ctx context.Context, actor domain.Actor, input domain.BusinessCreate) (*domain.Business, error) {
	slug, err := uniqueSlug(ctx, input.Name, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	now := s.now()
	b := &domain.Business{
		ID:            uuid.New(),
		OwnerID:       actor.UserID,
		Title:         strings.TrimSpace(input.Name),
		Slug:          slug,
		Description:   input.Description,
		BusinessType:  input.BusinessType,
		Region:        input.Region,
		City:          input.City,
		Address:       input.Address,
		ContactEmail:  input.ContactEmail,
		ContactPhone:  input.ContactPhone,
		Website:       input.Website,
		Facilities:    input.Facilities,
		Services:      input.Services,
		GalleryImages: input.GalleryImages,
		Status:        domain.BusinessPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns a business. Unapproved ones are visible to their owner and admins only.
func (s *BusinessService) Get(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Business, error) {
	var b domain.Business
	if !s.cache.get(ctx, domain.KindBusiness, id, &b) {
		found, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		b = *found
		s.cache.set(ctx, domain.KindBusiness, id, b)
	}

	if !canView(actor, b.OwnerID, b.Status, domain.BusinessApproved) {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

// List returns approved businesses, or all of the caller's own when mine is set.
// filter.Category matches business_type.
func (s *BusinessService) List(ctx context.Context, actor *domain.Actor, mine bool, filter domain.ListingFilter) ([]domain.Business, error) {
	return s.repo.List(ctx, publicFilter(filter, actor, mine, domain.BusinessApproved))
}

// Update applies a partial update. Owner or admin only.
func (s *BusinessService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.BusinessUpdate) (*domain.Business, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, b.OwnerID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		b.Title = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		b.Description = *input.Description
	}
	if input.BusinessType != nil {
		b.BusinessType = *input.BusinessType
	}
	if input.Region != nil {
		b.Region = *input.Region
	}
	if input.City != nil {
		b.City = *input.City
	}
	if input.Address != nil {
		b.Address = *input.Address
	}
	if input.ContactEmail != nil {
		b.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		b.ContactPhone = *input.ContactPhone
	}
	if input.Website != nil {
		b.Website = *input.Website
	}
	if input.Facilities != nil {
		b.Facilities = *input.Facilities
	}
	if input.Services != nil {
		b.Services = *input.Services
	}
	if input.GalleryImages != nil {
		b.GalleryImages = *input.GalleryImages
	}

	return b, s.save(ctx, b)
}

// Delete removes a business. Owner or admin only.
func (s *BusinessService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, b.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, domain.KindBusiness, id)
	return nil
}

// ToggleFeatured flips is_featured. Admin only.
func (s *BusinessService) ToggleFeatured(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Business, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.IsFeatured = !b.IsFeatured
	return b, s.save(ctx, b)
}

// Verify approves a business and stamps its verification date. Admin only.
func (s *BusinessService) Verify(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Business, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	b.Status = domain.BusinessApproved
	b.IsVerified = true
	b.VerificationDate = &now
	return b, s.save(ctx, b)
}

func (s *BusinessService) save(ctx context.Context, b *domain.Business) error {
	b.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, b); err != nil {
		return err
	}
	s.cache.invalidate(ctx, domain.KindBusiness, b.ID)
	return nil
}
