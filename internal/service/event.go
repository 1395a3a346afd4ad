package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// EventService handles event listings
type EventService struct {
	repo  domain.EventRepository
	cache listingCache
	now   func() time.Time
}

// NewEventService creates a new event service. cache may be nil.
func NewEventService(repo domain.EventRepository, cache domain.ListingCache) *EventService {
	return &EventService{
		repo:  repo,
		cache: listingCache{cache: cache},
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create adds an event organized by the caller
func (s *EventService) Create(ctx context.Context, actor domain.Actor, input domain.EventCreate) (*domain.Event, error) {
	if err := validateEventDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	slug, err := uniqueSlug(ctx, input.Title, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	now := s.now()
	e := &domain.Event{
		ID:          uuid.New(),
		OwnerID:     actor.UserID,
		Title:       strings.TrimSpace(input.Title),
		Slug:        slug,
		Description: input.Description,
		Category:    input.Category,
		Region:      input.Region,
		City:        input.City,
		Venue:       input.Venue,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Price:       input.Price,
		Capacity:    input.Capacity,
		Images:      input.Images,
		Status:      orDefault(input.Status, domain.EventDraft),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns an event. Unpublished ones are visible to their organizer and admins only.
func (s *EventService) Get(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Event, error) {
	var e domain.Event
	if !s.cache.get(ctx, domain.KindEvent, id, &e) {
		found, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		e = *found
		s.cache.set(ctx, domain.KindEvent, id, e)
	}

	if !canView(actor, e.OwnerID, e.Status, domain.EventPublished) {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

// List returns published events, or all of the caller's own when mine is set
func (s *EventService) List(ctx context.Context, actor *domain.Actor, mine bool, filter domain.ListingFilter) ([]domain.Event, error) {
	return s.repo.List(ctx, publicFilter(filter, actor, mine, domain.EventPublished))
}

// Update applies a partial update. Organizer or admin only.
func (s *EventService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.EventUpdate) (*domain.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, e.OwnerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		e.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		e.Description = *input.Description
	}
	if input.Category != nil {
		e.Category = *input.Category
	}
	if input.Region != nil {
		e.Region = *input.Region
	}
	if input.City != nil {
		e.City = *input.City
	}
	if input.Venue != nil {
		e.Venue = *input.Venue
	}
	if input.StartDate != nil {
		e.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		e.EndDate = *input.EndDate
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
		}
		e.Price = *input.Price
	}
	if input.Capacity != nil {
		e.Capacity = *input.Capacity
	}
	if input.Images != nil {
		e.Images = *input.Images
	}
	if input.Status != nil {
		e.Status = *input.Status
	}

	if err := validateEventDates(e.StartDate, e.EndDate); err != nil {
		return nil, err
	}
	return e, s.save(ctx, e)
}

// Delete removes an event. Organizer or admin only.
func (s *EventService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, e.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, domain.KindEvent, id)
	return nil
}

// ToggleFeatured flips is_featured. Admin only.
func (s *EventService) ToggleFeatured(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.IsFeatured = !e.IsFeatured
	return e, s.save(ctx, e)
}

func (s *EventService) save(ctx context.Context, e *domain.Event) error {
	e.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, e); err != nil {
		return err
	}
	s.cache.invalidate(ctx, domain.KindEvent, e.ID)
	return nil
}

func validateEventDates(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrInvalidInput)
	}
	return nil
}
