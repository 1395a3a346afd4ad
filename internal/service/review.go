package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// ReviewService manages reviews of every listing kind and keeps the listing
// rating aggregate in step with them.
type ReviewService struct {
	tx         domain.Transactor
	reviews    domain.ReviewRepository
	listings   domain.ListingRatingRepository
	aggregator *RatingAggregator
	cache      listingCache
	now        func() time.Time
}

// NewReviewService creates a new review service. cache may be nil.
func NewReviewService(
	tx domain.Transactor,
	reviews domain.ReviewRepository,
	listings domain.ListingRatingRepository,
	aggregator *RatingAggregator,
	cache domain.ListingCache,
) *ReviewService {
	return &ReviewService{
		tx:         tx,
		reviews:    reviews,
		listings:   listings,
		aggregator: aggregator,
		cache:      listingCache{cache: cache},
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create adds the caller's review. A user reviews a listing at most once.
func (s *ReviewService) Create(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID uuid.UUID, input domain.ReviewCreate) (*domain.Review, error) {
	content, err := nonBlankContent(input.Content)
	if err != nil {
		return nil, err
	}

	now := s.now()
	review := &domain.Review{
		ID:        uuid.New(),
		Kind:      kind,
		EntityID:  entityID,
		UserID:    actor.UserID,
		Rating:    input.Rating,
		Title:     strings.TrimSpace(input.Title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureListing(ctx, kind, entityID); err != nil {
			return err
		}
		if err := s.reviews.Create(ctx, review); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return fmt.Errorf("%w: you have already reviewed this %s", domain.ErrConflict, kind)
			}
			return err
		}
		_, err := s.aggregator.Recompute(ctx, kind, entityID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, kind, entityID)
	return review, nil
}

// List returns the reviews of a listing
func (s *ReviewService) List(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID, sortBy string) ([]domain.Review, error) {
	if err := s.ensureListing(ctx, kind, entityID); err != nil {
		return nil, err
	}
	switch sortBy {
	case domain.ReviewSortRating, domain.ReviewSortHelpful:
	default:
		sortBy = domain.ReviewSortCreated
	}
	return s.reviews.ListByEntity(ctx, kind, entityID, sortBy)
}

// Get returns a single review
func (s *ReviewService) Get(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID) (*domain.Review, error) {
	return s.reviews.Get(ctx, kind, entityID, id)
}

// Update changes the caller's own review
func (s *ReviewService) Update(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID, id uuid.UUID, input domain.ReviewUpdate) (*domain.Review, error) {
	var content *string
	if input.Content != nil {
		c, err := nonBlankContent(*input.Content)
		if err != nil {
			return nil, err
		}
		content = &c
	}

	var review *domain.Review
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		review, err = s.reviews.Get(ctx, kind, entityID, id)
		if err != nil {
			return err
		}
		if review.UserID != actor.UserID {
			return fmt.Errorf("%w: only the author can edit a review", domain.ErrForbidden)
		}

		if input.Rating != nil {
			review.Rating = *input.Rating
		}
		if input.Title != nil {
			review.Title = strings.TrimSpace(*input.Title)
		}
		if content != nil {
			review.Content = *content
		}
		review.UpdatedAt = s.now()

		if err := s.reviews.Update(ctx, review); err != nil {
			return err
		}
		_, err = s.aggregator.Recompute(ctx, kind, entityID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, kind, entityID)
	return review, nil
}

// Delete removes a review. Authors and admins may delete.
func (s *ReviewService) Delete(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		review, err := s.reviews.Get(ctx, kind, entityID, id)
		if err != nil {
			return err
		}
		if !actor.CanModify(review.UserID) {
			return fmt.Errorf("%w: only the author or an admin can delete a review", domain.ErrForbidden)
		}
		if err := s.reviews.Delete(ctx, kind, id); err != nil {
			return err
		}
		_, err = s.aggregator.Recompute(ctx, kind, entityID)
		return err
	})
	if err != nil {
		return err
	}

	s.cache.invalidate(ctx, kind, entityID)
	return nil
}

// MarkHelpful increments the helpful counter and returns the new value
func (s *ReviewService) MarkHelpful(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID) (int, error) {
	if _, err := s.reviews.Get(ctx, kind, entityID, id); err != nil {
		return 0, err
	}
	return s.reviews.IncrementHelpful(ctx, kind, id)
}

// Report flags a review for moderation
func (s *ReviewService) Report(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID, input domain.ReviewReport) error {
	if _, err := s.reviews.Get(ctx, kind, entityID, id); err != nil {
		return err
	}
	return s.reviews.MarkReported(ctx, kind, id, strings.TrimSpace(input.Reason))
}

func (s *ReviewService) ensureListing(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID) error {
	ok, err := s.listings.Exists(ctx, kind, entityID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, kind)
	}
	return nil
}
