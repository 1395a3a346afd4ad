package service

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/pkg/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RatingAggregator keeps a listing's rating and review_count equal to the
// mean and count of its current reviews. It always recomputes from the full
// review set; there is no incremental update.
type RatingAggregator struct {
	reviews  domain.ReviewRepository
	listings domain.ListingRatingRepository
}

// NewRatingAggregator creates a new rating aggregator
func NewRatingAggregator(reviews domain.ReviewRepository, listings domain.ListingRatingRepository) *RatingAggregator {
	return &RatingAggregator{reviews: reviews, listings: listings}
}

// Recompute refreshes the aggregate of one listing. Call it with the same ctx
// as the review write so both land in one transaction. A listing that no
// longer exists is skipped and (nil, nil) returned.
func (a *RatingAggregator) Recompute(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID) (*domain.RatingSummary, error) {
	ratings, err := a.reviews.ListRatings(ctx, kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}

	summary := Summarize(ratings)

	found, err := a.listings.UpdateRating(ctx, kind, entityID, summary)
	if err != nil {
		metrics.RatingRecomputations.WithLabelValues(string(kind), "error").Inc()
		return nil, err
	}
	if !found {
		metrics.RatingRecomputations.WithLabelValues(string(kind), "skipped").Inc()
		log.Debug().Str("kind", string(kind)).Str("id", entityID.String()).Msg("listing gone, rating recompute skipped")
		return nil, nil
	}

	metrics.RatingRecomputations.WithLabelValues(string(kind), "updated").Inc()
	return &summary, nil
}

// Summarize computes the mean (rounded to two places) and count of ratings.
// The mean of no ratings is zero.
func Summarize(ratings []int) domain.RatingSummary {
	if len(ratings) == 0 {
		return domain.RatingSummary{Rating: decimal.Zero, ReviewCount: 0}
	}

	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}

	return domain.RatingSummary{
		Rating:      sum.DivRound(decimal.NewFromInt(int64(len(ratings))), 2),
		ReviewCount: len(ratings),
	}
}
