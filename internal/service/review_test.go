package service

import (
	"context"
	"testing"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReviewService(store *memReviewStore) *ReviewService {
	return NewReviewService(passthroughTx{}, store, store, NewRatingAggregator(store, store), nil)
}

func TestReviewService_AggregateFollowsReviews(t *testing.T) {
	ctx := context.Background()
	listingID := uuid.New()
	store := newMemReviewStore(listingID)
	svc := newTestReviewService(store)
	alice := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	bob := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}

	first, err := svc.Create(ctx, alice, domain.KindDestination, listingID, domain.ReviewCreate{Rating: 5, Content: "Stunning"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, domain.KindDestination, listingID, domain.ReviewCreate{Rating: 2, Content: "Crowded"})
	require.NoError(t, err)

	got := store.summary(listingID)
	assert.Equal(t, "3.5", got.Rating.String())
	assert.Equal(t, 2, got.ReviewCount)

	rating := 3
	_, err = svc.Update(ctx, alice, domain.KindDestination, listingID, first.ID, domain.ReviewUpdate{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, "2.5", store.summary(listingID).Rating.String())

	require.NoError(t, svc.Delete(ctx, alice, domain.KindDestination, listingID, first.ID))
	got = store.summary(listingID)
	assert.Equal(t, "2", got.Rating.String())
	assert.Equal(t, 1, got.ReviewCount)
}

func TestReviewService_DuplicateReview(t *testing.T) {
	ctx := context.Background()
	listingID := uuid.New()
	store := newMemReviewStore(listingID)
	svc := newTestReviewService(store)
	alice := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}

	_, err := svc.Create(ctx, alice, domain.KindBusiness, listingID, domain.ReviewCreate{Rating: 4, Content: "Good"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice, domain.KindBusiness, listingID, domain.ReviewCreate{Rating: 1, Content: "Again"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got := store.summary(listingID)
	assert.Equal(t, 1, got.ReviewCount)
	assert.Equal(t, "4", got.Rating.String())
}

func TestReviewService_MissingListing(t *testing.T) {
	svc := newTestReviewService(newMemReviewStore())
	actor := domain.Actor{UserID: uuid.New()}

	_, err := svc.Create(context.Background(), actor, domain.KindEvent, uuid.New(), domain.ReviewCreate{Rating: 4, Content: "?"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.List(context.Background(), domain.KindEvent, uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewService_Permissions(t *testing.T) {
	ctx := context.Background()
	listingID := uuid.New()
	store := newMemReviewStore(listingID)
	svc := newTestReviewService(store)
	author := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	other := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

	review, err := svc.Create(ctx, author, domain.KindPackage, listingID, domain.ReviewCreate{Rating: 4, Content: "Nice"})
	require.NoError(t, err)

	content := "edited"
	_, err = svc.Update(ctx, other, domain.KindPackage, listingID, review.ID, domain.ReviewUpdate{Content: &content})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Update(ctx, admin, domain.KindPackage, listingID, review.ID, domain.ReviewUpdate{Content: &content})
	assert.ErrorIs(t, err, domain.ErrForbidden, "admins moderate by deleting, not editing")

	err = svc.Delete(ctx, other, domain.KindPackage, listingID, review.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, admin, domain.KindPackage, listingID, review.ID))
	assert.Equal(t, 0, store.summary(listingID).ReviewCount)
}

func TestReviewService_HelpfulAndReport(t *testing.T) {
	ctx := context.Background()
	listingID := uuid.New()
	store := newMemReviewStore(listingID)
	svc := newTestReviewService(store)

	review, err := svc.Create(ctx, domain.Actor{UserID: uuid.New()}, domain.KindEvent, listingID, domain.ReviewCreate{Rating: 3, Content: "Fine"})
	require.NoError(t, err)

	n, err := svc.MarkHelpful(ctx, domain.KindEvent, listingID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = svc.MarkHelpful(ctx, domain.KindEvent, listingID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, svc.Report(ctx, domain.KindEvent, listingID, review.ID, domain.ReviewReport{Reason: " spam "}))
	got, err := svc.Get(ctx, domain.KindEvent, listingID, review.ID)
	require.NoError(t, err)
	assert.True(t, got.Reported)
	assert.Equal(t, "spam", got.ReportReason)

	_, err = svc.MarkHelpful(ctx, domain.KindDestination, listingID, review.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "review belongs to another kind")
}

func TestReviewService_BlankContentRejected(t *testing.T) {
	ctx := context.Background()
	listingID := uuid.New()
	store := newMemReviewStore(listingID)
	svc := newTestReviewService(store)
	alice := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}

	_, err := svc.Create(ctx, alice, domain.KindPackage, listingID, domain.ReviewCreate{Rating: 4, Content: " \t "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.summary(listingID).ReviewCount)

	review, err := svc.Create(ctx, alice, domain.KindPackage, listingID, domain.ReviewCreate{Rating: 4, Content: "  Well organised  "})
	require.NoError(t, err)
	assert.Equal(t, "Well organised", review.Content)

	blank := "   "
	_, err = svc.Update(ctx, alice, domain.KindPackage, listingID, review.ID, domain.ReviewUpdate{Content: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := svc.Get(ctx, domain.KindPackage, listingID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Well organised", stored.Content)
}
