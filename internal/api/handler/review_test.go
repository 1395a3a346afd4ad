package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rrens/tourism-api/internal/api/handler"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID uuid.UUID, input domain.ReviewCreate) (*domain.Review, error) {
	args := m.Called(ctx, actor, kind, entityID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) List(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID, sortBy string) ([]domain.Review, error) {
	args := m.Called(ctx, kind, entityID, sortBy)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, kind, entityID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID, id uuid.UUID, input domain.ReviewUpdate) (*domain.Review, error) {
	args := m.Called(ctx, actor, kind, entityID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID, id uuid.UUID) error {
	return m.Called(ctx, actor, kind, entityID, id).Error(0)
}

func (m *MockReviewService) MarkHelpful(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID) (int, error) {
	args := m.Called(ctx, kind, entityID, id)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewService) Report(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID, input domain.ReviewReport) error {
	return m.Called(ctx, kind, entityID, id, input).Error(0)
}

func reviewRouter(h *handler.ReviewHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/events/{id}/reviews", h.List)
	r.Post("/events/{id}/reviews", h.Create)
	r.Post("/events/{id}/reviews/{reviewID}/helpful", h.Helpful)
	return r
}

func TestReviewHandler_Create(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()
	caller := domain.Actor{UserID: userID, Role: domain.RoleUser}
	input := domain.ReviewCreate{Rating: 5, Content: "Unforgettable Timkat"}

	svc := new(MockReviewService)
	svc.On("Create", mock.Anything, caller, domain.KindEvent, eventID, input).
		Return(&domain.Review{ID: uuid.New(), Kind: domain.KindEvent, EntityID: eventID, UserID: userID, Rating: 5, Content: input.Content}, nil).Once()
	svc.On("Create", mock.Anything, caller, domain.KindEvent, eventID, input).
		Return(nil, fmt.Errorf("%w: you have already reviewed this event", domain.ErrConflict)).Once()

	router := reviewRouter(handler.NewReviewHandler(domain.KindEvent, svc))
	target := "/events/" + eventID.String() + "/reviews"
	body := []byte(`{"rating":5,"content":"Unforgettable Timkat"}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, target, body, userID))
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, target, body, userID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env = decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Error), "already reviewed")

	svc.AssertExpectations(t)
}

func TestReviewHandler_CreateValidation(t *testing.T) {
	svc := new(MockReviewService)
	router := reviewRouter(handler.NewReviewHandler(domain.KindEvent, svc))
	target := "/events/" + uuid.New().String() + "/reviews"

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"rating above range", target, `{"rating":6,"content":"x"}`, http.StatusBadRequest},
		{"rating missing", target, `{"content":"x"}`, http.StatusBadRequest},
		{"content missing", target, `{"rating":3}`, http.StatusBadRequest},
		{"bad listing id", "/events/not-a-uuid/reviews", `{"rating":3,"content":"x"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(http.MethodPost, tt.target, []byte(tt.body), uuid.New()))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandler_ListAndHelpful(t *testing.T) {
	eventID := uuid.New()
	reviewID := uuid.New()

	svc := new(MockReviewService)
	svc.On("List", mock.Anything, domain.KindEvent, eventID, "rating").Return([]domain.Review{}, nil)
	svc.On("MarkHelpful", mock.Anything, domain.KindEvent, eventID, reviewID).Return(4, nil)
	router := reviewRouter(handler.NewReviewHandler(domain.KindEvent, svc))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/"+eventID.String()+"/reviews?sort_by=rating", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/events/"+eventID.String()+"/reviews/"+reviewID.String()+"/helpful", nil, uuid.New()))
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"helpful_count":4}`, string(env.Data))

	svc.AssertExpectations(t)
}
