package handler

import (
	"context"
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// ReviewService is the review workflow shared by every listing kind
type ReviewService interface {
	Create(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID uuid.UUID, input domain.ReviewCreate) (*domain.Review, error)
	List(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID, sortBy string) ([]domain.Review, error)
	Get(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID) (*domain.Review, error)
	Update(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID, id uuid.UUID, input domain.ReviewUpdate) (*domain.Review, error)
	Delete(ctx context.Context, actor domain.Actor, kind domain.ListingKind, entityID, id uuid.UUID) error
	MarkHelpful(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID) (int, error)
	Report(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID, input domain.ReviewReport) error
}

// ReviewHandler handles the review endpoints of one listing kind
type ReviewHandler struct {
	kind    domain.ListingKind
	service ReviewService
}

// NewReviewHandler creates a review handler bound to kind
func NewReviewHandler(kind domain.ListingKind, service ReviewService) *ReviewHandler {
	return &ReviewHandler{kind: kind, service: service}
}

// List returns a listing's reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	entityID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.service.List(r.Context(), h.kind, entityID, r.URL.Query().Get("sort_by"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, reviews)
}

// Get returns one review
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	entityID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "reviewID")
	if !ok {
		return
	}

	review, err := h.service.Get(r.Context(), h.kind, entityID, reviewID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, review)
}

// Create adds the caller's review and refreshes the listing rating
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	entityID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var input domain.ReviewCreate
	if !decode(w, r, &input) {
		return
	}

	review, err := h.service.Create(r.Context(), caller, h.kind, entityID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, review)
}

// Update edits the caller's review
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	entityID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "reviewID")
	if !ok {
		return
	}
	var input domain.ReviewUpdate
	if !decode(w, r, &input) {
		return
	}

	review, err := h.service.Update(r.Context(), caller, h.kind, entityID, reviewID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, review)
}

// Delete removes a review
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	entityID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "reviewID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, h.kind, entityID, reviewID); err != nil {
		handleError(w, r, err)
		return
	}
	response.NoContent(w)
}

// Helpful increments a review's helpful counter
func (h *ReviewHandler) Helpful(w http.ResponseWriter, r *http.Request) {
	entityID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "reviewID")
	if !ok {
		return
	}

	count, err := h.service.MarkHelpful(r.Context(), h.kind, entityID, reviewID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, map[string]int{"helpful_count": count})
}

// Report flags a review for moderation. The body is optional.
func (h *ReviewHandler) Report(w http.ResponseWriter, r *http.Request) {
	entityID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "reviewID")
	if !ok {
		return
	}

	var input domain.ReviewReport
	if r.ContentLength != 0 && !decode(w, r, &input) {
		return
	}

	if err := h.service.Report(r.Context(), h.kind, entityID, reviewID, input); err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, map[string]bool{"reported": true})
}
