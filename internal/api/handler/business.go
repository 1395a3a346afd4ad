package handler

import (
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/service"
)

// BusinessHandler handles business endpoints
type BusinessHandler struct {
	service *service.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(service *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{service: service}
}

// List returns businesses matching the query filters
func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, mine, ok := listingQuery(w, r, "business_type")
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), optionalActor(r), mine, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, items)
}

// Get returns a single business
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), optionalActor(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, item)
}

// Create registers a business
func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var input domain.BusinessCreate
	if !decode(w, r, &input) {
		return
	}

	item, err := h.service.Create(r.Context(), caller, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, item)
}

// Update applies a partial update
func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var input domain.BusinessUpdate
	if !decode(w, r, &input) {
		return
	}

	item, err := h.service.Update(r.Context(), caller, id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, item)
}

// Delete removes a business
func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		handleError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ToggleFeatured flips the featured flag
func (h *BusinessHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	item, err := h.service.ToggleFeatured(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, item)
}

// Verify approves a business
func (h *BusinessHandler) Verify(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	item, err := h.service.Verify(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, item)
}
