package handler

import (
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/service"
)

// DestinationHandler handles destination endpoints
type DestinationHandler struct {
	service *service.DestinationService
}

// NewDestinationHandler creates a new destination handler
func NewDestinationHandler(service *service.DestinationService) *DestinationHandler {
	return &DestinationHandler{service: service}
}

// List returns destinations matching the query filters
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, mine, ok := listingQuery(w, r, "category")
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

// Get returns a single destination
func (h *DestinationHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Create adds a destination
func (h *DestinationHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var input domain.DestinationCreate
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
func (h *DestinationHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var input domain.DestinationUpdate
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

// Delete removes a destination
func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h *DestinationHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
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

// ToggleStatus switches between draft and active
func (h *DestinationHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	item, err := h.service.ToggleStatus(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, item)
}
