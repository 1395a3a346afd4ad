package handler

import (
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/service"
)

// EventHandler handles event endpoints
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(service *service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List returns events matching the query filters
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
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

// Get returns a single event
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Create adds an event
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var input domain.EventCreate
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
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var input domain.EventUpdate
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

// Delete removes an event
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h *EventHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
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
