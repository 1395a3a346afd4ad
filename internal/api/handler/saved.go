package handler

import (
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/service"
)

// SavedHandler handles favorites of one listing kind
type SavedHandler struct {
	kind    domain.ListingKind
	service *service.SavedService
}

// NewSavedHandler creates a saved-listing handler bound to kind
func NewSavedHandler(kind domain.ListingKind, service *service.SavedService) *SavedHandler {
	return &SavedHandler{kind: kind, service: service}
}

func (h *SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	saved, err := h.service.Save(r.Context(), caller, h.kind, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, saved)
}

func (h *SavedHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Unsave(r.Context(), caller, h.kind, id); err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, map[string]string{"status": "removed"})
}

func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	saved, err := h.service.List(r.Context(), caller, h.kind)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, saved)
}
