package handler

import (
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/service"
)

// BookingHandler handles booking and payment endpoints
type BookingHandler struct {
	service *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service *service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create books a listing for the caller
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var input domain.BookingCreate
	if !decode(w, r, &input) {
		return
	}

	booking, err := h.service.Create(r.Context(), caller, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, booking)
}

// List returns the caller's bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.ListMine(r.Context(), caller)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, bookings)
}

// Get returns one booking
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.Get(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, booking)
}

// Cancel cancels a booking
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.Cancel(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, booking)
}

// AddPayment records a pending payment for a booking
func (h *BookingHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var input domain.PaymentCreate
	if !decode(w, r, &input) {
		return
	}

	payment, err := h.service.AddPayment(r.Context(), caller, id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, payment)
}

// ListPayments returns a booking's payments
func (h *BookingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, payments)
}

// UpdatePaymentStatus changes a payment's status and the booking with it
func (h *BookingHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var input domain.PaymentStatusUpdate
	if !decode(w, r, &input) {
		return
	}

	payment, err := h.service.UpdatePaymentStatus(r.Context(), caller, id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, payment)
}
