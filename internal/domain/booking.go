package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking statuses
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Booking reserves exactly one event, business or package
type Booking struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	EventID         *uuid.UUID `json:"event_id,omitempty"`
	BusinessID      *uuid.UUID `json:"business_id,omitempty"`
	PackageID       *uuid.UUID `json:"package_id,omitempty"`
	Status          string     `json:"status"`
	NumberOfPeople  int        `json:"number_of_people"`
	SpecialRequests string     `json:"special_requests"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BookingCreate represents booking creation data
type BookingCreate struct {
	EventID         *uuid.UUID `json:"event_id,omitempty"`
	BusinessID      *uuid.UUID `json:"business_id,omitempty"`
	PackageID       *uuid.UUID `json:"package_id,omitempty"`
	NumberOfPeople  int        `json:"number_of_people" validate:"required,min=1"`
	SpecialRequests string     `json:"special_requests" validate:"max=2000"`
}

// Target returns the single listing the booking refers to
func (b BookingCreate) Target() (ListingKind, uuid.UUID, error) {
	var kind ListingKind
	var id uuid.UUID
	n := 0
	if b.EventID != nil {
		kind, id = KindEvent, *b.EventID
		n++
	}
	if b.BusinessID != nil {
		kind, id = KindBusiness, *b.BusinessID
		n++
	}
	if b.PackageID != nil {
		kind, id = KindPackage, *b.PackageID
		n++
	}
	if n != 1 {
		return "", uuid.Nil, fmt.Errorf("%w: exactly one of event_id, business_id, package_id is required", ErrInvalidInput)
	}
	return kind, id, nil
}

// Payment records money received for a booking
type Payment struct {
	ID            uuid.UUID       `json:"id"`
	BookingID     uuid.UUID       `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"payment_method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PaymentCreate represents payment creation data
type PaymentCreate struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"payment_method" validate:"required,oneof=stripe chapa cash"`
	TransactionID string          `json:"transaction_id" validate:"max=100"`
}

// PaymentStatusUpdate changes a payment's status
type PaymentStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed refunded"`
}

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountConfirmedForEvent(ctx context.Context, eventID uuid.UUID) (int, error)
}

// PaymentRepository defines the interface for payment storage
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
