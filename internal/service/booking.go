package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BookingService manages bookings and their payments. Event attendee counts
// are derived from confirmed bookings and refreshed on every status change.
type BookingService struct {
	tx       domain.Transactor
	bookings domain.BookingRepository
	payments domain.PaymentRepository
	events   domain.EventRepository
	listings domain.ListingRatingRepository
	cache    listingCache
	now      func() time.Time
}

// NewBookingService creates a new booking service. cache may be nil.
func NewBookingService(
	tx domain.Transactor,
	bookings domain.BookingRepository,
	payments domain.PaymentRepository,
	events domain.EventRepository,
	listings domain.ListingRatingRepository,
	cache domain.ListingCache,
) *BookingService {
	return &BookingService{
		tx:       tx,
		bookings: bookings,
		payments: payments,
		events:   events,
		listings: listings,
		cache:    listingCache{cache: cache},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create books an event, business or package for the caller
func (s *BookingService) Create(ctx context.Context, actor domain.Actor, input domain.BookingCreate) (*domain.Booking, error) {
	kind, targetID, err := input.Target()
	if err != nil {
		return nil, err
	}

	if kind == domain.KindEvent {
		event, err := s.events.GetByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
		if event.Status != domain.EventPublished {
			return nil, fmt.Errorf("%w: event is not open for registration", domain.ErrInvalidInput)
		}
		if event.Capacity > 0 && event.CurrentAttendees >= event.Capacity {
			return nil, fmt.Errorf("%w: this event is full", domain.ErrInvalidInput)
		}
	} else {
		ok, err := s.listings.Exists(ctx, kind, targetID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, kind)
		}
	}

	now := s.now()
	booking := &domain.Booking{
		ID:              uuid.New(),
		UserID:          actor.UserID,
		EventID:         input.EventID,
		BusinessID:      input.BusinessID,
		PackageID:       input.PackageID,
		Status:          domain.BookingPending,
		NumberOfPeople:  input.NumberOfPeople,
		SpecialRequests: strings.TrimSpace(input.SpecialRequests),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Get returns a booking visible to its owner and admins
func (s *BookingService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(booking.UserID) {
		return nil, fmt.Errorf("%w: booking belongs to another user", domain.ErrForbidden)
	}
	return booking, nil
}

// ListMine returns the caller's bookings
func (s *BookingService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, actor.UserID)
}

// Cancel cancels a pending or confirmed booking
func (s *BookingService) Cancel(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.Get(ctx, actor, id)
		if err != nil {
			return err
		}
		if booking.Status != domain.BookingPending && booking.Status != domain.BookingConfirmed {
			return fmt.Errorf("%w: a %s booking cannot be cancelled", domain.ErrInvalidInput, booking.Status)
		}
		return s.setStatus(ctx, booking, domain.BookingCancelled)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateEvent(ctx, booking)
	return booking, nil
}

// AddPayment records a pending payment against the caller's booking
func (s *BookingService) AddPayment(ctx context.Context, actor domain.Actor, bookingID uuid.UUID, input domain.PaymentCreate) (*domain.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID {
		return nil, fmt.Errorf("%w: booking belongs to another user", domain.ErrForbidden)
	}
	if booking.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking is cancelled", domain.ErrInvalidInput)
	}

	now := s.now()
	payment := &domain.Payment{
		ID:            uuid.New(),
		BookingID:     booking.ID,
		Amount:        input.Amount,
		Method:        input.Method,
		Status:        domain.PaymentPending,
		TransactionID: strings.TrimSpace(input.TransactionID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments returns the payments of a booking visible to the caller
func (s *BookingService) ListPayments(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) ([]domain.Payment, error) {
	if _, err := s.Get(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	return s.payments.ListByBooking(ctx, bookingID)
}

// UpdatePaymentStatus moves a payment to a new status and carries the booking
// along: completed confirms it, failed or refunded cancels it. Admin only.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, actor domain.Actor, paymentID uuid.UUID, input domain.PaymentStatusUpdate) (*domain.Payment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var payment *domain.Payment
	var booking *domain.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := s.payments.UpdateStatus(ctx, payment.ID, input.Status); err != nil {
			return err
		}
		payment.Status = input.Status
		payment.UpdatedAt = s.now()

		var next string
		switch input.Status {
		case domain.PaymentCompleted:
			next = domain.BookingConfirmed
		case domain.PaymentFailed, domain.PaymentRefunded:
			next = domain.BookingCancelled
		default:
			return nil
		}

		booking, err = s.bookings.GetByID(ctx, payment.BookingID)
		if err != nil {
			return err
		}
		if booking.Status == next {
			return nil
		}
		return s.setStatus(ctx, booking, next)
	})
	if err != nil {
		return nil, err
	}

	if booking != nil {
		s.invalidateEvent(ctx, booking)
	}
	return payment, nil
}

// setStatus updates a booking and recounts its event's attendees
func (s *BookingService) setStatus(ctx context.Context, booking *domain.Booking, status string) error {
	if err := s.bookings.UpdateStatus(ctx, booking.ID, status); err != nil {
		return err
	}
	booking.Status = status
	booking.UpdatedAt = s.now()

	if booking.EventID == nil {
		return nil
	}
	n, err := s.bookings.CountConfirmedForEvent(ctx, *booking.EventID)
	if err != nil {
		return err
	}
	if _, err := s.events.SetAttendees(ctx, *booking.EventID, n); err != nil {
		return err
	}
	log.Debug().Str("event_id", booking.EventID.String()).Int("attendees", n).Msg("event attendees recounted")
	return nil
}

func (s *BookingService) invalidateEvent(ctx context.Context, booking *domain.Booking) {
	if booking.EventID != nil {
		s.cache.invalidate(ctx, domain.KindEvent, *booking.EventID)
	}
}
