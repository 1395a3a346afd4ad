package service

import (
	"context"
	"testing"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingMocks struct {
	bookings *MockBookingRepository
	payments *MockPaymentRepository
	events   *MockEventRepository
	listings *MockListingRatingRepository
}

func newTestBookingService() (*BookingService, bookingMocks) {
	m := bookingMocks{
		bookings: new(MockBookingRepository),
		payments: new(MockPaymentRepository),
		events:   new(MockEventRepository),
		listings: new(MockListingRatingRepository),
	}
	return NewBookingService(passthroughTx{}, m.bookings, m.payments, m.events, m.listings, nil), m
}

func TestBookingService_CreateEventBooking(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: uuid.New()}

	t.Run("success", func(t *testing.T) {
		svc, m := newTestBookingService()
		event := &domain.Event{ID: uuid.New(), Status: domain.EventPublished, Capacity: 10, CurrentAttendees: 3}
		m.events.On("GetByID", ctx, event.ID).Return(event, nil)
		m.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		got, err := svc.Create(ctx, actor, domain.BookingCreate{EventID: &event.ID, NumberOfPeople: 2})
		require.NoError(t, err)
		assert.Equal(t, domain.BookingPending, got.Status)
		assert.Equal(t, actor.UserID, got.UserID)
	})

	t.Run("event full", func(t *testing.T) {
		svc, m := newTestBookingService()
		event := &domain.Event{ID: uuid.New(), Status: domain.EventPublished, Capacity: 2, CurrentAttendees: 2}
		m.events.On("GetByID", ctx, event.ID).Return(event, nil)

		_, err := svc.Create(ctx, actor, domain.BookingCreate{EventID: &event.ID, NumberOfPeople: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "full")
	})

	t.Run("unpublished event", func(t *testing.T) {
		svc, m := newTestBookingService()
		event := &domain.Event{ID: uuid.New(), Status: domain.EventDraft}
		m.events.On("GetByID", ctx, event.ID).Return(event, nil)

		_, err := svc.Create(ctx, actor, domain.BookingCreate{EventID: &event.ID, NumberOfPeople: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("needs exactly one target", func(t *testing.T) {
		svc, _ := newTestBookingService()
		a, b := uuid.New(), uuid.New()

		_, err := svc.Create(ctx, actor, domain.BookingCreate{EventID: &a, PackageID: &b, NumberOfPeople: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Create(ctx, actor, domain.BookingCreate{NumberOfPeople: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing package", func(t *testing.T) {
		svc, m := newTestBookingService()
		id := uuid.New()
		m.listings.On("Exists", ctx, domain.KindPackage, id).Return(false, nil)

		_, err := svc.Create(ctx, actor, domain.BookingCreate{PackageID: &id, NumberOfPeople: 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_PaymentStatusDrivesBooking(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		payment string
		booking string
	}{
		{domain.PaymentCompleted, domain.BookingConfirmed},
		{domain.PaymentFailed, domain.BookingCancelled},
		{domain.PaymentRefunded, domain.BookingCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.payment, func(t *testing.T) {
			svc, m := newTestBookingService()
			eventID := uuid.New()
			booking := &domain.Booking{ID: uuid.New(), UserID: uuid.New(), EventID: &eventID, Status: domain.BookingPending}
			payment := &domain.Payment{ID: uuid.New(), BookingID: booking.ID, Amount: decimal.NewFromInt(50), Status: domain.PaymentPending}

			m.payments.On("GetByID", ctx, payment.ID).Return(payment, nil)
			m.payments.On("UpdateStatus", ctx, payment.ID, tt.payment).Return(nil)
			m.bookings.On("GetByID", ctx, booking.ID).Return(booking, nil)
			m.bookings.On("UpdateStatus", ctx, booking.ID, tt.booking).Return(nil)
			m.bookings.On("CountConfirmedForEvent", ctx, eventID).Return(7, nil)
			m.events.On("SetAttendees", ctx, eventID, 7).Return(true, nil)

			got, err := svc.UpdatePaymentStatus(ctx, admin, payment.ID, domain.PaymentStatusUpdate{Status: tt.payment})
			require.NoError(t, err)
			assert.Equal(t, tt.payment, got.Status)
			assert.Equal(t, tt.booking, booking.Status)

			m.bookings.AssertExpectations(t)
			m.events.AssertExpectations(t)
		})
	}
}

func TestBookingService_PaymentStatusAdminOnly(t *testing.T) {
	svc, _ := newTestBookingService()

	_, err := svc.UpdatePaymentStatus(context.Background(), domain.Actor{UserID: uuid.New()}, uuid.New(), domain.PaymentStatusUpdate{Status: domain.PaymentCompleted})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{UserID: uuid.New()}

	t.Run("recounts attendees", func(t *testing.T) {
		svc, m := newTestBookingService()
		eventID := uuid.New()
		booking := &domain.Booking{ID: uuid.New(), UserID: owner.UserID, EventID: &eventID, Status: domain.BookingConfirmed}
		m.bookings.On("GetByID", ctx, booking.ID).Return(booking, nil)
		m.bookings.On("UpdateStatus", ctx, booking.ID, domain.BookingCancelled).Return(nil)
		m.bookings.On("CountConfirmedForEvent", ctx, eventID).Return(0, nil)
		m.events.On("SetAttendees", ctx, eventID, 0).Return(true, nil)

		got, err := svc.Cancel(ctx, owner, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, got.Status)
		m.events.AssertExpectations(t)
	})

	t.Run("already cancelled", func(t *testing.T) {
		svc, m := newTestBookingService()
		booking := &domain.Booking{ID: uuid.New(), UserID: owner.UserID, Status: domain.BookingCancelled}
		m.bookings.On("GetByID", ctx, booking.ID).Return(booking, nil)

		_, err := svc.Cancel(ctx, owner, booking.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		svc, m := newTestBookingService()
		booking := &domain.Booking{ID: uuid.New(), UserID: uuid.New(), Status: domain.BookingPending}
		m.bookings.On("GetByID", ctx, booking.ID).Return(booking, nil)

		_, err := svc.Cancel(ctx, owner, booking.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestBookingService_AddPayment(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{UserID: uuid.New()}

	svc, m := newTestBookingService()
	booking := &domain.Booking{ID: uuid.New(), UserID: owner.UserID, Status: domain.BookingPending}
	m.bookings.On("GetByID", ctx, booking.ID).Return(booking, nil)
	m.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

	_, err := svc.AddPayment(ctx, owner, booking.ID, domain.PaymentCreate{Amount: decimal.Zero, Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := svc.AddPayment(ctx, owner, booking.ID, domain.PaymentCreate{Amount: decimal.NewFromFloat(99.5), Method: "stripe"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, got.Status)
	assert.Equal(t, booking.ID, got.BookingID)

	_, err = svc.AddPayment(ctx, domain.Actor{UserID: uuid.New()}, booking.ID, domain.PaymentCreate{Amount: decimal.NewFromInt(1), Method: "cash"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
