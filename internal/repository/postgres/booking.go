package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookingRepository implements domain.BookingRepository
type BookingRepository struct {
	db *DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, event_id, business_id, package_id, status, number_of_people,
	special_requests, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.EventID,
		&b.BusinessID,
		&b.PackageID,
		&b.Status,
		&b.NumberOfPeople,
		&b.SpecialRequests,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, event_id, business_id, package_id, status, number_of_people,
			special_requests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		b.ID, b.UserID, b.EventID, b.BusinessID, b.PackageID, b.Status, b.NumberOfPeople,
		b.SpecialRequests, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create booking")
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get booking")
	}
	return b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.conn(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update booking status: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *BookingRepository) CountConfirmedForEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE event_id = $1 AND status = $2`
	var n int
	if err := r.db.conn(ctx).QueryRow(ctx, query, eventID, domain.BookingConfirmed).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count event bookings: %w", err)
	}
	return n, nil
}

// PaymentRepository implements domain.PaymentRepository
type PaymentRepository struct {
	db *DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, booking_id, amount, payment_method, status, transaction_id, created_at, updated_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.TransactionID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, payment_method, status, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		p.ID, p.BookingID, p.Amount, p.Method, p.Status, p.TransactionID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create payment")
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get payment")
	}
	return p, nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at`
	rows, err := r.db.conn(ctx).Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.conn(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update payment status: %w", domain.ErrNotFound)
	}
	return nil
}
