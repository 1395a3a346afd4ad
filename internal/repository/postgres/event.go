package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EventRepository implements domain.EventRepository
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, owner_id, title, slug, description, category, region, city, venue,
	start_date, end_date, price, capacity, current_attendees, images,
	is_featured, status, rating, review_count, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.Title,
		&e.Slug,
		&e.Description,
		&e.Category,
		&e.Region,
		&e.City,
		&e.Venue,
		&e.StartDate,
		&e.EndDate,
		&e.Price,
		&e.Capacity,
		&e.CurrentAttendees,
		(*[]string)(&e.Images),
		&e.IsFeatured,
		&e.Status,
		&e.Rating,
		&e.ReviewCount,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, owner_id, title, slug, description, category, region, city, venue,
			start_date, end_date, price, capacity, current_attendees, images,
			is_featured, status, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		e.ID, e.OwnerID, e.Title, e.Slug, e.Description, e.Category, e.Region, e.City, e.Venue,
		e.StartDate, e.EndDate, e.Price, e.Capacity, e.CurrentAttendees, []string(e.Images),
		e.IsFeatured, e.Status, e.Rating, e.ReviewCount, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create event")
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get event")
	}
	return e, nil
}

func (r *EventRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Event, error) {
	where, args := listingWhere(filter, func(ph string) string { return "category = " + ph })
	order, args := listingOrder(filter, args)

	rows, err := r.db.conn(ctx).Query(ctx, `SELECT `+eventColumns+` FROM events`+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, slug = $2, description = $3, category = $4, region = $5, city = $6, venue = $7,
			start_date = $8, end_date = $9, price = $10, capacity = $11, images = $12,
			is_featured = $13, status = $14, updated_at = $15
		WHERE id = $16
	`
	tag, err := r.db.conn(ctx).Exec(ctx, query,
		e.Title, e.Slug, e.Description, e.Category, e.Region, e.City, e.Venue,
		e.StartDate, e.EndDate, e.Price, e.Capacity, []string(e.Images),
		e.IsFeatured, e.Status, e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		return mapError(err, "update event")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update event: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "events", id)
}

func (r *EventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, "events", slug)
}

func (r *EventRepository) SetAttendees(ctx context.Context, id uuid.UUID, attendees int) (bool, error) {
	query := `UPDATE events SET current_attendees = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.conn(ctx).Exec(ctx, query, attendees, id)
	if err != nil {
		return false, fmt.Errorf("failed to update event attendees: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
