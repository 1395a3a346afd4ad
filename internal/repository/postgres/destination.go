package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DestinationRepository implements domain.DestinationRepository
type DestinationRepository struct {
	db *DB
}

// NewDestinationRepository creates a new destination repository
func NewDestinationRepository(db *DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

const destinationColumns = `id, owner_id, title, slug, description, category, region, city, address,
	latitude, longitude, entrance_fee, best_time_to_visit, images, gallery_images,
	is_featured, status, rating, review_count, created_at, updated_at`

func scanDestination(row pgx.Row) (*domain.Destination, error) {
	var d domain.Destination
	err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Title,
		&d.Slug,
		&d.Description,
		&d.Category,
		&d.Region,
		&d.City,
		&d.Address,
		&d.Latitude,
		&d.Longitude,
		&d.EntranceFee,
		&d.BestTimeToVisit,
		(*[]string)(&d.Images),
		(*[]string)(&d.GalleryImages),
		&d.IsFeatured,
		&d.Status,
		&d.Rating,
		&d.ReviewCount,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	query := `
		INSERT INTO destinations (id, owner_id, title, slug, description, category, region, city, address,
			latitude, longitude, entrance_fee, best_time_to_visit, images, gallery_images,
			is_featured, status, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		d.ID, d.OwnerID, d.Title, d.Slug, d.Description, d.Category, d.Region, d.City, d.Address,
		d.Latitude, d.Longitude, d.EntranceFee, d.BestTimeToVisit, []string(d.Images), []string(d.GalleryImages),
		d.IsFeatured, d.Status, d.Rating, d.ReviewCount, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create destination")
	}
	return nil
}

func (r *DestinationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1`
	d, err := scanDestination(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get destination")
	}
	return d, nil
}

func (r *DestinationRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Destination, error) {
	where, args := listingWhere(filter, func(ph string) string { return "category = " + ph })
	order, args := listingOrder(filter, args)

	rows, err := r.db.conn(ctx).Query(ctx, `SELECT `+destinationColumns+` FROM destinations`+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	defer rows.Close()

	destinations := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan destination: %w", err)
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

// Update writes every client-editable column. rating and review_count are
// owned by the rating aggregate and never written here.
func (r *DestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	query := `
		UPDATE destinations
		SET title = $1, slug = $2, description = $3, category = $4, region = $5, city = $6, address = $7,
			latitude = $8, longitude = $9, entrance_fee = $10, best_time_to_visit = $11,
			images = $12, gallery_images = $13, is_featured = $14, status = $15, updated_at = $16
		WHERE id = $17
	`
	tag, err := r.db.conn(ctx).Exec(ctx, query,
		d.Title, d.Slug, d.Description, d.Category, d.Region, d.City, d.Address,
		d.Latitude, d.Longitude, d.EntranceFee, d.BestTimeToVisit,
		[]string(d.Images), []string(d.GalleryImages), d.IsFeatured, d.Status, d.UpdatedAt,
		d.ID,
	)
	if err != nil {
		return mapError(err, "update destination")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update destination: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "destinations", id)
}

func (r *DestinationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, "destinations", slug)
}
