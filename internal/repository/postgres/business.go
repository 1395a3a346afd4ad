package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BusinessRepository implements domain.BusinessRepository
type BusinessRepository struct {
	db *DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

const businessColumns = `id, owner_id, title, slug, description, business_type, region, city, address,
	contact_email, contact_phone, website, facilities, services, gallery_images,
	is_featured, status, is_verified, verification_date, rating, review_count, created_at, updated_at`

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var b domain.Business
	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.Title,
		&b.Slug,
		&b.Description,
		&b.BusinessType,
		&b.Region,
		&b.City,
		&b.Address,
		&b.ContactEmail,
		&b.ContactPhone,
		&b.Website,
		(*[]string)(&b.Facilities),
		(*[]string)(&b.Services),
		(*[]string)(&b.GalleryImages),
		&b.IsFeatured,
		&b.Status,
		&b.IsVerified,
		&b.VerificationDate,
		&b.Rating,
		&b.ReviewCount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepository) Create(ctx context.Context, b *domain.Business) error {
	query := `
		INSERT INTO businesses (id, owner_id, title, slug, description, business_type, region, city, address,
			contact_email, contact_phone, website, facilities, services, gallery_images,
			is_featured, status, is_verified, verification_date, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		b.ID, b.OwnerID, b.Title, b.Slug, b.Description, b.BusinessType, b.Region, b.City, b.Address,
		b.ContactEmail, b.ContactPhone, b.Website,
		[]string(b.Facilities), []string(b.Services), []string(b.GalleryImages),
		b.IsFeatured, b.Status, b.IsVerified, b.VerificationDate, b.Rating, b.ReviewCount, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create business")
	}
	return nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	b, err := scanBusiness(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get business")
	}
	return b, nil
}

func (r *BusinessRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Business, error) {
	where, args := listingWhere(filter, func(ph string) string { return "business_type = " + ph })
	order, args := listingOrder(filter, args)

	rows, err := r.db.conn(ctx).Query(ctx, `SELECT `+businessColumns+` FROM businesses`+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	businesses := []domain.Business{}
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, *b)
	}
	return businesses, rows.Err()
}

func (r *BusinessRepository) Update(ctx context.Context, b *domain.Business) error {
	query := `
		UPDATE businesses
		SET title = $1, slug = $2, description = $3, business_type = $4, region = $5, city = $6, address = $7,
			contact_email = $8, contact_phone = $9, website = $10, facilities = $11, services = $12,
			gallery_images = $13, is_featured = $14, status = $15, is_verified = $16,
			verification_date = $17, updated_at = $18
		WHERE id = $19
	`
	tag, err := r.db.conn(ctx).Exec(ctx, query,
		b.Title, b.Slug, b.Description, b.BusinessType, b.Region, b.City, b.Address,
		b.ContactEmail, b.ContactPhone, b.Website, []string(b.Facilities), []string(b.Services),
		[]string(b.GalleryImages), b.IsFeatured, b.Status, b.IsVerified,
		b.VerificationDate, b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return mapError(err, "update business")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update business: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *BusinessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "businesses", id)
}

func (r *BusinessRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, "businesses", slug)
}
