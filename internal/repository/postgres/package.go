package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PackageRepository implements domain.PackageRepository
type PackageRepository struct {
	db *DB
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db *DB) *PackageRepository {
	return &PackageRepository{db: db}
}

const packageColumns = `id, owner_id, title, slug, description, short_description, region, location,
	price, discounted_price, duration_days, difficulty, max_group_size, min_age,
	categories, included, not_included, itinerary, languages, gallery_images,
	is_featured, status, rating, review_count, created_at, updated_at`

func scanPackage(row pgx.Row) (*domain.Package, error) {
	var p domain.Package
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.ShortDescription,
		&p.Region,
		&p.Location,
		&p.Price,
		&p.DiscountedPrice,
		&p.DurationDays,
		&p.Difficulty,
		&p.MaxGroupSize,
		&p.MinAge,
		(*[]string)(&p.Categories),
		(*[]string)(&p.Included),
		(*[]string)(&p.NotIncluded),
		(*[]string)(&p.Itinerary),
		(*[]string)(&p.Languages),
		(*[]string)(&p.GalleryImages),
		&p.IsFeatured,
		&p.Status,
		&p.Rating,
		&p.ReviewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) Create(ctx context.Context, p *domain.Package) error {
	query := `
		INSERT INTO packages (id, owner_id, title, slug, description, short_description, region, location,
			price, discounted_price, duration_days, difficulty, max_group_size, min_age,
			categories, included, not_included, itinerary, languages, gallery_images,
			is_featured, status, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		p.ID, p.OwnerID, p.Title, p.Slug, p.Description, p.ShortDescription, p.Region, p.Location,
		p.Price, p.DiscountedPrice, p.DurationDays, p.Difficulty, p.MaxGroupSize, p.MinAge,
		[]string(p.Categories), []string(p.Included), []string(p.NotIncluded),
		[]string(p.Itinerary), []string(p.Languages), []string(p.GalleryImages),
		p.IsFeatured, p.Status, p.Rating, p.ReviewCount, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create package")
	}
	return nil
}

func (r *PackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	p, err := scanPackage(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get package")
	}
	return p, nil
}

func (r *PackageRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Package, error) {
	where, args := listingWhere(filter, func(ph string) string { return ph + " = ANY(categories)" })
	order, args := listingOrder(filter, args)

	rows, err := r.db.conn(ctx).Query(ctx, `SELECT `+packageColumns+` FROM packages`+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	packages := []domain.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, *p)
	}
	return packages, rows.Err()
}

func (r *PackageRepository) Update(ctx context.Context, p *domain.Package) error {
	query := `
		UPDATE packages
		SET title = $1, slug = $2, description = $3, short_description = $4, region = $5, location = $6,
			price = $7, discounted_price = $8, duration_days = $9, difficulty = $10, max_group_size = $11,
			min_age = $12, categories = $13, included = $14, not_included = $15, itinerary = $16,
			languages = $17, gallery_images = $18, is_featured = $19, status = $20, updated_at = $21
		WHERE id = $22
	`
	tag, err := r.db.conn(ctx).Exec(ctx, query,
		p.Title, p.Slug, p.Description, p.ShortDescription, p.Region, p.Location,
		p.Price, p.DiscountedPrice, p.DurationDays, p.Difficulty, p.MaxGroupSize,
		p.MinAge, []string(p.Categories), []string(p.Included), []string(p.NotIncluded), []string(p.Itinerary),
		[]string(p.Languages), []string(p.GalleryImages), p.IsFeatured, p.Status, p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return mapError(err, "update package")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update package: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *PackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "packages", id)
}

func (r *PackageRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, "packages", slug)
}
