package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// listingTables maps each reviewable kind to its storage tables
var listingTables = map[domain.ListingKind]struct {
	listing string
	reviews string
	saved   string
	fk      string
}{
	domain.KindDestination: {"destinations", "destination_reviews", "saved_destinations", "destination_id"},
	domain.KindEvent:       {"events", "event_reviews", "saved_events", "event_id"},
	domain.KindBusiness:    {"businesses", "business_reviews", "saved_businesses", "business_id"},
	domain.KindPackage:     {"packages", "package_reviews", "saved_packages", "package_id"},
}

func tablesFor(kind domain.ListingKind) (listing, reviews, saved, fk string, err error) {
	t, ok := listingTables[kind]
	if !ok {
		return "", "", "", "", fmt.Errorf("%w: unknown listing kind %q", domain.ErrInvalidInput, kind)
	}
	return t.listing, t.reviews, t.saved, t.fk, nil
}

// ListingRatingRepository implements domain.ListingRatingRepository
type ListingRatingRepository struct {
	db *DB
}

// NewListingRatingRepository creates a new listing rating repository
func NewListingRatingRepository(db *DB) *ListingRatingRepository {
	return &ListingRatingRepository{db: db}
}

func (r *ListingRatingRepository) Exists(ctx context.Context, kind domain.ListingKind, id uuid.UUID) (bool, error) {
	table, _, _, _, err := tablesFor(kind)
	if err != nil {
		return false, err
	}
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := r.db.conn(ctx).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", kind, err)
	}
	return exists, nil
}

func (r *ListingRatingRepository) UpdateRating(ctx context.Context, kind domain.ListingKind, id uuid.UUID, summary domain.RatingSummary) (bool, error) {
	table, _, _, _, err := tablesFor(kind)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		UPDATE %s
		SET rating = $1, review_count = $2, updated_at = NOW()
		WHERE id = $3
	`, table)
	tag, err := r.db.conn(ctx).Exec(ctx, query, summary.Rating, summary.ReviewCount, id)
	if err != nil {
		return false, fmt.Errorf("failed to update %s rating: %w", kind, err)
	}
	return tag.RowsAffected() > 0, nil
}

// listingWhere renders the shared list filters. categoryExpr receives the
// placeholder for the category argument.
func listingWhere(f domain.ListingFilter, categoryExpr func(ph string) string) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}

	if f.Featured != nil {
		add("is_featured = ?", *f.Featured)
	}
	if f.Category != "" {
		add(categoryExpr("?"), f.Category)
	}
	if f.Region != "" {
		add("region ILIKE ?", f.Region)
	}
	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.OwnerID != nil {
		add("owner_id = ?", *f.OwnerID)
	}
	if f.Search != "" {
		add("(title ILIKE ? OR description ILIKE ?)", "%"+f.Search+"%")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// listingOrder renders ORDER BY/LIMIT/OFFSET for a validated filter
func listingOrder(f domain.ListingFilter, args []any) (string, []any) {
	return pageOrder(f, domain.ListingOrderings, args)
}

// pageOrder orders by f.Ordering when allowed lists it, newest first otherwise
func pageOrder(f domain.ListingFilter, allowed map[string]bool, args []any) (string, []any) {
	order := "created_at DESC"
	if allowed[f.Ordering] {
		col := strings.TrimPrefix(f.Ordering, "-")
		dir := "ASC"
		if strings.HasPrefix(f.Ordering, "-") {
			dir = "DESC"
		}
		order = col + " " + dir + ", created_at DESC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	return fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", order, len(args)-1, len(args)), args
}

func slugExists(ctx context.Context, db *DB, table, slug string) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE slug = $1)`, table)
	if err := db.conn(ctx).QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func deleteByID(ctx context.Context, db *DB, table string, id uuid.UUID) error {
	tag, err := db.conn(ctx).Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete from %s: %w", table, domain.ErrNotFound)
	}
	return nil
}
