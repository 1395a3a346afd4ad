package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReviewRepository implements domain.ReviewRepository over the per-kind review tables
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

var reviewOrder = map[string]string{
	domain.ReviewSortCreated: "created_at DESC",
	domain.ReviewSortRating:  "rating DESC, created_at DESC",
	domain.ReviewSortHelpful: "helpful_count DESC, created_at DESC",
}

func reviewColumns(fk string) string {
	return `id, ` + fk + `, user_id, rating, title, content, helpful_count, reported, report_reason, created_at, updated_at`
}

func scanReview(row pgx.Row, kind domain.ListingKind) (*domain.Review, error) {
	rv := domain.Review{Kind: kind}
	err := row.Scan(
		&rv.ID,
		&rv.EntityID,
		&rv.UserID,
		&rv.Rating,
		&rv.Title,
		&rv.Content,
		&rv.HelpfulCount,
		&rv.Reported,
		&rv.ReportReason,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	_, table, _, fk, err := tablesFor(rv.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, user_id, rating, title, content, helpful_count, reported, report_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, table, fk)
	_, err = r.db.conn(ctx).Exec(ctx, query,
		rv.ID,
		rv.EntityID,
		rv.UserID,
		rv.Rating,
		rv.Title,
		rv.Content,
		rv.HelpfulCount,
		rv.Reported,
		rv.ReportReason,
		rv.CreatedAt,
		rv.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create review")
	}
	return nil
}

func (r *ReviewRepository) Get(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID) (*domain.Review, error) {
	_, table, _, fk, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND %s = $2`, reviewColumns(fk), table, fk)
	rv, err := scanReview(r.db.conn(ctx).QueryRow(ctx, query, id, entityID), kind)
	if err != nil {
		return nil, mapError(err, "get review")
	}
	return rv, nil
}

func (r *ReviewRepository) ListByEntity(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID, sortBy string) ([]domain.Review, error) {
	_, table, _, fk, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	order, ok := reviewOrder[sortBy]
	if !ok {
		order = reviewOrder[domain.ReviewSortCreated]
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`, reviewColumns(fk), table, fk, order)

	rows, err := r.db.conn(ctx).Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	_, table, _, _, err := tablesFor(rv.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s
		SET rating = $1, title = $2, content = $3, updated_at = $4
		WHERE id = $5
	`, table)
	tag, err := r.db.conn(ctx).Exec(ctx, query, rv.Rating, rv.Title, rv.Content, rv.UpdatedAt, rv.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update review: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, kind domain.ListingKind, id uuid.UUID) error {
	_, table, _, _, err := tablesFor(kind)
	if err != nil {
		return err
	}
	return deleteByID(ctx, r.db, table, id)
}

func (r *ReviewRepository) IncrementHelpful(ctx context.Context, kind domain.ListingKind, id uuid.UUID) (int, error) {
	_, table, _, _, err := tablesFor(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`UPDATE %s SET helpful_count = helpful_count + 1 WHERE id = $1 RETURNING helpful_count`, table)
	var count int
	if err := r.db.conn(ctx).QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, mapError(err, "mark review helpful")
	}
	return count, nil
}

func (r *ReviewRepository) MarkReported(ctx context.Context, kind domain.ListingKind, id uuid.UUID, reason string) error {
	_, table, _, _, err := tablesFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET reported = TRUE, report_reason = $1 WHERE id = $2`, table)
	tag, err := r.db.conn(ctx).Exec(ctx, query, reason, id)
	if err != nil {
		return fmt.Errorf("failed to report review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to report review: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *ReviewRepository) ListRatings(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID) ([]int, error) {
	_, table, _, fk, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT rating FROM %s WHERE %s = $1`, table, fk)
	rows, err := r.db.conn(ctx).Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	ratings := []int{}
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
