package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// SavedRepository implements domain.SavedRepository
type SavedRepository struct {
	db *DB
}

// NewSavedRepository creates a new saved-listing repository
func NewSavedRepository(db *DB) *SavedRepository {
	return &SavedRepository{db: db}
}

func (r *SavedRepository) Save(ctx context.Context, s *domain.SavedListing) error {
	_, _, table, fk, err := tablesFor(s.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, %s, user_id, created_at) VALUES ($1, $2, $3, $4)`, table, fk)
	if _, err := r.db.conn(ctx).Exec(ctx, query, s.ID, s.EntityID, s.UserID, s.CreatedAt); err != nil {
		return mapError(err, "save listing")
	}
	return nil
}

func (r *SavedRepository) Remove(ctx context.Context, kind domain.ListingKind, entityID, userID uuid.UUID) (bool, error) {
	_, _, table, fk, err := tablesFor(kind)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, table, fk)
	tag, err := r.db.conn(ctx).Exec(ctx, query, entityID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to unsave listing: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SavedRepository) ListByUser(ctx context.Context, kind domain.ListingKind, userID uuid.UUID) ([]domain.SavedListing, error) {
	_, _, table, fk, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, %s, user_id, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, fk, table)
	rows, err := r.db.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved listings: %w", err)
	}
	defer rows.Close()

	saved := []domain.SavedListing{}
	for rows.Next() {
		s := domain.SavedListing{Kind: kind}
		if err := rows.Scan(&s.ID, &s.EntityID, &s.UserID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved listing: %w", err)
		}
		saved = append(saved, s)
	}
	return saved, rows.Err()
}
