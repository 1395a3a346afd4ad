package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// ConversationRepository implements domain.ConversationRepository
type ConversationRepository struct {
	db *DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Create(ctx context.Context, c *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, session_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		c.ID,
		c.SessionID,
		c.UserID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create conversation")
	}
	return nil
}

func (r *ConversationRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	query := `
		SELECT id, session_id, user_id, created_at, updated_at
		FROM conversations
		WHERE session_id = $1
	`
	var c domain.Conversation
	err := r.db.conn(ctx).QueryRow(ctx, query, sessionID).Scan(
		&c.ID,
		&c.SessionID,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "get conversation")
	}
	return &c, nil
}

func (r *ConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Conversation, error) {
	query := `
		SELECT id, session_id, user_id, created_at, updated_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.conn(ctx).Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := []domain.Conversation{}
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(
			&c.ID,
			&c.SessionID,
			&c.UserID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (r *ConversationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE conversations SET updated_at = $1 WHERE id = $2`
	_, err := r.db.conn(ctx).Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}
