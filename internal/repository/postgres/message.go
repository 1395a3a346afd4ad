package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// MessageRepository implements domain.MessageRepository
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, content, sender, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		message.ID,
		message.ConversationID,
		message.Content,
		string(message.Sender),
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListByConversation retrieves all messages of a conversation in creation order
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	query := `
		SELECT id, conversation_id, content, sender, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.conn(ctx).Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		var sender string
		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.Content,
			&sender,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Sender = domain.Sender(sender)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
