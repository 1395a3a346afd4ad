package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sender tags who produced a message
type Sender string

const (
	SenderUser   Sender = "user"
	SenderBot    Sender = "bot"
	SenderSystem Sender = "system"
)

// Message represents a single chat message within a conversation
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
	Sender         Sender    `json:"sender"`
	CreatedAt      time.Time `json:"created_at"`
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// ListByConversation returns messages oldest first.
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]Message, error)
}
