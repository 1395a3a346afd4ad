package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Conversation is a chat session identified by an opaque session token
type Conversation struct {
	ID        uuid.UUID  `json:"id"`
	SessionID string     `json:"session_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []Message  `json:"messages,omitempty"`
}

// OwnedBy reports whether userID owns the conversation. Anonymous
// conversations are owned by nobody.
func (c *Conversation) OwnedBy(userID uuid.UUID) bool {
	return c.UserID != nil && *c.UserID == userID
}

// ChatRequest is the body of a chat message request
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=100"`
}

// ChatReplyContent is the bot reply payload
type ChatReplyContent struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatReply is returned for every accepted chat message
type ChatReply struct {
	SessionID string           `json:"session_id"`
	Response  ChatReplyContent `json:"response"`
}

// ConversationRepository defines the interface for conversation storage
type ConversationRepository interface {
	// Create returns ErrConflict when the session id is taken.
	Create(ctx context.Context, conversation *Conversation) error
	GetBySessionID(ctx context.Context, sessionID string) (*Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Conversation, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}
