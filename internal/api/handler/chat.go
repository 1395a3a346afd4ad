package handler

import (
	"context"
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
)

// ChatService is the conversation manager behind the chatbot endpoints
type ChatService interface {
	SendMessage(ctx context.Context, userID uuid.UUID, req domain.ChatRequest) (*domain.ChatReply, error)
	GetHistory(ctx context.Context, userID uuid.UUID, sessionID string) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Conversation, error)
}

// ChatHandler handles chatbot endpoints
type ChatHandler struct {
	chatService ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage stores the caller's message and returns the assistant's reply
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	var input domain.ChatRequest
	if !decode(w, r, &input) {
		return
	}

	reply, err := h.chatService.SendMessage(r.Context(), caller.UserID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.OK(w, reply)
}

// History returns a conversation with all of its messages
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		response.BadRequest(w, "session_id is required")
		return
	}

	conv, err := h.chatService.GetHistory(r.Context(), caller.UserID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.OK(w, conv)
}

// Conversations lists the caller's conversations, newest first
func (h *ChatHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := intQuery(w, r, "offset")
	if !ok {
		return
	}

	convs, err := h.chatService.ListConversations(r.Context(), caller.UserID, limit, offset)
	if err != nil {
		handleError(w, r, err)
		return
	}

	response.OK(w, convs)
}
