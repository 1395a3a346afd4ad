package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/llm"
	"github.com/Rrens/tourism-api/pkg/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Replies stored in place of a generated one when the provider fails
const (
	FallbackAPIError = "Error with the chatbot service. Please try again later."
	FallbackGeneric  = "Sorry, I encountered an error. Please try again later."
)

var errEmptyReply = errors.New("provider returned an empty reply")

// ChatService manages chat conversations and their message logs
type ChatService struct {
	conversations domain.ConversationRepository
	messages      domain.MessageRepository
	provider      llm.Provider
	timeout       time.Duration

	now          func() time.Time
	newSessionID func() string
}

// NewChatService creates a new chat service. timeout bounds each provider call;
// zero disables the bound.
func NewChatService(
	conversations domain.ConversationRepository,
	messages domain.MessageRepository,
	provider llm.Provider,
	timeout time.Duration,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		provider:      provider,
		timeout:       timeout,
		now:           func() time.Time { return time.Now().UTC() },
		newSessionID:  func() string { return uuid.New().String() },
	}
}

// SendMessage stores the caller's message, asks the provider for a reply and
// stores that reply. Provider failures never fail the call: a fallback text
// is stored and returned instead.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, req domain.ChatRequest) (*domain.ChatReply, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if len(sessionID) > 100 {
		return nil, fmt.Errorf("%w: session_id must be at most 100 characters", domain.ErrInvalidInput)
	}

	conv, err := s.resolveConversation(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	history, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	userMsg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Content:        text,
		Sender:         domain.SenderUser,
		CreatedAt:      s.now(),
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}
	metrics.ChatMessagesTotal.WithLabelValues(string(domain.SenderUser)).Inc()

	reply := s.generateReply(ctx, conv.SessionID, history, text)

	// The user turn is already stored, so its reply must be stored even if
	// the caller went away during generation.
	persistCtx := context.WithoutCancel(ctx)

	botMsg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Content:        reply,
		Sender:         domain.SenderBot,
		CreatedAt:      after(userMsg.CreatedAt, s.now()),
	}
	if err := s.messages.Create(persistCtx, botMsg); err != nil {
		return nil, fmt.Errorf("failed to save bot message: %w", err)
	}
	metrics.ChatMessagesTotal.WithLabelValues(string(domain.SenderBot)).Inc()

	if err := s.conversations.Touch(persistCtx, conv.ID, botMsg.CreatedAt); err != nil {
		log.Warn().Err(err).Str("session_id", conv.SessionID).Msg("failed to touch conversation")
	}

	return &domain.ChatReply{
		SessionID: conv.SessionID,
		Response: domain.ChatReplyContent{
			Content:   botMsg.Content,
			Timestamp: botMsg.CreatedAt,
		},
	}, nil
}

// GetHistory returns a conversation with its messages. Unlike SendMessage,
// a session owned by someone else is rejected rather than sidestepped.
func (s *ChatService) GetHistory(ctx context.Context, userID uuid.UUID, sessionID string) (*domain.Conversation, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", domain.ErrInvalidInput)
	}

	conv, err := s.conversations.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Str("session_id", sessionID).Msg("conversation not found")
		}
		return nil, err
	}
	if !conv.OwnedBy(userID) {
		log.Warn().Str("session_id", sessionID).Str("user_id", userID.String()).Msg("history requested for another user's conversation")
		return nil, fmt.Errorf("%w: conversation belongs to another user", domain.ErrForbidden)
	}

	conv.Messages, err = s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return conv, nil
}

// ListConversations returns the caller's conversations, most recent first
func (s *ChatService) ListConversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.conversations.ListByUser(ctx, userID, limit, offset)
}

// resolveConversation maps a session id onto a conversation owned by userID:
//   - no session id: new conversation under a generated id
//   - owned by the caller: reused
//   - unknown: new conversation under the given id
//   - owned by someone else: new conversation under a generated id
func (s *ChatService) resolveConversation(ctx context.Context, userID uuid.UUID, sessionID string) (*domain.Conversation, error) {
	if sessionID == "" {
		return s.createConversation(ctx, userID, s.newSessionID(), "generated")
	}

	conv, err := s.conversations.GetBySessionID(ctx, sessionID)
	switch {
	case err == nil && conv.OwnedBy(userID):
		log.Info().Str("session_id", sessionID).Msg("continuing existing conversation")
		return conv, nil
	case err == nil:
		log.Warn().Str("session_id", sessionID).Str("user_id", userID.String()).Msg("session owned by another user, starting a new one")
		return s.createConversation(ctx, userID, s.newSessionID(), "takeover")
	case errors.Is(err, domain.ErrNotFound):
		created, err := s.createConversation(ctx, userID, sessionID, "provided")
		if !errors.Is(err, domain.ErrConflict) {
			return created, err
		}
		// Lost a race with a concurrent request for the same session id.
		existing, err := s.conversations.GetBySessionID(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve conversation: %w", err)
		}
		if existing.OwnedBy(userID) {
			return existing, nil
		}
		return s.createConversation(ctx, userID, s.newSessionID(), "takeover")
	default:
		return nil, fmt.Errorf("failed to resolve conversation: %w", err)
	}
}

func (s *ChatService) createConversation(ctx context.Context, userID uuid.UUID, sessionID, branch string) (*domain.Conversation, error) {
	now := s.now()
	owner := userID
	conv := &domain.Conversation{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserID:    &owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, err
	}

	metrics.ConversationsCreated.WithLabelValues(branch).Inc()
	log.Info().Str("session_id", sessionID).Str("branch", branch).Msg("created new conversation")
	return conv, nil
}

// generateReply never fails; any provider error or panic becomes a fallback text
func (s *ChatService) generateReply(ctx context.Context, sessionID string, history []domain.Message, message string) (reply string) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("session_id", sessionID).Msg("llm provider panicked")
			s.observe(start, "panic")
			metrics.LLMFallbacksTotal.WithLabelValues("panic").Inc()
			reply = FallbackGeneric
		}
	}()

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(callCtx, llm.Request{
		Turns:  llm.BuildTurns(history, message),
		Config: llm.DefaultGenerationConfig,
	})
	if err == nil && strings.TrimSpace(resp.Text) == "" {
		err = errEmptyReply
	}

	if err != nil {
		reason, text := "error", FallbackGeneric
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			reason, text = "api_error", FallbackAPIError
		} else if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		log.Error().Err(err).Str("provider", s.provider.Name()).Str("session_id", sessionID).Msg("failed to generate reply")
		s.observe(start, reason)
		metrics.LLMFallbacksTotal.WithLabelValues(reason).Inc()
		return text
	}

	s.observe(start, "ok")
	log.Debug().
		Str("provider", s.provider.Name()).
		Str("model", resp.Model).
		Int("tokens", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("generated reply")
	return resp.Text
}

func (s *ChatService) observe(start time.Time, status string) {
	metrics.LLMRequestDuration.WithLabelValues(s.provider.Name(), status).Observe(time.Since(start).Seconds())
}

// after returns t, nudged forward so it sorts strictly after prev at
// microsecond storage precision.
func after(prev, t time.Time) time.Time {
	floor := prev.Truncate(time.Microsecond).Add(time.Microsecond)
	if t.Before(floor) {
		return floor
	}
	return t
}
