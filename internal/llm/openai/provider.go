package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/tourism-api/internal/config"
	"github.com/Rrens/tourism-api/internal/llm"
	"github.com/sashabaranov/go-openai"
)

// Provider implements llm.Provider for OpenAI chat completions
type Provider struct {
	client       *openai.Client
	defaultModel string
}

// NewProvider creates a new OpenAI provider. An empty key yields an
// unconfigured provider that the router will refuse to hand out.
func NewProvider(cfg config.OpenAIConfig) *Provider {
	p := &Provider{defaultModel: cfg.Model}
	if p.defaultModel == "" {
		p.defaultModel = "gpt-4o-mini"
	}
	if cfg.APIKey != "" {
		p.client = openai.NewClient(cfg.APIKey)
	}
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "openai"
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return []string{
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-3.5-turbo",
	}
}

// DefaultModel returns the default model
func (p *Provider) DefaultModel() string {
	return p.defaultModel
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.client != nil
}

// Generate maps the instruction turn to a system message. TopK has no
// equivalent in the chat completions API and is ignored.
func (p *Provider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if !p.IsConfigured() {
		return nil, errors.New("openai provider is not configured (missing API key)")
	}

	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	messages := make([]openai.ChatCompletionMessage, len(req.Turns))
	for i, turn := range req.Turns {
		messages[i] = openai.ChatCompletionMessage{
			Role:    chatRole(turn.Role),
			Content: turn.Text,
		}
	}

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Config.Temperature,
		TopP:        req.Config.TopP,
		MaxTokens:   int(req.Config.MaxOutputTokens),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &llm.APIError{Provider: p.Name(), StatusCode: apiErr.HTTPStatusCode, Err: err}
		}
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	return &llm.Response{
		Text:       resp.Choices[0].Message.Content,
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}

func chatRole(role llm.Role) string {
	switch role {
	case llm.RoleInstruction:
		return openai.ChatMessageRoleSystem
	case llm.RoleCaller:
		return openai.ChatMessageRoleUser
	default:
		return openai.ChatMessageRoleAssistant
	}
}
