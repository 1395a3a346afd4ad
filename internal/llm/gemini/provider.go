package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/config"
	"github.com/Rrens/tourism-api/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Provider implements llm.Provider on the Gemini API. The client is created
// once and shared for the life of the process.
type Provider struct {
	client *genai.Client
	model  string
}

// NewProvider creates the Gemini client. A missing API key is an error.
func NewProvider(ctx context.Context, cfg config.GeminiConfig) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{client: client, model: cfg.Model}, nil
}

// Close releases the underlying client
func (p *Provider) Close() error {
	return p.client.Close()
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) AvailableModels() []string {
	return []string{
		"gemini-1.5-flash",
		"gemini-1.5-pro",
		"gemini-2.0-flash",
		"gemini-2.5-flash",
	}
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-1.5-flash"
}

func (p *Provider) IsConfigured() bool {
	return p.client != nil
}

func (p *Provider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	system, history, last, err := splitTurns(req.Turns)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = p.DefaultModel()
	}

	generativeModel := p.client.GenerativeModel(model)
	generativeModel.SetTemperature(req.Config.Temperature)
	generativeModel.SetTopP(req.Config.TopP)
	generativeModel.SetTopK(req.Config.TopK)
	generativeModel.SetMaxOutputTokens(req.Config.MaxOutputTokens)
	generativeModel.SystemInstruction = system

	session := generativeModel.StartChat()
	session.History = history

	start := time.Now()
	resp, err := session.SendMessage(ctx, genai.Text(last))
	latency := time.Since(start).Milliseconds()

	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, &llm.APIError{Provider: p.Name(), StatusCode: apiErr.Code, Err: err}
		}
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return nil, &llm.APIError{Provider: p.Name(), Err: err}
		}
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("empty response from gemini")
	}

	var output strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output.WriteString(string(text))
		}
	}

	tokensUsed := 0
	if resp.UsageMetadata != nil {
		tokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &llm.Response{
		Text:       output.String(),
		Model:      model,
		TokensUsed: tokensUsed,
		LatencyMs:  latency,
	}, nil
}

// splitTurns maps turns onto a Gemini chat. The instruction turn becomes the
// system instruction and the final caller turn is the message to send.
func splitTurns(turns []llm.Turn) (system *genai.Content, history []*genai.Content, last string, err error) {
	if len(turns) == 0 || turns[len(turns)-1].Role != llm.RoleCaller {
		return nil, nil, "", errors.New("gemini: history must end with a caller turn")
	}

	for _, turn := range turns[:len(turns)-1] {
		switch turn.Role {
		case llm.RoleInstruction:
			system = genai.NewUserContent(genai.Text(turn.Text))
		case llm.RoleCaller:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(turn.Text)}})
		default:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(turn.Text)}})
		}
	}
	return system, history, turns[len(turns)-1].Text, nil
}
