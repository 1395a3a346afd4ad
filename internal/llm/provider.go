package llm

import (
	"context"
	"fmt"
)

// Role is a turn's position in the two-party exchange
type Role string

const (
	// RoleInstruction is the fixed leading persona turn
	RoleInstruction Role = "instruction"
	// RoleCounterparty is the assistant side
	RoleCounterparty Role = "counterparty"
	// RoleCaller is the human side
	RoleCaller Role = "caller"
)

// Turn is one entry of the ordered history sent to a provider
type Turn struct {
	Role Role
	Text string
}

// GenerationConfig holds sampling parameters
type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// Request contains reply generation parameters
type Request struct {
	Turns  []Turn
	Config GenerationConfig
	Model  string
}

// Response contains LLM generation result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Generate produces the next counterparty turn
	Generate(ctx context.Context, req Request) (*Response, error)
}

// APIError is a failure reported by the upstream generative service itself,
// as opposed to a local or transport failure.
type APIError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api error (status %d): %v", e.Provider, e.StatusCode, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
