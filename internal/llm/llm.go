// Package llm is the provider-agnostic call surface over the portal's
// two LLM backends: OpenAI (primary) and Gemini (secondary, optional,
// with silent fallback to primary).
package llm

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNotConfigured is returned when a provider has no API key. Callers
// degrade gracefully — a missing key must never crash a workflow.
var ErrNotConfigured = errors.New("llm: client not configured")

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single provider call, constructed fresh per call.
// An empty Model selects the provider's default.
type Request struct {
	System      string
	Messages    []Message
	Model       string
	Temperature float64
	MaxTokens   int
	ExpectJSON  bool
}

// NewRequest builds the common single-turn request shape.
func NewRequest(system, user string) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: user}},
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// Client is the strategy interface both providers implement. Errors are
// typed rather than embedded in the response text; pipelines convert
// them into inspectable degraded results.
type Client interface {
	Name() string
	Call(ctx context.Context, req Request) (string, error)
}
