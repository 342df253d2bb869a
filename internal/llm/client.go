// Package llm holds the transport layer towards the generative service:
// provider clients for OpenAI-compatible and Anthropic endpoints, a factory
// that dispatches on the model name, and the single-slot session cache keyed
// by credentials.
package llm

import (
	"context"

	"github.com/dgrunert/antwort/internal/models"
)

// CompletionRequest is one outbound chat-completion call.
type CompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int64                `json:"max_tokens"`
}

// Client issues a completion call and returns the assistant message content.
// Implementations map every failure to a *models.GenerationError (or pass
// context cancellation through untouched).
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
