// Package activities contains the Temporal activities of the suggestion
// pipeline: transport calls through the session cache and history access.
package activities

import (
	"context"
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/dgrunert/antwort/internal/llm"
	"github.com/dgrunert/antwort/internal/models"
)

// CompleteInput is the input for the Complete activity.
type CompleteInput struct {
	BaseURL     string               `json:"base_url"`
	APIKey      string               `json:"api_key"`
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int64                `json:"max_tokens"`
}

// CompleteOutput is the output from the Complete activity.
type CompleteOutput struct {
	Content string `json:"content"`
}

// CompletionActivities issues chat-completion calls through the shared
// session cache.
type CompletionActivities struct {
	cache *llm.Cache
}

// NewCompletionActivities creates a CompletionActivities instance backed by
// the given session cache.
func NewCompletionActivities(cache *llm.Cache) *CompletionActivities {
	return &CompletionActivities{cache: cache}
}

// Complete acquires a session for the call's credentials and issues one
// completion request. Typed generation errors are converted to non-retryable
// application errors carrying the kind as error type, so the workflow and
// API layers can map them back.
func (a *CompletionActivities) Complete(ctx context.Context, input CompleteInput) (CompleteOutput, error) {
	session := a.cache.Acquire(input.BaseURL, input.APIKey)

	content, err := session.Client.Complete(ctx, llm.CompletionRequest{
		Model:       input.Model,
		Messages:    input.Messages,
		Temperature: input.Temperature,
		MaxTokens:   input.MaxTokens,
	})
	if err != nil {
		var genErr *models.GenerationError
		if errors.As(err, &genErr) {
			return CompleteOutput{}, temporal.NewApplicationErrorWithOptions(
				genErr.Message, string(genErr.Kind),
				temporal.ApplicationErrorOptions{NonRetryable: true},
			)
		}
		return CompleteOutput{}, err
	}

	return CompleteOutput{Content: content}, nil
}
