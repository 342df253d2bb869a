// Package api exposes the reply suggestion pipeline over HTTP. The Service
// validates requests and launches workflows; handlers.go adapts it to chi.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/dgrunert/antwort/internal/llm"
	"github.com/dgrunert/antwort/internal/models"
	"github.com/dgrunert/antwort/internal/store"
	"github.com/dgrunert/antwort/internal/workflow"
)

// MaxMessageRunes is the longest message accepted for generation or rewrite,
// counted in runes, not bytes.
const MaxMessageRunes = 4000

// WorkflowRunner starts workflows and waits for their result. Satisfied by
// client.Client; narrowed so tests can substitute their own runner.
type WorkflowRunner interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// Service coordinates validation, settings, the session cache and workflow
// execution. It owns no transport logic itself.
type Service struct {
	runner    WorkflowRunner
	store     store.Store
	cache     *llm.Cache
	taskQueue string
	logger    *slog.Logger
}

// NewService creates a Service. taskQueue must be the queue the worker polls.
func NewService(runner WorkflowRunner, s store.Store, cache *llm.Cache, taskQueue string, logger *slog.Logger) *Service {
	return &Service{runner: runner, store: s, cache: cache, taskQueue: taskQueue, logger: logger}
}

// GenerateRequest is the payload of POST /api/suggestions. Params is
// optional; omitted axes fall back to the stored defaults.
type GenerateRequest struct {
	Message string                  `json:"message"`
	Params  *models.StyleParameters `json:"params,omitempty"`
}

// GenerateResult carries the suggestions and the effective style parameters
// after auto-detection.
type GenerateResult struct {
	Suggestions []string               `json:"suggestions"`
	Params      models.StyleParameters `json:"params"`
}

// RewriteRequest is the payload of POST /api/rewrite.
type RewriteRequest struct {
	OriginalMessage string               `json:"original_message,omitempty"`
	Suggestion      string               `json:"suggestion"`
	Intent          models.RewriteIntent `json:"intent"`
}

// RewriteResult carries the reworked suggestion.
type RewriteResult struct {
	Text string `json:"text"`
}

// Generate validates the request and runs the generate workflow.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("load settings: %w", err)
	}
	if err := validateCall(settings, req.Message); err != nil {
		return GenerateResult{}, err
	}

	input := workflow.GenerateInput{
		Message:  req.Message,
		Params:   effectiveParams(settings, req.Params),
		Settings: settings,
	}

	var out workflow.GenerateOutput
	if err := s.run(ctx, "generate", workflow.GenerateWorkflowName, input, &out); err != nil {
		return GenerateResult{}, err
	}
	return GenerateResult{Suggestions: out.Suggestions, Params: out.Params}, nil
}

// Rewrite validates the request and runs the rewrite workflow.
func (s *Service) Rewrite(ctx context.Context, req RewriteRequest) (RewriteResult, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return RewriteResult{}, fmt.Errorf("load settings: %w", err)
	}
	if err := validateCall(settings, req.Suggestion); err != nil {
		return RewriteResult{}, err
	}
	// The optional original message is embedded into the prompt too and gets
	// the same length bound; only blankness is allowed.
	if utf8.RuneCountInString(req.OriginalMessage) > MaxMessageRunes {
		return RewriteResult{}, models.NewGenerationError(models.ErrInputTooLong)
	}

	input := workflow.RewriteInput{
		OriginalMessage: req.OriginalMessage,
		Suggestion:      req.Suggestion,
		Intent:          req.Intent,
		Settings:        settings,
	}

	var out workflow.RewriteOutput
	if err := s.run(ctx, "rewrite", workflow.RewriteWorkflowName, input, &out); err != nil {
		return RewriteResult{}, err
	}
	return RewriteResult{Text: out.Text}, nil
}

// Settings returns the stored settings.
func (s *Service) Settings(ctx context.Context) (models.Settings, error) {
	return s.store.GetSettings(ctx)
}

// SaveSettings persists new settings and invalidates the transport session
// when the credentials or endpoint changed. A blank API key keeps the stored
// one: settings responses never echo the key, so clients resubmit without it.
func (s *Service) SaveSettings(ctx context.Context, settings models.Settings) error {
	previous, err := s.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if strings.TrimSpace(settings.APIKey) == "" {
		settings.APIKey = previous.APIKey
	}
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}
	if previous.APIKey != settings.APIKey || previous.BaseURL != settings.BaseURL {
		s.cache.Invalidate()
		s.logger.Info("Transport session invalidated after settings change")
	}
	return nil
}

// History returns all history entries, newest first.
func (s *Service) History(ctx context.Context) ([]models.ConversationEntry, error) {
	return s.store.ListEntries(ctx)
}

// DeleteHistoryEntry removes one entry.
func (s *Service) DeleteHistoryEntry(ctx context.Context, id string) error {
	return s.store.DeleteEntry(ctx, id)
}

// ClearHistory removes all entries.
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.store.ClearHistory(ctx)
}

// Presets returns the built-in style presets.
func (s *Service) Presets() []models.StylePreset {
	return models.Presets()
}

// Healthy reports whether the backing store is reachable.
func (s *Service) Healthy(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// run starts a workflow and decodes its result, translating failures back
// into typed generation errors.
func (s *Service) run(ctx context.Context, prefix, name string, input, output any) error {
	opts := client.StartWorkflowOptions{
		ID:        prefix + "-" + uuid.NewString(),
		TaskQueue: s.taskQueue,
	}
	run, err := s.runner.ExecuteWorkflow(ctx, opts, name, input)
	if err != nil {
		s.logger.Error("Failed to start workflow", "workflow", name, "error", err)
		return models.WrapGenerationError(models.ErrUnexpected, err)
	}
	if err := run.Get(ctx, output); err != nil {
		return translateWorkflowError(err)
	}
	return nil
}

// translateWorkflowError recovers the error kind carried as the application
// error type across the workflow boundary.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		kind := models.KindFromString(appErr.Type())
		return models.WrapGenerationError(kind, err)
	}
	var timeoutErr *temporal.TimeoutError
	if errors.As(err, &timeoutErr) {
		return models.WrapGenerationError(models.ErrTimeout, err)
	}
	return models.WrapGenerationError(models.ErrUnexpected, err)
}

// validateCall enforces the preconditions shared by generate and rewrite.
// It runs before any network activity.
func validateCall(settings models.Settings, message string) error {
	if strings.TrimSpace(settings.APIKey) == "" {
		return models.NewGenerationError(models.ErrMissingCredentials)
	}
	if strings.TrimSpace(message) == "" {
		return models.NewGenerationError(models.ErrInputBlank)
	}
	if utf8.RuneCountInString(message) > MaxMessageRunes {
		return models.NewGenerationError(models.ErrInputTooLong)
	}
	return nil
}

// effectiveParams merges request overrides over the stored defaults. Empty
// axes in the override keep their default.
func effectiveParams(settings models.Settings, override *models.StyleParameters) models.StyleParameters {
	params := settings.Defaults()
	if override == nil {
		return params
	}
	if override.Tone != "" {
		params.Tone = override.Tone
	}
	if override.Goal != "" {
		params.Goal = override.Goal
	}
	if override.Length != "" {
		params.Length = override.Length
	}
	if override.EmojiLevel != "" {
		params.EmojiLevel = override.EmojiLevel
	}
	if override.Formality != "" {
		params.Formality = override.Formality
	}
	return params
}
