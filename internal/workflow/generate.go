// Package workflow contains the Temporal workflow definitions of the
// suggestion pipeline.
//
// generate.go drives one generation: style inference, prompt composition,
// context assembly, the transport call, parsing, and the single corrective
// retry when the reply had to be parsed heuristically.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/dgrunert/antwort/internal/activities"
	"github.com/dgrunert/antwort/internal/models"
	"github.com/dgrunert/antwort/internal/parse"
	"github.com/dgrunert/antwort/internal/prompt"
	"github.com/dgrunert/antwort/internal/style"
)

// Workflow and task-queue names shared between the worker and the API layer.
const (
	TaskQueue            = "antwort"
	GenerateWorkflowName = "GenerateSuggestions"
	RewriteWorkflowName  = "RewriteSuggestion"
)

// Sampling and sizing parameters of the transport calls.
const (
	generateTemperature = 0.7
	retryTemperature    = 0.3
	generateMaxTokens   = 500
	rewriteMaxTokens    = 200

	// contextEntryLimit is how many recent history entries feed the context
	// window when conversational memory is enabled.
	contextEntryLimit = 5
)

// GenerateInput is the input of the generate workflow. Validation (blank
// message, length, missing credentials) happens before the workflow starts.
type GenerateInput struct {
	Message  string                 `json:"message"`
	Params   models.StyleParameters `json:"params"`
	Settings models.Settings        `json:"settings"`
}

// GenerateOutput carries the five suggestions plus the effective style
// parameters after auto-detection.
type GenerateOutput struct {
	Suggestions []string               `json:"suggestions"`
	Params      models.StyleParameters `json:"params"`
}

// Generate runs the full suggestion pipeline for one message.
func Generate(ctx workflow.Context, input GenerateInput) (GenerateOutput, error) {
	logger := workflow.GetLogger(ctx)

	params := input.Params
	if input.Settings.AutoDetectStyle {
		signal := style.Classify(input.Message)
		params = style.Apply(params, signal)
	}

	userPrompt := prompt.BuildGeneratePrompt(input.Message, params)

	var contextTurns []models.ChatMessage
	if input.Settings.UseContext {
		recentOpts := workflow.ActivityOptions{
			StartToCloseTimeout: 10 * time.Second,
			RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 2},
		}
		recentCtx := workflow.WithActivityOptions(ctx, recentOpts)

		var recent activities.RecentEntriesOutput
		recentInput := activities.RecentEntriesInput{Limit: contextEntryLimit}
		err := workflow.ExecuteActivity(recentCtx, "RecentEntries", recentInput).Get(ctx, &recent)
		if err != nil {
			// Context is an enrichment; generate without it.
			logger.Warn("Failed to load recent history for context", "error", err)
		} else {
			contextTurns = prompt.AssembleContext(recent.Entries)
		}
	}

	content, err := complete(ctx, input.Settings, prompt.BuildMessages(userPrompt, contextTurns), generateTemperature, generateMaxTokens)
	if err != nil {
		return GenerateOutput{}, err
	}
	result := parse.Suggestions(content)

	if result.Provenance == parse.ProvenanceHeuristic {
		// One corrective retry with a stricter instruction and lower
		// temperature. A failed or still-heuristic retry is discarded: it
		// must never turn a degraded-but-present result into an error.
		retryMessages := prompt.BuildMessages(prompt.WithRetryDirective(userPrompt), contextTurns)
		retryContent, retryErr := complete(ctx, input.Settings, retryMessages, retryTemperature, generateMaxTokens)
		if retryErr != nil {
			logger.Warn("Corrective retry failed, keeping heuristic result", "error", retryErr)
		} else if retryResult := parse.Suggestions(retryContent); retryResult.Provenance != parse.ProvenanceHeuristic {
			result = retryResult
		}
	}

	recordEntry(ctx, input.Message, params, result.Suggestions)

	return GenerateOutput{Suggestions: result.Suggestions, Params: params}, nil
}

// recordEntry appends the completed generation to the history. Write
// failures are logged, never surfaced to the caller.
func recordEntry(ctx workflow.Context, message string, params models.StyleParameters, suggestions []string) {
	logger := workflow.GetLogger(ctx)

	appendOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 2},
	}
	appendCtx := workflow.WithActivityOptions(ctx, appendOpts)

	appendInput := activities.AppendEntryInput{
		InputText:   message,
		Params:      params,
		Suggestions: suggestions,
	}
	var appended activities.AppendEntryOutput
	if err := workflow.ExecuteActivity(appendCtx, "AppendEntry", appendInput).Get(ctx, &appended); err != nil {
		logger.Warn("Failed to record history entry", "error", err)
		return
	}
	logger.Info("History entry recorded", "entry_id", appended.EntryID)
}

// complete issues one transport call. Temporal-level retries are pinned to a
// single attempt: the pipeline's own retry controller is the only policy.
func complete(ctx workflow.Context, settings models.Settings, messages []models.ChatMessage, temperature float64, maxTokens int64) (string, error) {
	opts := workflow.ActivityOptions{
		StartToCloseTimeout: 60 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	}
	callCtx := workflow.WithActivityOptions(ctx, opts)

	input := activities.CompleteInput{
		BaseURL:     settings.BaseURL,
		APIKey:      settings.APIKey,
		Model:       settings.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	var out activities.CompleteOutput
	if err := workflow.ExecuteActivity(callCtx, "Complete", input).Get(ctx, &out); err != nil {
		return "", err
	}
	return out.Content, nil
}
