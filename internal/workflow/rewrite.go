package workflow

import (
	"go.temporal.io/sdk/workflow"

	"github.com/dgrunert/antwort/internal/models"
	"github.com/dgrunert/antwort/internal/parse"
	"github.com/dgrunert/antwort/internal/prompt"
)

// RewriteInput is the input of the rewrite workflow. OriginalMessage may be
// empty when the surrounding conversation is unknown.
type RewriteInput struct {
	OriginalMessage string               `json:"original_message,omitempty"`
	Suggestion      string               `json:"suggestion"`
	Intent          models.RewriteIntent `json:"intent"`
	Settings        models.Settings      `json:"settings"`
}

// RewriteOutput carries the reworked suggestion text.
type RewriteOutput struct {
	Text string `json:"text"`
}

// Rewrite reworks a previously selected suggestion. A single call: no
// corrective retry and no history write.
func Rewrite(ctx workflow.Context, input RewriteInput) (RewriteOutput, error) {
	userPrompt := prompt.BuildRewritePrompt(input.OriginalMessage, input.Suggestion, input.Intent)

	content, err := complete(ctx, input.Settings, prompt.BuildMessages(userPrompt, nil), generateTemperature, rewriteMaxTokens)
	if err != nil {
		return RewriteOutput{}, err
	}

	return RewriteOutput{Text: parse.Rewrite(content)}, nil
}
