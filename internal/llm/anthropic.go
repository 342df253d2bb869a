package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dgrunert/antwort/internal/models"
)

// AnthropicClient talks to the Anthropic Messages API. Selected by the
// provider factory for claude* model names.
type AnthropicClient struct {
	client anthropic.Client
}

// NewAnthropicClient creates a client bound to the given endpoint and key,
// with SDK retries disabled (see NewOpenAIClient).
func NewAnthropicClient(baseURL, apiKey string, httpClient *http.Client) *AnthropicClient {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &AnthropicClient{client: anthropic.NewClient(opts...)}
}

// Complete issues a messages call. System turns become the system prompt;
// the text blocks of the reply are concatenated into one content string.
func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var system []anthropic.TextBlockParam
	var turns []anthropic.MessageParam
	for _, m := range req.Messages {
		switch m.Role {
		case models.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case models.RoleAssistant:
			turns = append(turns, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		System:      system,
		Messages:    turns,
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", models.WrapGenerationError(kindForStatus(apiErr.StatusCode), err)
		}
		return "", mapTransportError(err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", models.NewGenerationError(models.ErrEmptyReply)
	}
	return b.String(), nil
}
