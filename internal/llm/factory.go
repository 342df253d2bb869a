package llm

import (
	"context"
	"net/http"
	"strings"
)

// Provider names supported by the factory.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// MultiProviderClient implements Client by dispatching to the appropriate
// provider based on the request's model name. Both providers share the
// session's credentials and HTTP client, so one cached session can serve a
// model change without rebuilding.
type MultiProviderClient struct {
	openai    *OpenAIClient
	anthropic *AnthropicClient
}

// NewMultiProviderClient creates a client that can dispatch to both
// providers with the same endpoint and key.
func NewMultiProviderClient(baseURL, apiKey string, httpClient *http.Client) *MultiProviderClient {
	return &MultiProviderClient{
		openai:    NewOpenAIClient(baseURL, apiKey, httpClient),
		anthropic: NewAnthropicClient(baseURL, apiKey, httpClient),
	}
}

// Complete dispatches to the provider inferred from the model name.
func (c *MultiProviderClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if DetectProvider(req.Model) == ProviderAnthropic {
		return c.anthropic.Complete(ctx, req)
	}
	return c.openai.Complete(ctx, req)
}

// DetectProvider infers the provider from the model name.
func DetectProvider(model string) string {
	if strings.HasPrefix(model, "claude") {
		return ProviderAnthropic
	}
	return ProviderOpenAI
}
