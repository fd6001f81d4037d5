// Package llm abstracts streaming text generation behind a small client
// interface, with an OpenAI-compatible implementation.
package llm

import (
	"context"

	"github.com/pkg/errors"

	"github.com/malonaz/chatd/configuration"
)

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    string
	Content string
}

// CreateTextGenerationRequest describes a streaming completion.
type CreateTextGenerationRequest struct {
	Model        string
	Messages     []*Message
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
	// EnableSearch asks the provider to ground the answer with web search,
	// where supported. Providers that do not support it ignore the flag.
	EnableSearch bool
}

// StreamEvent is one event received from the model stream.
type StreamEvent struct {
	Token string
	// Reasoning carries inline reasoning tokens when the model emits them.
	Reasoning    string
	FinishReason string
}

// Stream of generation events.
type Stream interface {
	Recv() (*StreamEvent, error)
	Close()
}

// Client generates text.
type Client interface {
	CreateTextGeneration(context.Context, *CreateTextGenerationRequest) (Stream, error)
}

// NewClient resolves the model's provider from configuration and returns a
// client for it.
func NewClient(config *configuration.Config, model string) (Client, error) {
	provider := config.ProviderForModel(model)
	if provider == nil {
		return nil, errors.Errorf("unknown model (%s)", model)
	}
	return NewOpenAIClient(provider.APIKey(), provider.APIHost), nil
}
