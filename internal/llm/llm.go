package llm

import (
	"context"
	"encoding/json"
)

// Client abstracts a JSON-mode completion call against an LLM provider.
// Implementations return the raw content of the model's reply; schema parsing
// is the caller's concern.
type Client interface {
	CompleteJSON(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Disabled is the client used when no API key is configured. It fails every
// call before any network activity.
type Disabled struct{}

// CompleteJSON always returns ErrNotConfigured.
func (Disabled) CompleteJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	return nil, ErrNotConfigured
}

var _ Client = Disabled{}
