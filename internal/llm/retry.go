package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cvscreen-backend/internal/shared/telemetry"
)

const (
	retryMaxAttempts = 3
	retryDelay       = 5 * time.Second
)

// Retry wraps a Client with a bounded retry loop. Only rate-limit failures are
// retried; any other error returns immediately. The delay select yields to
// context cancellation.
type Retry struct {
	Base     Client
	Attempts int
	Delay    time.Duration
}

// NewRetry wraps base with the default policy of 3 attempts and a fixed 5s
// delay between rate-limited attempts.
func NewRetry(base Client) *Retry {
	return &Retry{Base: base, Attempts: retryMaxAttempts, Delay: retryDelay}
}

// CompleteJSON calls the base client, sleeping between rate-limited attempts.
// After the final attempt the rate-limit failure is returned as-is.
func (r *Retry) CompleteJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = retryMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err := r.Base.CompleteJSON(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !errors.Is(err, ErrRateLimited) {
			return nil, err
		}
		if attempt == attempts {
			break
		}
		telemetry.Warn("llm.rate_limited", map[string]any{
			"attempt":  attempt,
			"delay_ms": r.Delay.Milliseconds(),
		})
		select {
		case <-time.After(r.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

var _ Client = (*Retry)(nil)
