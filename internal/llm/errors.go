package llm

import "errors"

// Typed failures for every LLM path. Callers surface Reason(err) as a
// machine-readable code; no failure is silently dropped.
var (
	ErrNotConfigured = errors.New("OpenAI API key not configured")
	ErrRateLimited   = errors.New("rate limit exceeded, please try again later")
	ErrProvider      = errors.New("provider error")
	ErrParse         = errors.New("malformed JSON from model")
)

// Reason maps an LLM failure to a stable machine-readable code.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "llm_not_configured"
	case errors.Is(err, ErrRateLimited):
		return "llm_rate_limited"
	case errors.Is(err, ErrParse):
		return "llm_parse_error"
	case errors.Is(err, ErrProvider):
		return "llm_provider_error"
	default:
		return "llm_error"
	}
}
