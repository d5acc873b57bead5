package summarize

import "context"

// Provider is a single summarization backend. Implementations wrap one
// vendor's call conventions (endpoint, auth, model, system-prompt
// placement) and must be safe for concurrent use.
type Provider interface {
	// Name identifies the backend in logs and provider tags.
	Name() string

	// Generate sends a prompt to the backend and returns the raw text
	// of the first completion. Transient failures (rate limits) are
	// returned as-is; retry handling belongs to the caller.
	Generate(ctx context.Context, prompt string) (string, error)
}
