package summarize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema indicates that backend output failed to parse or
	// validate against the structured record schema.
	ErrSchema = errors.New("response does not match summary schema")

	// ErrEmptyChain indicates that no provider in the requested chain
	// could be constructed. Fatal at startup.
	ErrEmptyChain = errors.New("provider chain is empty")

	// ErrMissingCredentials indicates that a backend has no API key
	// configured. Drops the backend from auto chains.
	ErrMissingCredentials = errors.New("missing API key")

	// ErrEmptyResponse indicates that a backend returned no completion.
	ErrEmptyResponse = errors.New("backend returned no completion")

	// ErrChainRequired is returned when a provider chain is not provided.
	ErrChainRequired = errors.New("provider chain required")

	// ErrEmptyInput indicates there is no text to summarize.
	ErrEmptyInput = errors.New("no text to summarize")
)

// ProviderError records a single backend's failure after its retry
// budget was exhausted. It triggers fallback to the next provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AllProvidersFailedError aggregates the per-provider failures of an
// exhausted chain. This is the item-level fatal condition for the
// summarization stage.
type AllProvidersFailedError struct {
	Failures []*ProviderError
}

func (e *AllProvidersFailedError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Provider
	}
	last := e.Failures[len(e.Failures)-1]
	return fmt.Sprintf("all providers failed (%s), last error: %v",
		strings.Join(names, ", "), last.Err)
}

// Unwrap exposes the last failure's cause.
func (e *AllProvidersFailedError) Unwrap() error {
	return e.Failures[len(e.Failures)-1]
}

// rate-limit markers across the supported backends
var rateLimitMarkers = []string{
	"429",
	"resource_exhausted",
	"resource exhausted",
	"rate limit",
	"rate_limit",
	"too many requests",
	"quota",
	"overloaded",
}

// IsRateLimited reports whether an error looks like a backend
// rate-limit signal worth backing off for. Matching is on the error
// text because the backends surface limits through different SDK types.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
