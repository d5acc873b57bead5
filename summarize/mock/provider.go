package mock

import (
	"context"
	"sync"
)

// defaultResponse is a minimal record that parses against the summary
// schema, so pipelines under test reach the persist stage.
const defaultResponse = `{
  "title": "Mock Title",
  "summary": "A mock summary of the content.",
  "key_insights": "- mock insight",
  "tags": ["AI"],
  "source": "Mock"
}`

// Provider is a test double for summarize.Provider.
// It allows custom behavior injection via function fields and records
// every prompt it receives for order assertions.
type Provider struct {
	// ProviderName is returned by Name. Defaults to "mock".
	ProviderName string

	// GenerateFunc is called by Generate if set.
	// If nil, Generate returns a canned valid record.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// NewProvider creates a mock provider with the given name.
func NewProvider(name string) *Provider {
	if name == "" {
		name = "mock"
	}
	return &Provider{ProviderName: name}
}

// Name returns the configured provider name.
func (p *Provider) Name() string {
	return p.ProviderName
}

// Generate records the prompt and dispatches to GenerateFunc, or
// returns the default canned record.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()

	if p.GenerateFunc != nil {
		return p.GenerateFunc(ctx, prompt)
	}
	return defaultResponse, nil
}

// CallCount returns the number of times Generate was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

// Prompts returns a copy of all prompts received, in call order.
func (p *Provider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.prompts))
	copy(out, p.prompts)
	return out
}

// Reset clears recorded prompts and the custom function.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = nil
	p.GenerateFunc = nil
}
