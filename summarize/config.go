// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package summarize

import (
	"errors"
	"time"

	"github.com/poiesic/digest/retry"
)

// Known provider names, also the default chain order for "auto".
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DefaultChain is the fallback order used when the caller requests
// automatic provider resolution.
var DefaultChain = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic}

// BackendConfig holds the credentials and model selection for one backend.
// An empty APIKey marks the backend as unavailable.
type BackendConfig struct {
	APIKey string
	Model  string
}

// Config holds configuration for the summarization stage.
type Config struct {
	// Gemini, OpenAI and Anthropic configure the individual backends.
	// Backends without credentials are dropped from auto chains.
	Gemini    BackendConfig
	OpenAI    BackendConfig
	Anthropic BackendConfig

	// ChunkSize is the maximum chunk length in runes for map/reduce
	// summarization of long documents.
	ChunkSize int

	// Timeout bounds each individual backend call.
	Timeout time.Duration

	// Retry is the backoff schedule applied to rate-limited calls.
	Retry retry.Policy
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithGemini sets the Gemini API key and optional model override.
func WithGemini(apiKey, model string) ConfigOption {
	return func(c *Config) {
		c.Gemini.APIKey = apiKey
		if model != "" {
			c.Gemini.Model = model
		}
	}
}

// WithOpenAI sets the OpenAI API key and optional model override.
func WithOpenAI(apiKey, model string) ConfigOption {
	return func(c *Config) {
		c.OpenAI.APIKey = apiKey
		if model != "" {
			c.OpenAI.Model = model
		}
	}
}

// WithAnthropic sets the Anthropic API key and optional model override.
func WithAnthropic(apiKey, model string) ConfigOption {
	return func(c *Config) {
		c.Anthropic.APIKey = apiKey
		if model != "" {
			c.Anthropic.Model = model
		}
	}
}

// WithChunkSize sets the map/reduce chunk size in runes.
func WithChunkSize(size int) ConfigOption {
	return func(c *Config) {
		c.ChunkSize = size
	}
}

// WithTimeout sets the per-call timeout for backend invocations.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithRetryPolicy sets the backoff schedule for rate-limited calls.
func WithRetryPolicy(policy retry.Policy) ConfigOption {
	return func(c *Config) {
		c.Retry = policy
	}
}

// WithMaxRetries overrides only the attempt budget of the retry policy.
func WithMaxRetries(attempts int) ConfigOption {
	return func(c *Config) {
		c.Retry.MaxAttempts = attempts
	}
}

// DefaultConfig returns a Config with sensible defaults. Credentials are
// intentionally empty; callers supply them through options.
func DefaultConfig() *Config {
	return &Config{
		Gemini:    BackendConfig{Model: "gemini-2.0-flash"},
		OpenAI:    BackendConfig{Model: "gpt-4o-mini"},
		Anthropic: BackendConfig{Model: "claude-3-5-sonnet-latest"},
		ChunkSize: 6000,
		Timeout:   120 * time.Second,
		Retry:     retry.DefaultPolicy(),
	}
}

// NewConfig creates a Config with default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ChunkSize < 1 {
		return errors.New("summarize config: ChunkSize must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("summarize config: Timeout must be positive")
	}
	return c.Retry.Validate()
}
