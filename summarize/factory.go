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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/digest/summarize/anthropic"
	"github.com/poiesic/digest/summarize/gemini"
	"github.com/poiesic/digest/summarize/openai"
)

// ResolveChainNames expands a provider selection into an ordered name
// list. "auto" expands to the explicit chain spec (comma-separated) or,
// when that is empty, to the default chain.
func ResolveChainNames(provider, chainSpec string) []string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider != "" && provider != "auto" {
		return []string{provider}
	}

	var names []string
	for _, token := range strings.Split(chainSpec, ",") {
		if token = strings.TrimSpace(token); token != "" {
			names = append(names, strings.ToLower(token))
		}
	}
	if len(names) == 0 {
		names = append(names, DefaultChain...)
	}
	return names
}

// BuildChain constructs a provider chain in the given name order.
// Providers without credentials are dropped with a warning rather than
// failing the run; an unknown provider name is an error, and so is a
// chain that ends up empty.
func BuildChain(ctx context.Context, names []string, cfg *Config, logger *slog.Logger) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	var providers []Provider
	for _, name := range names {
		provider, err := newProvider(ctx, name, cfg)
		if err != nil {
			if errors.Is(err, ErrMissingCredentials) {
				logger.Warn("provider unavailable, dropping from chain",
					"provider", name,
					"err", err)
				continue
			}
			return nil, err
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: no usable provider in %v", ErrEmptyChain, names)
	}

	return NewChain(providers,
		WithChainRetryPolicy(cfg.Retry),
		WithChainTimeout(cfg.Timeout),
		WithChainLogger(logger))
}

func newProvider(ctx context.Context, name string, cfg *Config) (Provider, error) {
	switch name {
	case ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingCredentials)
		}
		return gemini.New(ctx, gemini.Config{
			APIKey:       cfg.Gemini.APIKey,
			Model:        cfg.Gemini.Model,
			SystemPrompt: SystemPrompt,
		})
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingCredentials)
		}
		return openai.New(openai.Config{
			APIKey:       cfg.OpenAI.APIKey,
			Model:        cfg.OpenAI.Model,
			SystemPrompt: SystemPrompt,
		})
	case ProviderAnthropic:
		if cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY", ErrMissingCredentials)
		}
		return anthropic.New(anthropic.Config{
			APIKey:       cfg.Anthropic.APIKey,
			Model:        cfg.Anthropic.Model,
			SystemPrompt: SystemPrompt,
		})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}
