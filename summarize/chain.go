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
	"log/slog"
	"time"

	"github.com/poiesic/digest/retry"
)

// Chain tries an ordered list of providers until one succeeds.
// Each provider call runs under the configured retry policy for
// rate-limit signals and under a per-call timeout; a provider that
// still fails is recorded and the next provider in order is tried.
type Chain struct {
	providers []Provider
	policy    retry.Policy
	timeout   time.Duration
	logger    *slog.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithChainRetryPolicy sets the backoff schedule for rate-limited calls.
func WithChainRetryPolicy(policy retry.Policy) ChainOption {
	return func(c *Chain) {
		c.policy = policy
	}
}

// WithChainTimeout sets the per-call timeout for provider invocations.
func WithChainTimeout(timeout time.Duration) ChainOption {
	return func(c *Chain) {
		c.timeout = timeout
	}
}

// WithChainLogger sets a custom logger.
func WithChainLogger(logger *slog.Logger) ChainOption {
	return func(c *Chain) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChain creates a provider chain in the given order.
// An empty provider list is a configuration error.
func NewChain(providers []Provider, opts ...ChainOption) (*Chain, error) {
	if len(providers) == 0 {
		return nil, ErrEmptyChain
	}

	c := &Chain{
		providers: providers,
		policy:    retry.DefaultPolicy(),
		timeout:   120 * time.Second,
		logger:    slog.Default().With("component", "provider-chain"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Names returns the provider names in chain order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Generate sends the prompt to each provider in order and returns the
// first successful raw completion together with the name of the
// provider that produced it. When every provider fails the returned
// error is an *AllProvidersFailedError carrying each failure.
func (c *Chain) Generate(ctx context.Context, prompt string) (string, string, error) {
	var failures []*ProviderError

	for _, provider := range c.providers {
		var out string
		err := retry.Do(ctx, c.policy, IsRateLimited, func() error {
			callCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			var genErr error
			out, genErr = provider.Generate(callCtx, prompt)
			return genErr
		})
		if err == nil {
			return out, provider.Name(), nil
		}

		failure := &ProviderError{Provider: provider.Name(), Err: err}
		failures = append(failures, failure)
		c.logger.Warn("provider failed, falling through",
			"provider", provider.Name(),
			"err", err)
	}

	return "", "", &AllProvidersFailedError{Failures: failures}
}
