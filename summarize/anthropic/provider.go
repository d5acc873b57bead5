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


// Package anthropic implements the summarization provider for
// Anthropic models through langchaingo.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// Config holds the Anthropic backend settings.
type Config struct {
	APIKey       string
	Model        string // defaults to claude-3-5-sonnet-latest
	SystemPrompt string
}

// Provider calls Anthropic messages models through langchaingo.
type Provider struct {
	client llms.Model
	system string
}

// New creates an Anthropic provider. The API key is required.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}

	client, err := anthropic.New(
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("anthropic: create client: %w", err)
	}

	return &Provider{client: client, system: cfg.SystemPrompt}, nil
}

// Name identifies the backend.
func (p *Provider) Name() string {
	return "anthropic"
}

// Generate sends the prompt with the system instruction as a system
// message, which the messages API lifts into its system parameter.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(p.system)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := p.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(1200),
	)
	if err != nil {
		return "", fmt.Errorf("anthropic: generate content: %w", err)
	}
	if len(response.Choices) < 1 {
		return "", errors.New("anthropic: backend returned no completion")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
