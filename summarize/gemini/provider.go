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


// Package gemini implements the summarization provider for Google
// Gemini models through langchaingo.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Config holds the Gemini backend settings.
type Config struct {
	APIKey       string
	Model        string // defaults to gemini-2.0-flash
	SystemPrompt string
}

// Provider calls Gemini models through the langchaingo googleai client.
type Provider struct {
	client *googleai.GoogleAI
	system string
}

// New creates a Gemini provider. The API key is required.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Provider{client: client, system: cfg.SystemPrompt}, nil
}

// Name identifies the backend.
func (p *Provider) Name() string {
	return "gemini"
}

// Generate sends the prompt and returns the raw completion text.
// Gemini takes instructions most reliably inline, so the system prompt
// is prepended to the user prompt instead of using a system role.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	full := prompt
	if p.system != "" {
		full = p.system + "\n\n" + prompt
	}

	response, err := p.client.GenerateContent(ctx,
		[]llms.MessageContent{
			{
				Role:  schema.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{llms.TextPart(full)},
			},
		},
		llms.WithTemperature(0.0),
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(response.Choices) < 1 {
		return "", errors.New("gemini: backend returned no completion")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
