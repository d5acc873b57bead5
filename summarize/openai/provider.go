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


// Package openai implements the summarization provider for OpenAI
// models through langchaingo.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config holds the OpenAI backend settings.
type Config struct {
	APIKey       string
	Model        string // defaults to gpt-4o-mini
	SystemPrompt string
}

// Provider calls OpenAI chat models through langchaingo.
type Provider struct {
	client llms.Model
	system string
}

// New creates an OpenAI provider. The API key is required.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	client, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("openai: create client: %w", err)
	}

	return &Provider{client: client, system: cfg.SystemPrompt}, nil
}

// Name identifies the backend.
func (p *Provider) Name() string {
	return "openai"
}

// Generate sends the prompt with the system instruction as a system
// message and JSON mode enabled.
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
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", fmt.Errorf("openai: generate content: %w", err)
	}
	if len(response.Choices) < 1 {
		return "", errors.New("openai: backend returned no completion")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
