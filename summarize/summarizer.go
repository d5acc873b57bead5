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
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/digest/core"
)

// Summarizer turns source content into a validated StructuredRecord.
// Content that fits in one chunk goes through a single backend call;
// longer content is decomposed map/reduce style: one independent call
// per chunk, then one reduce call over the ordered chunk results.
type Summarizer struct {
	chain     *Chain
	chunkSize int
	logger    *slog.Logger
}

// SummarizerOption configures a Summarizer.
type SummarizerOption func(*Summarizer)

// WithSummarizerLogger sets a custom logger.
func WithSummarizerLogger(logger *slog.Logger) SummarizerOption {
	return func(s *Summarizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSummarizer creates a summarizer on top of a provider chain.
func NewSummarizer(chain *Chain, chunkSize int, opts ...SummarizerOption) (*Summarizer, error) {
	if chain == nil {
		return nil, ErrChainRequired
	}
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	s := &Summarizer{
		chain:     chain,
		chunkSize: chunkSize,
		logger:    slog.Default().With("component", "summarizer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Summarize produces a structured record for the given content.
// The title and url travel into the prompts and serve as fallbacks for
// fields the backend omits.
func (s *Summarizer) Summarize(ctx context.Context, title, url, text string) (*core.StructuredRecord, error) {
	return s.summarize(ctx, title, url, text, "Web")
}

// SummarizeItem summarizes a resolved item, using its origin as the
// source fallback.
func (s *Summarizer) SummarizeItem(ctx context.Context, item *core.IngestItem) (*core.StructuredRecord, error) {
	fallbackSource := item.Origin
	if fallbackSource == "" {
		fallbackSource = "Web"
	}
	return s.summarize(ctx, item.Title, item.URL, item.Content, fallbackSource)
}

func (s *Summarizer) summarize(ctx context.Context, title, url, text, fallbackSource string) (*core.StructuredRecord, error) {
	chunks := SplitChunks(text, s.chunkSize)
	if len(chunks) == 0 {
		return nil, ErrEmptyInput
	}

	if len(chunks) == 1 {
		raw, provider, err := s.chain.Generate(ctx, summaryPrompt(title, url, text))
		if err != nil {
			return nil, err
		}
		record, err := ParseRecord(raw, title, fallbackSource)
		if err != nil {
			return nil, err
		}
		record.Provider = provider
		return record, nil
	}

	s.logger.Info("content exceeds chunk size, running map/reduce",
		"title", title,
		"chunks", len(chunks),
		"chunk_size", s.chunkSize)

	// Map: each chunk independently, no state carried between calls.
	// One failed chunk fails the item; partial results never reach the
	// reduce step.
	results := make([]core.ChunkResult, 0, len(chunks))
	for i, chunk := range chunks {
		raw, _, err := s.chain.Generate(ctx, mapPrompt(chunk, i+1, len(chunks)))
		if err != nil {
			return nil, fmt.Errorf("map call %d/%d: %w", i+1, len(chunks), err)
		}
		result, err := ParseChunk(raw, i+1, len(chunks))
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	// Reduce: one call over the full ordered chunk sequence.
	payload, err := json.Marshal(struct {
		Title  string             `json:"title"`
		URL    string             `json:"url"`
		Chunks []core.ChunkResult `json:"chunks"`
	}{Title: title, URL: url, Chunks: results})
	if err != nil {
		return nil, fmt.Errorf("marshal reduce payload: %w", err)
	}

	raw, provider, err := s.chain.Generate(ctx, reducePrompt(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("reduce call: %w", err)
	}
	record, err := ParseRecord(raw, title, fallbackSource)
	if err != nil {
		return nil, err
	}
	record.Provider = provider
	return record, nil
}
