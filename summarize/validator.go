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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/digest/core"
)

// recordWire mirrors the record schema on the wire. Tags stays raw so a
// malformed tags value degrades to the default instead of failing.
type recordWire struct {
	Title       string          `json:"title"`
	Summary     string          `json:"summary"`
	KeyInsights string          `json:"key_insights"`
	Tags        json.RawMessage `json:"tags"`
	Source      string          `json:"source"`
}

type chunkWire struct {
	ChunkSummary string          `json:"chunk_summary"`
	KeyPoints    []string        `json:"key_points"`
	Tags         json.RawMessage `json:"tags"`
	SourceHint   string          `json:"source_hint"`
}

// ParseRecord parses and validates a backend's raw output into a
// StructuredRecord. Markdown code fences are stripped before parsing.
// A missing title falls back to fallbackTitle, a missing source to
// fallbackSource; a missing summary or key_insights is a schema error.
func ParseRecord(raw, fallbackTitle, fallbackSource string) (*core.StructuredRecord, error) {
	cleaned := repairJSON(stripFences(raw))

	var wire recordWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if wire.Summary == "" {
		return nil, fmt.Errorf("%w: missing summary", ErrSchema)
	}
	if wire.KeyInsights == "" {
		return nil, fmt.Errorf("%w: missing key_insights", ErrSchema)
	}

	title := wire.Title
	if title == "" {
		title = fallbackTitle
	}
	source := wire.Source
	if source == "" {
		source = fallbackSource
	}

	record := &core.StructuredRecord{
		Title:       core.ClampTitle(title),
		Summary:     wire.Summary,
		KeyInsights: wire.KeyInsights,
		Tags:        parseTags(wire.Tags),
		Source:      source,
	}
	if err := core.ValidateRecord(record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return record, nil
}

// ParseChunk parses a map call's raw output into a ChunkResult for
// chunk index of total. The indices come from the caller's loop, never
// from the model.
func ParseChunk(raw string, index, total int) (*core.ChunkResult, error) {
	cleaned := repairJSON(stripFences(raw))

	var wire chunkWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("%w: chunk %d/%d: %v", ErrSchema, index, total, err)
	}

	result := &core.ChunkResult{
		ChunkIndex:   index,
		ChunkTotal:   total,
		ChunkSummary: wire.ChunkSummary,
		KeyPoints:    wire.KeyPoints,
		Tags:         parseTags(wire.Tags),
		SourceHint:   wire.SourceHint,
	}
	if err := core.ValidateChunkResult(result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return result, nil
}

// parseTags decodes a tags value, falling back to the default tag when
// the value is absent or not a sequence of strings.
func parseTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{core.DefaultTag}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil || len(tags) == 0 {
		return []string{core.DefaultTag}
	}
	return tags
}

// stripFences removes markdown code fence wrapping, which some backends
// add around JSON output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
