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


package core

// TitleMaxLen is the maximum title length in runes for stored records.
const TitleMaxLen = 60

// DefaultTag is used when a backend omits tags or returns them malformed.
const DefaultTag = "AI"

// TruncationMarker is appended to content cut at the configured ceiling.
// Truncation is a deliberate, lossy bound, never silent.
const TruncationMarker = "\n\n[...truncated]"

// IngestItem is a normalized piece of source content ready for
// summarization. It is created once per discovered source by the
// resolver and is not mutated afterwards.
type IngestItem struct {
	Title   string
	URL     string // empty for free text and PDFs
	Content string
	Origin  string // site name, "Text", "PDF", ...
}

// StructuredRecord is the validated summary output ready for persistence.
type StructuredRecord struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	KeyInsights string   `json:"key_insights"`
	Tags        []string `json:"tags"`
	Source      string   `json:"source"`

	// Provider names the backend that produced this record.
	// Observability only, never persisted.
	Provider string `json:"-"`
}

// ChunkResult is the partial output of one map call over a single chunk.
// It exists only between the map and reduce steps and is never persisted.
type ChunkResult struct {
	ChunkIndex   int      `json:"chunk_index"` // 1-based
	ChunkTotal   int      `json:"chunk_total"`
	ChunkSummary string   `json:"chunk_summary"`
	KeyPoints    []string `json:"key_points"`
	Tags         []string `json:"tags"`
	SourceHint   string   `json:"source_hint"`
}

// Outcome is the terminal state of one item's trip through the pipeline.
type Outcome int

const (
	// OutcomePersisted means the record was summarized and stored.
	OutcomePersisted Outcome = iota + 1
	// OutcomeSkipped means the item was recognized as a duplicate.
	OutcomeSkipped
	// OutcomeFailed means some pipeline stage failed for the item.
	OutcomeFailed
)

// String returns the outcome label used in report lines.
func (o Outcome) String() string {
	switch o {
	case OutcomePersisted:
		return "OK"
	case OutcomeSkipped:
		return "SKIP"
	case OutcomeFailed:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}
