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

import "fmt"

// ValidateRecord validates a StructuredRecord according to domain rules.
//
// Validation rules:
//   - Title, Summary, KeyInsights and Source must not be empty
//   - Title must not exceed TitleMaxLen runes
//   - Tags must have at least one element
//
// NOT validated:
//   - Provider (observability tag, may be empty when the backend is unknown)
func ValidateRecord(record *StructuredRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyTitle)
	}
	if len([]rune(record.Title)) > TitleMaxLen {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrTitleTooLong)
	}
	if record.Summary == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptySummary)
	}
	if record.KeyInsights == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyKeyInsights)
	}
	if len(record.Tags) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNoTags)
	}
	if record.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptySource)
	}

	return nil
}

// ValidateChunkResult validates a ChunkResult produced by a map call.
//
// Validation rules:
//   - ChunkIndex must be >= 1 and <= ChunkTotal
//   - ChunkSummary must not be empty
func ValidateChunkResult(result *ChunkResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidChunkResult)
	}

	if result.ChunkIndex < 1 || result.ChunkIndex > result.ChunkTotal {
		return fmt.Errorf("%w: index %d of %d out of range",
			ErrInvalidChunkResult, result.ChunkIndex, result.ChunkTotal)
	}
	if result.ChunkSummary == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunkResult, ErrEmptySummary)
	}

	return nil
}

// ClampTitle bounds a title to TitleMaxLen runes.
// Rune-based so multi-byte titles are never cut mid-character.
func ClampTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= TitleMaxLen {
		return title
	}
	return string(runes[:TitleMaxLen])
}
