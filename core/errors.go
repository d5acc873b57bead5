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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a StructuredRecord failed validation.
	ErrInvalidRecord = errors.New("invalid structured record")

	// ErrInvalidChunkResult indicates a ChunkResult failed validation.
	ErrInvalidChunkResult = errors.New("invalid chunk result")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong indicates the Title exceeds TitleMaxLen runes.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrEmptySummary indicates the Summary field is empty.
	ErrEmptySummary = errors.New("summary cannot be empty")

	// ErrEmptyKeyInsights indicates the KeyInsights field is empty.
	ErrEmptyKeyInsights = errors.New("key insights cannot be empty")

	// ErrNoTags indicates the Tags field has no elements.
	ErrNoTags = errors.New("at least one tag is required")

	// ErrEmptySource indicates the Source field is empty.
	ErrEmptySource = errors.New("source cannot be empty")
)
