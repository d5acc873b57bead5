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


package storage

import (
	"context"

	"github.com/poiesic/digest/core"
)

// Saved identifies a persisted record in the external store.
type Saved struct {
	// ID is the store's record identifier.
	ID string

	// Locator is a human-usable link to the record, used in report lines.
	Locator string
}

// Entry is a stored record as returned by Search.
type Entry struct {
	ID     string
	Title  string
	Type   string
	Status string
	URL    string
	Source string
	Tags   []string
}

// SearchOptions narrows a Search call.
type SearchOptions struct {
	// TypeFilter restricts results to one entry type (e.g. "Article").
	// Empty means all types.
	TypeFilter string

	// StatusFilter restricts results to one status. Empty means all.
	StatusFilter string

	// Limit bounds the number of results. Zero means the store default.
	Limit int
}

// ArticleStore is the persistence gateway for summarized articles.
// The store's schema and CRUD semantics are external to this module;
// implementations must be safe for concurrent use.
type ArticleStore interface {
	// AddArticle persists a validated record with its source URL
	// (possibly empty) and reading status.
	AddArticle(ctx context.Context, record *core.StructuredRecord, url, status string) (*Saved, error)

	// URLExists reports whether a record with the given source URL is
	// already stored.
	URLExists(ctx context.Context, url string) (bool, error)

	// Search finds records matching the query by title or tag.
	Search(ctx context.Context, query string, opts SearchOptions) ([]Entry, error)
}
