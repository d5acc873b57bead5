package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/poiesic/digest/core"
	"github.com/poiesic/digest/storage"
)

// Store is an in-memory test double for storage.ArticleStore.
// It allows custom behavior injection via function fields and keeps
// every stored record for assertions.
type Store struct {
	// AddArticleFunc, URLExistsFunc and SearchFunc override the default
	// in-memory behavior when set.
	AddArticleFunc func(ctx context.Context, record *core.StructuredRecord, url, status string) (*storage.Saved, error)
	URLExistsFunc  func(ctx context.Context, url string) (bool, error)
	SearchFunc     func(ctx context.Context, query string, opts storage.SearchOptions) ([]storage.Entry, error)

	mu        sync.Mutex
	entries   []storage.Entry
	addCalls  int
	urlCalls  int
	findCalls int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// AddArticle stores the record in memory unless AddArticleFunc is set.
func (s *Store) AddArticle(ctx context.Context, record *core.StructuredRecord, url, status string) (*storage.Saved, error) {
	s.mu.Lock()
	s.addCalls++
	s.mu.Unlock()

	if s.AddArticleFunc != nil {
		return s.AddArticleFunc(ctx, record, url, status)
	}
	if err := core.ValidateRecord(record); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("mock-%d", len(s.entries)+1)
	s.entries = append(s.entries, storage.Entry{
		ID:     id,
		Title:  record.Title,
		Type:   "Article",
		Status: status,
		URL:    url,
		Source: record.Source,
		Tags:   append([]string(nil), record.Tags...),
	})
	return &storage.Saved{ID: id, Locator: "https://store.example/" + id}, nil
}

// URLExists checks the in-memory entries unless URLExistsFunc is set.
func (s *Store) URLExists(ctx context.Context, url string) (bool, error) {
	s.mu.Lock()
	s.urlCalls++
	s.mu.Unlock()

	if s.URLExistsFunc != nil {
		return s.URLExistsFunc(ctx, url)
	}
	if url == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.URL == url {
			return true, nil
		}
	}
	return false, nil
}

// Search matches entries by title or tag substring unless SearchFunc is set.
func (s *Store) Search(ctx context.Context, query string, opts storage.SearchOptions) ([]storage.Entry, error) {
	s.mu.Lock()
	s.findCalls++
	s.mu.Unlock()

	if s.SearchFunc != nil {
		return s.SearchFunc(ctx, query, opts)
	}

	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []storage.Entry
	for _, entry := range s.entries {
		if len(matches) >= limit {
			break
		}
		if opts.TypeFilter != "" && entry.Type != opts.TypeFilter {
			continue
		}
		if opts.StatusFilter != "" && entry.Status != opts.StatusFilter {
			continue
		}
		if strings.Contains(entry.Title, query) || containsTag(entry.Tags, query) {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

// Entries returns a copy of all stored entries in insertion order.
func (s *Store) Entries() []storage.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// AddCalls returns the number of AddArticle invocations.
func (s *Store) AddCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCalls
}

// URLExistsCalls returns the number of URLExists invocations.
func (s *Store) URLExistsCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.urlCalls
}

// SearchCalls returns the number of Search invocations.
func (s *Store) SearchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findCalls
}

func containsTag(tags []string, query string) bool {
	for _, tag := range tags {
		if strings.Contains(tag, query) {
			return true
		}
	}
	return false
}
