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


package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/poiesic/digest/core"
	"github.com/poiesic/digest/storage"
)

// fingerprintTagPrefix marks url-less records so later fingerprint
// searches can find them in the store.
const fingerprintTagPrefix = "text-hash:"

// Guard decides whether an item has already been processed. Items with
// a URL are checked against a local processed-URL file and the remote
// store; url-less items fall back to a content-fingerprint search.
//
// Remote lookups are best-effort: a store error is logged and treated
// as "not a duplicate" so a flaky store never blocks ingestion.
type Guard struct {
	path   string
	store  storage.ArticleStore
	logger *slog.Logger

	mu   sync.Mutex
	urls map[string]struct{}
}

// processedFile is the on-disk shape of the processed-URL set.
type processedFile struct {
	URLs []string `json:"urls"`
}

// NewGuard creates a Guard backed by the processed-URL file at path.
// A missing file starts an empty set; a corrupt file is logged and
// discarded rather than failing construction.
func NewGuard(path string, store storage.ArticleStore, logger *slog.Logger) (*Guard, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if logger == nil {
		logger = slog.Default()
	}

	g := &Guard{
		path:   path,
		store:  store,
		logger: logger,
		urls:   make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return g, nil
		}
		return nil, fmt.Errorf("read processed urls %q: %w", path, err)
	}

	var file processedFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("processed url file is corrupt, starting empty",
			"path", path,
			"error", err)
		return g, nil
	}
	for _, u := range file.URLs {
		g.urls[u] = struct{}{}
	}

	return g, nil
}

// Fingerprint returns a short stable identifier for text content,
// the first 16 hex characters of its SHA-256 digest.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:16]
}

// FingerprintTag returns the tag attached to url-less records so
// ShouldSkip can find them again.
func FingerprintTag(text string) string {
	return fingerprintTagPrefix + Fingerprint(text)
}

// ShouldSkip reports whether the item was already processed.
func (g *Guard) ShouldSkip(ctx context.Context, item *core.IngestItem) bool {
	if item.URL != "" {
		return g.urlSeen(ctx, item.URL)
	}
	return g.contentSeen(ctx, item.Content)
}

func (g *Guard) urlSeen(ctx context.Context, url string) bool {
	g.mu.Lock()
	_, seen := g.urls[url]
	g.mu.Unlock()
	if seen {
		return true
	}

	exists, err := g.store.URLExists(ctx, url)
	if err != nil {
		g.logger.Warn("remote duplicate check failed, assuming new",
			"url", url,
			"error", err)
		return false
	}
	if exists {
		// Back-fill the local set so the next run skips without a
		// remote round trip.
		if err := g.add(url); err != nil {
			g.logger.Warn("failed to back-fill processed url",
				"url", url,
				"error", err)
		}
		return true
	}
	return false
}

func (g *Guard) contentSeen(ctx context.Context, content string) bool {
	tag := FingerprintTag(content)
	entries, err := g.store.Search(ctx, tag, storage.SearchOptions{Limit: 1})
	if err != nil {
		g.logger.Warn("fingerprint duplicate check failed, assuming new",
			"fingerprint", tag,
			"error", err)
		return false
	}
	return len(entries) > 0
}

// MarkProcessed records the item's URL in the processed set. Call only
// after the item has been persisted. Url-less items are a no-op; their
// fingerprint tag lives in the store itself.
func (g *Guard) MarkProcessed(ctx context.Context, item *core.IngestItem) error {
	if item.URL == "" {
		return nil
	}
	return g.add(item.URL)
}

func (g *Guard) add(url string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.urls[url]; ok {
		return nil
	}
	g.urls[url] = struct{}{}
	return g.saveLocked()
}

// saveLocked rewrites the processed-URL file. Callers hold g.mu.
// Write-to-temp-then-rename keeps the file whole if we crash mid-write.
func (g *Guard) saveLocked() error {
	urls := make([]string, 0, len(g.urls))
	for u := range g.urls {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	data, err := json.MarshalIndent(processedFile{URLs: urls}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode processed urls: %w", err)
	}

	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write processed urls: %w", err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return fmt.Errorf("replace processed urls: %w", err)
	}
	return nil
}
