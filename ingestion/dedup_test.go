package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/digest/core"
	"github.com/poiesic/digest/storage"
	storagemock "github.com/poiesic/digest/storage/mock"
)

func newTestGuard(t *testing.T, store storage.ArticleStore) (*Guard, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".processed_urls.json")
	guard, err := NewGuard(path, store, nil)
	require.NoError(t, err)
	return guard, path
}

func readProcessedFile(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var file struct {
		URLs []string `json:"urls"`
	}
	require.NoError(t, json.Unmarshal(data, &file))
	return file.URLs
}

func TestGuardNewURLNotSkipped(t *testing.T) {
	store := storagemock.NewStore()
	guard, _ := newTestGuard(t, store)

	item := &core.IngestItem{URL: "https://example.com/post"}
	assert.False(t, guard.ShouldSkip(context.Background(), item))
	assert.Equal(t, 1, store.URLExistsCalls())
}

func TestGuardMarkProcessedPersists(t *testing.T) {
	store := storagemock.NewStore()
	guard, path := newTestGuard(t, store)

	item := &core.IngestItem{URL: "https://example.com/post"}
	require.NoError(t, guard.MarkProcessed(context.Background(), item))
	assert.Equal(t, []string{"https://example.com/post"}, readProcessedFile(t, path))

	// A fresh guard loads the file and skips locally, without asking
	// the store.
	reloaded, err := NewGuard(path, store, nil)
	require.NoError(t, err)
	before := store.URLExistsCalls()
	assert.True(t, reloaded.ShouldSkip(context.Background(), item))
	assert.Equal(t, before, store.URLExistsCalls())
}

func TestGuardRemoteHitBackfillsLocalSet(t *testing.T) {
	store := storagemock.NewStore()
	store.URLExistsFunc = func(ctx context.Context, url string) (bool, error) {
		return true, nil
	}
	guard, path := newTestGuard(t, store)

	item := &core.IngestItem{URL: "https://example.com/known"}
	assert.True(t, guard.ShouldSkip(context.Background(), item))
	assert.Equal(t, []string{"https://example.com/known"}, readProcessedFile(t, path))
}

func TestGuardRemoteErrorAssumesNew(t *testing.T) {
	store := storagemock.NewStore()
	store.URLExistsFunc = func(ctx context.Context, url string) (bool, error) {
		return false, errors.New("store unreachable")
	}
	guard, _ := newTestGuard(t, store)

	item := &core.IngestItem{URL: "https://example.com/post"}
	assert.False(t, guard.ShouldSkip(context.Background(), item))
}

func TestGuardCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".processed_urls.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	guard, err := NewGuard(path, storagemock.NewStore(), nil)
	require.NoError(t, err)
	item := &core.IngestItem{URL: "https://example.com/post"}
	assert.False(t, guard.ShouldSkip(context.Background(), item))
}

func TestGuardMissingURLUsesFingerprint(t *testing.T) {
	store := storagemock.NewStore()
	var gotQuery string
	store.SearchFunc = func(ctx context.Context, query string, opts storage.SearchOptions) ([]storage.Entry, error) {
		gotQuery = query
		return []storage.Entry{{ID: "existing"}}, nil
	}
	guard, _ := newTestGuard(t, store)

	item := &core.IngestItem{Title: "Notes", Content: "some pasted document text"}
	assert.True(t, guard.ShouldSkip(context.Background(), item))
	assert.Equal(t, FingerprintTag(item.Content), gotQuery)
	assert.Equal(t, 0, store.URLExistsCalls())
}

func TestGuardMissingURLNoMatch(t *testing.T) {
	store := storagemock.NewStore()
	guard, _ := newTestGuard(t, store)

	item := &core.IngestItem{Title: "Notes", Content: "fresh content"}
	assert.False(t, guard.ShouldSkip(context.Background(), item))
	assert.Equal(t, 1, store.SearchCalls())
}

func TestGuardMarkProcessedNoURLIsNoop(t *testing.T) {
	store := storagemock.NewStore()
	guard, path := newTestGuard(t, store)

	item := &core.IngestItem{Title: "Notes", Content: "pasted text"}
	require.NoError(t, guard.MarkProcessed(context.Background(), item))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("hello world")
	assert.Len(t, fp, 16)
	assert.Equal(t, fp, Fingerprint("hello world"))
	assert.NotEqual(t, fp, Fingerprint("hello worlds"))

	tag := FingerprintTag("hello world")
	assert.Equal(t, "text-hash:"+fp, tag)
}
