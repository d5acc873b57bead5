package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// articleHTML builds a page with enough body text for content
// extraction to treat it as a real article.
func articleHTML(title, siteName string) string {
	paragraph := strings.Repeat("Container scheduling decisions depend on resource requests. ", 8)
	var meta string
	if siteName != "" {
		meta = fmt.Sprintf(`<meta property="og:site_name" content="%s">`, siteName)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title>%s</head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>%s</h1>
<p>%s</p>
<p>%s</p>
<p>%s</p>
</article>
<footer>Subscribe to our newsletter</footer>
</body>
</html>`, title, meta, title, paragraph, paragraph, paragraph)
}

func TestResolveURLExtractsArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleHTML("Scheduling Deep Dive", "InfraWeekly"))
	}))
	defer server.Close()

	resolver := NewResolver()
	item, err := resolver.ResolveURL(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Scheduling Deep Dive", item.Title)
	assert.Equal(t, server.URL, item.URL)
	assert.Contains(t, item.Content, "resource requests")
	assert.NotContains(t, item.Content, "Subscribe to our newsletter")
}

func TestResolveURLOriginFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleHTML("Untagged Page", ""))
	}))
	defer server.Close()

	resolver := NewResolver()
	item, err := resolver.ResolveURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Web", item.Origin)
}

func TestResolveURLNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	resolver := NewResolver()
	_, err := resolver.ResolveURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestResolveFileTextContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	body := "Kubernetes scheduling notes\n\n" + strings.Repeat("The scheduler scores nodes by available resources. ", 10)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	resolver := NewResolver()
	item, err := resolver.ResolveFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Kubernetes scheduling notes", item.Title)
	assert.Empty(t, item.URL)
	assert.Equal(t, "Text", item.Origin)
	assert.Contains(t, item.Content, "scores nodes")
}

func TestResolveFileFirstLineURLDelegates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleHTML("Linked Article", "Example Blog"))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "link.url")
	require.NoError(t, os.WriteFile(path, []byte(server.URL+"\n"), 0o644))

	resolver := NewResolver()
	item, err := resolver.ResolveFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Linked Article", item.Title)
	assert.Equal(t, server.URL, item.URL)
	assert.Equal(t, "Example Blog", item.Origin)
}

func TestResolveFileTooShort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stub.md")
	require.NoError(t, os.WriteFile(path, []byte("A title\n\ntoo short"), 0o644))

	resolver := NewResolver()
	_, err := resolver.ResolveFile(context.Background(), path)
	assert.ErrorIs(t, err, ErrContentTooShort)
}

func TestResolveFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n  "), 0o644))

	resolver := NewResolver()
	_, err := resolver.ResolveFile(context.Background(), path)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestResolveFileUnsupported(t *testing.T) {
	resolver := NewResolver()
	_, err := resolver.ResolveFile(context.Background(), "input.docx")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestTruncationAppliesMarker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.txt")
	body := "Long document\n" + strings.Repeat("x", 500)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	resolver := NewResolver(WithMaxContent(200))
	item, err := resolver.ResolveFile(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(item.Content, "[...truncated]"))
	trimmed := strings.TrimSuffix(item.Content, "\n\n[...truncated]")
	assert.Len(t, []rune(trimmed), 200)
}

func TestTruncationLeavesShortContentAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.txt")
	body := "Short document\n" + strings.Repeat("y", 200)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	resolver := NewResolver()
	item, err := resolver.ResolveFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(item.Content, "[...truncated]"))
}

func TestMinContentOption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.txt")
	require.NoError(t, os.WriteFile(path, []byte("Brief note\njust a few words here"), 0o644))

	strict := NewResolver()
	_, err := strict.ResolveFile(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentTooShort))

	lenient := NewResolver(WithMinContent(10))
	_, err = lenient.ResolveFile(context.Background(), path)
	assert.NoError(t, err)
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"article.txt", true},
		{"article.md", true},
		{"article.url", true},
		{"article.PDF", true},
		{"article.docx", false},
		{"article.html", false},
		{"article", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupported(tt.path), tt.path)
	}
}
