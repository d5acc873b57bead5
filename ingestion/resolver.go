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
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/poiesic/digest/core"
)

const (
	// DefaultMinContent is the minimum extracted text length in runes.
	// Anything shorter is almost always boilerplate or a fetch failure.
	DefaultMinContent = 120

	// DefaultMaxContent is the content ceiling in runes. Longer text is
	// truncated with core.TruncationMarker before summarization.
	DefaultMaxContent = 10000

	defaultFetchTimeout = 30 * time.Second
	userAgent           = "digest/1.0 (+article summarizer)"
)

// supportedExtensions lists the file types the resolver handles.
var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".url": true,
	".pdf": true,
}

// IsSupported reports whether the resolver handles the file's extension.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Resolver turns URLs and local files into IngestItems ready for
// summarization. HTML pages go through readability extraction, PDFs
// through page-by-page text extraction.
type Resolver struct {
	client     *http.Client
	minContent int
	maxContent int
	logger     *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient sets the client used for URL fetches.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithMinContent sets the minimum accepted content length in runes.
func WithMinContent(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.minContent = n
		}
	}
}

// WithMaxContent sets the content ceiling in runes.
func WithMaxContent(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.maxContent = n
		}
	}
}

// WithResolverLogger sets a custom logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver with default fetch timeout and limits.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:     &http.Client{Timeout: defaultFetchTimeout},
		minContent: DefaultMinContent,
		maxContent: DefaultMaxContent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveURL fetches a page and extracts its readable main content.
// Boilerplate (navigation, ads, comments) is discarded by readability.
func (r *Resolver) ResolveURL(ctx context.Context, rawURL string) (*core.IngestItem, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %d", rawURL, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", rawURL, err)
	}

	content := strings.TrimSpace(article.TextContent)
	if content == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, rawURL)
	}
	if err := r.checkLength(content); err != nil {
		return nil, fmt.Errorf("%w: %s", err, rawURL)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = "Untitled"
	}
	origin := strings.TrimSpace(article.SiteName)
	if origin == "" {
		origin = "Web"
	}

	r.logger.Debug("resolved url",
		"url", rawURL,
		"title", title,
		"content_len", len(content))

	return &core.IngestItem{
		Title:   core.ClampTitle(title),
		URL:     rawURL,
		Content: r.truncate(content),
		Origin:  origin,
	}, nil
}

// ResolveFile turns a local file into an IngestItem. Text files whose
// first line is a URL delegate to ResolveURL.
func (r *Resolver) ResolveFile(ctx context.Context, path string) (*core.IngestItem, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return r.resolvePDF(path)
	case ".txt", ".md", ".url":
		return r.resolveText(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

func (r *Resolver) resolveText(ctx context.Context, path string) (*core.IngestItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, path)
	}

	firstLine, _, _ := strings.Cut(text, "\n")
	firstLine = strings.TrimSpace(firstLine)
	if strings.HasPrefix(firstLine, "http://") || strings.HasPrefix(firstLine, "https://") {
		return r.ResolveURL(ctx, firstLine)
	}

	if err := r.checkLength(text); err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	return &core.IngestItem{
		Title:   core.ClampTitle(firstLine),
		Content: r.truncate(text),
		Origin:  "Text",
	}, nil
}

func (r *Resolver) resolvePDF(path string) (*core.IngestItem, error) {
	text, err := extractPDFText(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPDF, path)
	}
	if err := r.checkLength(text); err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return &core.IngestItem{
		Title:   core.ClampTitle(stem),
		Content: r.truncate(text),
		Origin:  "PDF",
	}, nil
}

func (r *Resolver) checkLength(text string) error {
	if len([]rune(text)) < r.minContent {
		return ErrContentTooShort
	}
	return nil
}

func (r *Resolver) truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= r.maxContent {
		return text
	}
	return string(runes[:r.maxContent]) + core.TruncationMarker
}
