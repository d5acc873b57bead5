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


package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
)

// minArticleURLLength filters out shortened tracking stubs. Real
// article URLs are essentially never this short.
const minArticleURLLength = 25

// skipURLPatterns marks links that are newsletter plumbing rather than
// articles: unsubscribe flows, tracking redirects, social profiles and
// static assets.
var skipURLPatterns = []string{
	"unsubscribe", "optout", "opt-out", "mailto:", "tel:",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".css", ".js",
	"utm_source", "click.sender",
	"twitter.com", "facebook.com", "linkedin.com", "instagram.com",
	"notion.so", "google.com/calendar",
}

// Link is a candidate article discovered in a feed.
type Link struct {
	Title string
	URL   string
}

// Collector fetches RSS/Atom feeds and extracts article links.
type Collector struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithCollectorLogger sets a custom logger.
func WithCollectorLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCollector creates a feed collector.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		parser: gofeed.NewParser(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect parses the feed at feedURL and returns up to limit article
// links, in feed order. A limit of 0 or less means no cap.
func (c *Collector) Collect(ctx context.Context, feedURL string, limit int) ([]Link, error) {
	parsed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %q: %w", feedURL, err)
	}

	var links []Link
	for _, item := range parsed.Items {
		link := strings.TrimSpace(item.Link)
		if !IsArticleURL(link) {
			c.logger.Debug("skipping non-article link", "url", link)
			continue
		}
		links = append(links, Link{
			Title: strings.TrimSpace(item.Title),
			URL:   link,
		})
		if limit > 0 && len(links) >= limit {
			break
		}
	}

	c.logger.Info("collected feed links",
		"feed", feedURL,
		"items", len(parsed.Items),
		"articles", len(links))

	return links, nil
}

// IsArticleURL reports whether a link looks like an article rather
// than newsletter plumbing.
func IsArticleURL(url string) bool {
	if len(url) < minArticleURLLength {
		return false
	}
	if !strings.HasPrefix(url, "http") {
		return false
	}
	lowered := strings.ToLower(url)
	for _, pattern := range skipURLPatterns {
		if strings.Contains(lowered, pattern) {
			return false
		}
	}
	return true
}
