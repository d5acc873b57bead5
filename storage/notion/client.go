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


// Package notion implements the article store against a Notion
// database: Name (title), URL (url), Tags (multi-select), Source (rich
// text), Type (select), Status (select), with the summary and key
// insights rendered as page blocks.
package notion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/poiesic/digest/core"
	"github.com/poiesic/digest/storage"
)

const (
	defaultSearchLimit = 10
	entryTypeArticle   = "Article"

	// Notion caps a single rich text fragment at 2000 characters.
	richTextLimit = 2000
)

// Store implements storage.ArticleStore on a Notion database.
type Store struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	logger     *slog.Logger
}

// New creates a Notion-backed article store.
// Both the integration token and the database ID are required.
func New(token, databaseID string) (*Store, error) {
	if token == "" {
		return nil, errors.New("notion: integration token is required")
	}
	if databaseID == "" {
		return nil, errors.New("notion: database ID is required")
	}

	return &Store{
		client:     notionapi.NewClient(notionapi.Token(token)),
		databaseID: notionapi.DatabaseID(databaseID),
		logger:     slog.Default().With("component", "notion-store"),
	}, nil
}

// AddArticle persists a validated record as a new page.
func (s *Store) AddArticle(ctx context.Context, record *core.StructuredRecord, url, status string) (*storage.Saved, error) {
	if err := core.ValidateRecord(record); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidRecord, err)
	}

	properties := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: toRichText(record.Title),
		},
		"Type": notionapi.SelectProperty{
			Select: notionapi.Option{Name: entryTypeArticle},
		},
		"Status": notionapi.SelectProperty{
			Select: notionapi.Option{Name: status},
		},
		"Tags": notionapi.MultiSelectProperty{
			MultiSelect: toOptions(record.Tags),
		},
		"Source": notionapi.RichTextProperty{
			RichText: toRichText(record.Source),
		},
	}
	if url != "" {
		properties["URL"] = notionapi.URLProperty{URL: url}
	}

	page, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.databaseID,
		},
		Properties: properties,
		Children:   pageBlocks(record),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create page: %v", storage.ErrStoreUnavailable, err)
	}

	s.logger.Debug("article stored", "title", record.Title, "page_id", page.ID)
	return &storage.Saved{ID: string(page.ID), Locator: page.URL}, nil
}

// URLExists reports whether a page with the given URL property exists.
func (s *Store) URLExists(ctx context.Context, url string) (bool, error) {
	if url == "" {
		return false, nil
	}

	response, err := s.client.Database.Query(ctx, s.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "URL",
			RichText: &notionapi.TextFilterCondition{Equals: url},
		},
		PageSize: 1,
	})
	if err != nil {
		return false, fmt.Errorf("%w: query by url: %v", storage.ErrStoreUnavailable, err)
	}
	return len(response.Results) > 0, nil
}

// Search finds entries whose title or tags match the query.
func (s *Store) Search(ctx context.Context, query string, opts storage.SearchOptions) ([]storage.Entry, error) {
	limit := opts.Limit
	if limit < 1 {
		limit = defaultSearchLimit
	}

	match := notionapi.OrCompoundFilter{
		notionapi.PropertyFilter{
			Property: "Name",
			RichText: &notionapi.TextFilterCondition{Contains: query},
		},
		notionapi.PropertyFilter{
			Property:    "Tags",
			MultiSelect: &notionapi.MultiSelectFilterCondition{Contains: query},
		},
	}

	var filter notionapi.Filter = match
	var narrowing notionapi.AndCompoundFilter
	if opts.TypeFilter != "" {
		narrowing = append(narrowing, notionapi.PropertyFilter{
			Property: "Type",
			Select:   &notionapi.SelectFilterCondition{Equals: opts.TypeFilter},
		})
	}
	if opts.StatusFilter != "" {
		narrowing = append(narrowing, notionapi.PropertyFilter{
			Property: "Status",
			Select:   &notionapi.SelectFilterCondition{Equals: opts.StatusFilter},
		})
	}
	if len(narrowing) > 0 {
		filter = append(narrowing, match)
	}

	response, err := s.client.Database.Query(ctx, s.databaseID, &notionapi.DatabaseQueryRequest{
		Filter:   filter,
		PageSize: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", storage.ErrStoreUnavailable, err)
	}

	entries := make([]storage.Entry, 0, len(response.Results))
	for _, page := range response.Results {
		entries = append(entries, pageToEntry(page))
	}
	return entries, nil
}

func pageToEntry(page notionapi.Page) storage.Entry {
	entry := storage.Entry{ID: string(page.ID)}

	if prop, ok := page.Properties["Name"].(*notionapi.TitleProperty); ok {
		entry.Title = plainText(prop.Title)
	}
	if prop, ok := page.Properties["Type"].(*notionapi.SelectProperty); ok {
		entry.Type = prop.Select.Name
	}
	if prop, ok := page.Properties["Status"].(*notionapi.SelectProperty); ok {
		entry.Status = prop.Select.Name
	}
	if prop, ok := page.Properties["URL"].(*notionapi.URLProperty); ok {
		entry.URL = prop.URL
	}
	if prop, ok := page.Properties["Source"].(*notionapi.RichTextProperty); ok {
		entry.Source = plainText(prop.RichText)
	}
	if prop, ok := page.Properties["Tags"].(*notionapi.MultiSelectProperty); ok {
		for _, option := range prop.MultiSelect {
			entry.Tags = append(entry.Tags, option.Name)
		}
	}
	return entry
}

// pageBlocks renders the summary as a callout and the key insights as a
// bulleted list, matching the database's page layout.
func pageBlocks(record *core.StructuredRecord) []notionapi.Block {
	emoji := notionapi.Emoji("📝")
	blocks := []notionapi.Block{
		notionapi.CalloutBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeCallout,
			},
			Callout: notionapi.Callout{
				RichText: toRichText(record.Summary),
				Icon:     &notionapi.Icon{Type: "emoji", Emoji: &emoji},
				Color:    "gray_background",
			},
		},
		notionapi.DividerBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeDivider,
			},
			Divider: notionapi.Divider{},
		},
		notionapi.Heading2Block{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeHeading2,
			},
			Heading2: notionapi.Heading{
				RichText: toRichText("Key Insights"),
			},
		},
	}

	for _, line := range strings.Split(record.KeyInsights, "\n") {
		text := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•"))
		if text == "" {
			continue
		}
		blocks = append(blocks, notionapi.BulletedListItemBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeBulletedListItem,
			},
			BulletedListItem: notionapi.ListItem{
				RichText: toRichText(text),
			},
		})
	}
	return blocks
}

// toRichText splits text into rich text fragments below the API limit.
func toRichText(text string) []notionapi.RichText {
	if text == "" {
		return []notionapi.RichText{{Text: &notionapi.Text{Content: ""}}}
	}

	runes := []rune(text)
	fragments := make([]notionapi.RichText, 0, len(runes)/richTextLimit+1)
	for start := 0; start < len(runes); start += richTextLimit {
		end := start + richTextLimit
		if end > len(runes) {
			end = len(runes)
		}
		fragments = append(fragments, notionapi.RichText{
			Text: &notionapi.Text{Content: string(runes[start:end])},
		})
	}
	return fragments
}

func toOptions(tags []string) []notionapi.Option {
	options := make([]notionapi.Option, len(tags))
	for i, tag := range tags {
		options[i] = notionapi.Option{Name: tag}
	}
	return options
}

func plainText(fragments []notionapi.RichText) string {
	var b strings.Builder
	for _, fragment := range fragments {
		b.WriteString(fragment.PlainText)
	}
	return b.String()
}
