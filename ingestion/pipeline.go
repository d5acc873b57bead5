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
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/digest/core"
	"github.com/poiesic/digest/storage"
	"github.com/poiesic/digest/summarize"
)

// persistedStatus is the status every successfully stored article gets.
const persistedStatus = "Done"

// Pipeline orchestrates ingestion: resolve a source, skip duplicates,
// summarize, persist, record the URL as processed. Item failures are
// reported and counted but never abort the batch.
type Pipeline struct {
	resolver   *Resolver
	guard      *Guard
	summarizer *summarize.Summarizer
	store      storage.ArticleStore
	workers    int
	report     io.Writer
	logger     *slog.Logger

	reportMu sync.Mutex
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithWorkers sets the number of items processed concurrently.
// Default is 1, which keeps provider calls strictly sequential.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithReportWriter sets the destination for per-item report lines.
// Default is os.Stdout.
func WithReportWriter(w io.Writer) PipelineOption {
	return func(p *Pipeline) {
		if w != nil {
			p.report = w
		}
	}
}

// WithPipelineLogger sets a custom logger.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a Pipeline from its collaborators.
func NewPipeline(
	resolver *Resolver,
	guard *Guard,
	summarizer *summarize.Summarizer,
	store storage.ArticleStore,
	opts ...PipelineOption,
) (*Pipeline, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if guard == nil {
		return nil, ErrGuardRequired
	}
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	p := &Pipeline{
		resolver:   resolver,
		guard:      guard,
		summarizer: summarizer,
		store:      store,
		workers:    1,
		report:     os.Stdout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Result tallies item outcomes for a batch.
type Result struct {
	Processed int
	Skipped   int
	Failed    int
}

func (r *Result) count(outcome core.Outcome) {
	switch outcome {
	case core.OutcomePersisted:
		r.Processed++
	case core.OutcomeSkipped:
		r.Skipped++
	case core.OutcomeFailed:
		r.Failed++
	}
}

// Run processes every supported file in inputDir and returns the tally.
// Files are discovered in sorted order; with more than one worker the
// completion order is not deterministic but every file is processed.
func (p *Pipeline) Run(ctx context.Context, inputDir string) (*Result, error) {
	paths, err := p.discover(inputDir)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if len(paths) == 0 {
		p.logger.Info("no input files found", "dir", inputDir)
		p.printDone(result)
		return result, nil
	}

	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		resultMu sync.Mutex
	)
	for _, path := range paths {
		path := path
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			outcome := p.processFile(ctx, path)
			resultMu.Lock()
			result.count(outcome)
			resultMu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			resultMu.Lock()
			result.count(core.OutcomeFailed)
			resultMu.Unlock()
			p.printf("FAIL %s: %v\n", filepath.Base(path), submitErr)
		}
	}
	wg.Wait()

	p.printDone(result)
	return result, nil
}

// ProcessURL runs a single URL through the full pipeline and reports
// its outcome on the report writer.
func (p *Pipeline) ProcessURL(ctx context.Context, rawURL string) core.Outcome {
	item, err := p.resolver.ResolveURL(ctx, rawURL)
	if err != nil {
		p.printf("FAIL %s: %v\n", rawURL, err)
		return core.OutcomeFailed
	}
	return p.processItem(ctx, item)
}

func (p *Pipeline) discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %q: %w", inputDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsSupported(entry.Name()) {
			paths = append(paths, filepath.Join(inputDir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (p *Pipeline) processFile(ctx context.Context, path string) core.Outcome {
	item, err := p.resolver.ResolveFile(ctx, path)
	if err != nil {
		p.printf("FAIL %s: %v\n", filepath.Base(path), err)
		return core.OutcomeFailed
	}
	return p.processItem(ctx, item)
}

func (p *Pipeline) processItem(ctx context.Context, item *core.IngestItem) core.Outcome {
	label := itemLabel(item)

	if p.guard.ShouldSkip(ctx, item) {
		p.logger.Info("skipping duplicate", "item", label)
		p.printf("SKIP %s\n", label)
		return core.OutcomeSkipped
	}

	record, err := p.summarizer.SummarizeItem(ctx, item)
	if err != nil {
		p.logger.Error("summarization failed", "item", label, "error", err)
		p.printf("FAIL %s: %v\n", label, err)
		return core.OutcomeFailed
	}

	if item.URL == "" {
		// The fingerprint tag is what makes duplicate detection work
		// for items that have no URL.
		record.Tags = append(record.Tags, FingerprintTag(item.Content))
	}

	saved, err := p.store.AddArticle(ctx, record, item.URL, persistedStatus)
	if err != nil {
		p.logger.Error("persist failed", "item", label, "error", err)
		p.printf("FAIL %s: %v\n", label, err)
		return core.OutcomeFailed
	}

	if err := p.guard.MarkProcessed(ctx, item); err != nil {
		// The article is stored; losing the local marker only costs a
		// remote duplicate check on the next run.
		p.logger.Warn("failed to record processed url", "item", label, "error", err)
	}

	p.logger.Info("persisted article",
		"item", label,
		"provider", record.Provider,
		"locator", saved.Locator)
	p.printf("OK %s -> %s\n", label, saved.Locator)
	return core.OutcomePersisted
}

func (p *Pipeline) printDone(result *Result) {
	p.printf("Done. processed=%d skipped=%d failed=%d\n",
		result.Processed, result.Skipped, result.Failed)
}

func (p *Pipeline) printf(format string, args ...any) {
	p.reportMu.Lock()
	defer p.reportMu.Unlock()
	fmt.Fprintf(p.report, format, args...)
}

func itemLabel(item *core.IngestItem) string {
	if item.URL != "" {
		return item.URL
	}
	return item.Title
}
