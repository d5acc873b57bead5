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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/digest/core"
	"github.com/poiesic/digest/feed"
	"github.com/poiesic/digest/ingestion"
	"github.com/poiesic/digest/storage"
	"github.com/poiesic/digest/storage/notion"
	"github.com/poiesic/digest/summarize"
)

func main() {
	app := &cli.App{
		Name:   "digest",
		Usage:  "Summarize articles from URLs, files and feeds into a knowledge base",
		Before: setup,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Process every supported file in the input directory",
				Action: ingestCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "input-dir",
						Aliases: []string{"i"},
						Usage:   "Directory scanned for .txt, .md, .url and .pdf files",
						Value:   "inputs",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of items processed concurrently",
						Value: 1,
					},
				}, pipelineFlags()...),
			},
			{
				Name:      "add",
				Usage:     "Summarize one or more URLs directly",
				ArgsUsage: "<url> [<url>...]",
				Action:    addCommand,
				Flags:     pipelineFlags(),
			},
			{
				Name:   "feeds",
				Usage:  "Collect article links from RSS/Atom feeds and summarize them",
				Action: feedsCommand,
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:    "feed",
						Usage:   "Feed URL (repeatable)",
						EnvVars: []string{"RSS_FEEDS"},
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum articles per feed (0 = no cap)",
						Value: 10,
					},
				}, pipelineFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// pipelineFlags are shared by every command that runs the pipeline.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Usage:   "LLM provider to use, or \"auto\" for the fallback chain",
			Value:   "auto",
			EnvVars: []string{"LLM_PROVIDER"},
		},
		&cli.StringFlag{
			Name:    "provider-chain",
			Usage:   "Comma-separated provider fallback order",
			Value:   "gemini,openai,anthropic",
			EnvVars: []string{"LLM_PROVIDER_CHAIN"},
		},
		&cli.IntFlag{
			Name:    "chunk-size",
			Usage:   "Chunk size in characters for long-document summarization",
			Value:   6000,
			EnvVars: []string{"DIGEST_CHUNK_SIZE"},
		},
		&cli.IntFlag{
			Name:    "max-retries",
			Usage:   "Maximum attempts per provider call when rate limited",
			Value:   5,
			EnvVars: []string{"DIGEST_MAX_RETRIES"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Timeout per provider call",
			Value: 120 * time.Second,
		},
		&cli.IntFlag{
			Name:  "min-content",
			Usage: "Minimum extracted content length in characters",
			Value: ingestion.DefaultMinContent,
		},
		&cli.StringFlag{
			Name:  "processed-file",
			Usage: "Path to the processed-URL tracking file",
			Value: ".processed_urls.json",
		},
	}
}

// setup loads .env if present and configures the default logger.
func setup(c *cli.Context) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// buildStore creates the article store from required environment
// configuration.
func buildStore() (storage.ArticleStore, error) {
	token := os.Getenv("NOTION_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("NOTION_TOKEN is required")
	}
	databaseID := os.Getenv("NOTION_DATABASE_ID")
	if databaseID == "" {
		return nil, fmt.Errorf("NOTION_DATABASE_ID is required")
	}
	return notion.New(token, databaseID)
}

// buildPipeline assembles the full pipeline from flags and environment.
func buildPipeline(c *cli.Context) (*ingestion.Pipeline, error) {
	logger := slog.Default()

	store, err := buildStore()
	if err != nil {
		return nil, err
	}

	cfg := summarize.NewConfig(
		summarize.WithGemini(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL")),
		summarize.WithOpenAI(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL")),
		summarize.WithAnthropic(os.Getenv("ANTHROPIC_API_KEY"), os.Getenv("ANTHROPIC_MODEL")),
		summarize.WithChunkSize(c.Int("chunk-size")),
		summarize.WithTimeout(c.Duration("timeout")),
		summarize.WithMaxRetries(c.Int("max-retries")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	names := summarize.ResolveChainNames(c.String("provider"), c.String("provider-chain"))
	chain, err := summarize.BuildChain(c.Context, names, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build provider chain: %w", err)
	}

	summarizer, err := summarize.NewSummarizer(chain, cfg.ChunkSize,
		summarize.WithSummarizerLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("build summarizer: %w", err)
	}

	guard, err := ingestion.NewGuard(c.String("processed-file"), store, logger)
	if err != nil {
		return nil, fmt.Errorf("load processed urls: %w", err)
	}

	resolver := ingestion.NewResolver(
		ingestion.WithMinContent(c.Int("min-content")),
	)

	opts := []ingestion.PipelineOption{
		ingestion.WithPipelineLogger(logger),
	}
	if c.IsSet("workers") {
		opts = append(opts, ingestion.WithWorkers(c.Int("workers")))
	}

	return ingestion.NewPipeline(resolver, guard, summarizer, store, opts...)
}

func ingestCommand(c *cli.Context) error {
	pipeline, err := buildPipeline(c)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(c.Context, c.String("input-dir"))
	if err != nil {
		return err
	}
	return exitOnFailures(result.Failed)
}

func addCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one URL argument is required")
	}

	pipeline, err := buildPipeline(c)
	if err != nil {
		return err
	}

	failed := 0
	for _, rawURL := range c.Args().Slice() {
		if pipeline.ProcessURL(c.Context, rawURL) == core.OutcomeFailed {
			failed++
		}
	}
	return exitOnFailures(failed)
}

func feedsCommand(c *cli.Context) error {
	feeds := c.StringSlice("feed")
	if len(feeds) == 0 {
		return fmt.Errorf("at least one feed is required (--feed or RSS_FEEDS)")
	}

	pipeline, err := buildPipeline(c)
	if err != nil {
		return err
	}
	collector := feed.NewCollector(feed.WithCollectorLogger(slog.Default()))

	failed := 0
	for _, feedURL := range feeds {
		links, err := collector.Collect(c.Context, feedURL, c.Int("limit"))
		if err != nil {
			slog.Error("feed collection failed", "feed", feedURL, "error", err)
			failed++
			continue
		}
		for _, link := range links {
			if pipeline.ProcessURL(c.Context, link.URL) == core.OutcomeFailed {
				failed++
			}
		}
	}
	return exitOnFailures(failed)
}

func exitOnFailures(failed int) error {
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d item(s) failed", failed), 1)
	}
	return nil
}
