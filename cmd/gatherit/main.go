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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/gatherit"
	"github.com/poiesic/gatherit/ai"
	"github.com/poiesic/gatherit/httpserver"
	"github.com/poiesic/gatherit/ingest"
	"github.com/poiesic/gatherit/rederive"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "gatherit",
		Usage: "Content ingestion service for shared feeds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and ingestion pipeline",
				Action: serveCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "HTTP listen address",
						Value: ":3002",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Ingestion worker pool size (0 uses half the CPU count)",
					},
				),
			},
			{
				Name:      "ingest",
				Usage:     "Ingest a single URL synchronously",
				ArgsUsage: "<url>",
				Action:    ingestCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "feed-slug",
						Usage:    "Slug of the feed to link the content into",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "user",
						Usage:    "ID of the submitting user",
						Required: true,
					},
				),
			},
			{
				Name:   "rederive",
				Usage:  "Regenerate embeddings for all stored posts",
				Action: rederiveCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of posts to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N posts",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL for both summaries and embeddings",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (defaults to ai-host)",
		},
		&cli.StringFlag{
			Name:  "summary-host",
			Usage: "Summary service host URL (defaults to ai-host)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "summary-model",
			Usage: "Summary model name",
			Value: "qwen2.5:3b",
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	opts := []ai.ConfigOption{
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithSummaryModel(c.String("summary-model")),
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("summary-host"); host != "" {
		opts = append(opts, ai.WithSummaryHost(host))
	}

	config := ai.NewConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func serveCommand(c *cli.Context) error {
	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	svc, err := gatherit.NewService(c.String("db"), gatherit.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	var pipelineOpts []ingest.Option
	if size := c.Int("pool-size"); size > 0 {
		pipelineOpts = append(pipelineOpts, ingest.WithPoolSize(size))
	}

	pipeline, err := svc.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	server := httpserver.NewServer(
		c.String("listen"),
		svc.FeedRepository(),
		svc.PostRepository(),
		pipeline,
		slog.Default().With("component", "httpserver"),
	)

	// Shut down cleanly on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	url := c.Args().First()
	if url == "" {
		return fmt.Errorf("url argument is required")
	}

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	svc, err := gatherit.NewService(c.String("db"), gatherit.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	feed, err := svc.FeedRepository().FindFeedBySlug(ctx, c.String("feed-slug"))
	if err != nil {
		return fmt.Errorf("failed to resolve feed %q: %w", c.String("feed-slug"), err)
	}

	pipeline, err := svc.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	post, err := pipeline.Process(ctx, url, feed.Id, c.Uint64("user"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if post != nil {
		fmt.Fprintf(os.Stderr, "Ingested post %d: %s\n", post.Id, post.Title)
	} else {
		fmt.Fprintln(os.Stderr, "Feed batch processed")
	}
	return nil
}

func rederiveCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	config := &rederive.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	svc, err := gatherit.NewService(c.String("db"), gatherit.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	rederiver := svc.NewRederiver(config, os.Stderr)
	if err := rederiver.Run(ctx); err != nil {
		return fmt.Errorf("rederivation failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
