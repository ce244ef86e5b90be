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


package rederive

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/gatherit/ai"
	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/storage"
)

// checkpointProcessorType identifies rederivation runs in the checkpoint store.
const checkpointProcessorType = "rederive"

// Config holds configuration for the rederivation operation.
type Config struct {
	// BatchSize is the number of posts to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of posts)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Rederiver orchestrates regenerating embeddings for all stored posts.
// Progress is checkpointed after each batch so an interrupted run resumes
// where it left off.
type Rederiver struct {
	repo        storage.PostRepository
	checkpoints storage.CheckpointRepository
	embedder    ai.Embedder
	config      *Config
	progress    io.Writer
	processor   *BatchProcessor
	iterator    *PostIterator
}

// NewRederiver creates a new rederiver.
// checkpoints may be nil, in which case runs always start from the beginning.
// progress: where to write progress output (typically os.Stderr)
func NewRederiver(repo storage.PostRepository, checkpoints storage.CheckpointRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Rederiver {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewPostIterator(repo, config.BatchSize)

	return &Rederiver{
		repo:        repo,
		checkpoints: checkpoints,
		embedder:    embedder,
		config:      config,
		progress:    progress,
		processor:   processor,
		iterator:    iterator,
	}
}

// Run executes the rederivation operation.
// All posts past the last checkpoint are reembedded with the configured
// embedder. Progress is reported to the configured writer.
func (r *Rederiver) Run(ctx context.Context) error {
	afterID, err := r.loadCheckpoint(ctx)
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}

	totalPosts, err := r.iterator.Count(ctx, afterID)
	if err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}

	if totalPosts == 0 {
		fmt.Fprintf(r.progress, "No posts to process (0 posts past checkpoint)\n")
		return nil
	}

	if afterID > 0 {
		fmt.Fprintf(r.progress, "Resuming from checkpoint (last processed post %d)\n", afterID)
	}

	fmt.Fprintf(r.progress, "Starting rederivation of %d posts (batch size: %d)\n",
		totalPosts, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalPosts, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	err = r.iterator.ForEach(ctx, afterID, func(posts []*core.Post) error {
		if err := r.processor.Process(ctx, posts); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		if err := r.saveCheckpoint(ctx, posts); err != nil {
			return fmt.Errorf("failed to save checkpoint: %w", err)
		}

		processed += len(posts)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Rederivation complete. Processed %d posts in %v (%.1f posts/sec)\n",
		totalPosts, elapsed.Round(time.Second), float64(totalPosts)/elapsed.Seconds())

	return nil
}

// loadCheckpoint returns the ID of the last processed post, or zero when no
// checkpoint exists.
func (r *Rederiver) loadCheckpoint(ctx context.Context) (core.ID, error) {
	if r.checkpoints == nil {
		return 0, nil
	}

	checkpoint, err := r.checkpoints.LoadCheckpoint(ctx, checkpointProcessorType)
	if err != nil {
		return 0, err
	}
	if checkpoint == nil {
		return 0, nil
	}

	return checkpoint.LastID, nil
}

// saveCheckpoint records the highest post ID in the batch.
func (r *Rederiver) saveCheckpoint(ctx context.Context, posts []*core.Post) error {
	if r.checkpoints == nil {
		return nil
	}

	var lastID core.ID
	for _, post := range posts {
		if post.Id > lastID {
			lastID = post.Id
		}
	}

	return r.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: checkpointProcessorType,
		LastID:        lastID,
	})
}
