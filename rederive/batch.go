package rederive

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/gatherit/ai"
	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/ingest"
	"github.com/poiesic/gatherit/storage"
)

// BatchProcessor handles embedding regeneration for batches of posts.
type BatchProcessor struct {
	repo           storage.PostRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.PostRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process regenerates embeddings for a batch of posts and updates them in
// the database. Vectors are normalized after embedding so they remain
// compatible with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, posts []*core.Post) error {
	if len(posts) == 0 {
		return nil
	}

	texts := make([]string, len(posts))
	for i, post := range posts {
		texts[i] = post.TextContent
	}

	var vectors [][]float32
	err := ingest.RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(vectors) != len(posts) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(posts), len(vectors))
	}

	for i := range posts {
		posts[i].Vector = NormalizeVector(vectors[i])
	}

	_, err = bp.repo.UpdatePosts(ctx, posts...)
	if err != nil {
		return fmt.Errorf("failed to update posts: %w", err)
	}

	return nil
}
