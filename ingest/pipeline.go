package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/gatherit/ai"
	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/extract"
	"github.com/poiesic/gatherit/storage"
)

// Pipeline orchestrates the ingestion of submitted URLs.
// It classifies, extracts, dedups, derives, persists, and links content.
type Pipeline struct {
	posts            storage.PostRepository
	feeds            storage.FeedRepository
	provider         ai.AIProvider
	articles         extract.ArticleExtractor
	videos           extract.VideoContentExtractor
	feedParser       extract.FeedParser
	pool             *ants.Pool
	summaryBaseDelay time.Duration
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for fire-and-forget ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithSummaryBaseDelay sets the wait after the first summary failure.
// Tests use a short delay; the default is 10 seconds.
func WithSummaryBaseDelay(delay time.Duration) Option {
	return func(p *Pipeline) error {
		if delay > 0 {
			p.summaryBaseDelay = delay
		}
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	posts storage.PostRepository,
	feeds storage.FeedRepository,
	provider ai.AIProvider,
	articles extract.ArticleExtractor,
	videos extract.VideoContentExtractor,
	feedParser extract.FeedParser,
	opts ...Option,
) (*Pipeline, error) {
	if posts == nil {
		return nil, ErrPostRepositoryRequired
	}
	if feeds == nil {
		return nil, ErrFeedRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if articles == nil {
		return nil, ErrArticleExtractorRequired
	}
	if videos == nil {
		return nil, ErrVideoExtractorRequired
	}
	if feedParser == nil {
		return nil, ErrFeedParserRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		posts:            posts,
		feeds:            feeds,
		provider:         provider,
		articles:         articles,
		videos:           videos,
		feedParser:       feedParser,
		pool:             pool,
		summaryBaseDelay: defaultSummaryBaseDelay,
		logger:           slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest schedules ingestion of a URL into a feed and returns immediately.
// The outcome is observable only through storage or logs; the caller has no
// completion signal and no cancellation handle.
func (p *Pipeline) Ingest(ctx context.Context, url string, feedID core.ID, userID uint64) error {
	return p.pool.Submit(func() {
		if _, err := p.Process(context.Background(), url, feedID, userID); err != nil {
			p.logger.Error("ingestion failed", "url", url, "feedID", feedID, "err", err)
			return
		}
		p.logger.Info("ingestion complete", "url", url, "feedID", feedID)
	})
}

// Process runs the full ingestion of a URL synchronously.
// RSS URLs hand control to the batch driver and return a nil post; other
// URLs return the persisted (or pre-existing) post.
func (p *Pipeline) Process(ctx context.Context, url string, feedID core.ID, userID uint64) (*core.Post, error) {
	c := Classify(url)
	p.logger.Debug("classified URL", "url", url, "kind", c.Kind.String())

	if c.Kind == SourceRSS {
		return nil, p.processFeed(ctx, url, feedID, userID)
	}

	return p.processOne(ctx, c, feedID, userID)
}

// processOne ingests a single article or video URL.
// A dedup hit short-circuits straight to linking. A miss proceeds through
// extraction, derivation, persistence, and linking.
func (p *Pipeline) processOne(ctx context.Context, c Classification, feedID core.ID, userID uint64) (*core.Post, error) {
	existing, err := p.posts.FindPostByOriginalURL(ctx, c.WorkingURL)
	if err == nil {
		p.linkPost(ctx, feedID, existing.Id, userID)
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	content, err := p.extractContent(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateExtractedContent(content); err != nil {
		return nil, fmt.Errorf("%w: %w", extract.ErrExtractionFailed, err)
	}

	summary, vector, err := p.derive(ctx, content.TextContent)
	if err != nil {
		return nil, err
	}

	post, err := p.persistPost(ctx, content, summary, vector)
	if err != nil {
		return nil, err
	}

	p.linkPost(ctx, feedID, post.Id, userID)
	return post, nil
}

// extractContent dispatches to the variant selected by classification.
func (p *Pipeline) extractContent(ctx context.Context, c Classification) (*core.ExtractedContent, error) {
	if c.Kind == SourceVideo {
		return p.videos.ExtractVideo(ctx, c.VideoID)
	}
	return p.articles.ExtractArticle(ctx, c.WorkingURL)
}

// persistPost creates the post record. If another ingestion of the same URL
// won the race past the dedup check, the storage layer rejects the insert
// and the winner's post is fetched and reused.
func (p *Pipeline) persistPost(ctx context.Context, content *core.ExtractedContent, summary string, vector []float32) (*core.Post, error) {
	post := &core.Post{
		OriginalURL: content.OriginalURL,
		Title:       content.Title,
		HTMLContent: content.HTMLContent,
		TextContent: content.TextContent,
		Summary:     summary,
		Vector:      vector,
	}

	_, err := p.posts.AddPosts(ctx, post)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, storage.ErrDuplicateKey) {
		return nil, err
	}

	p.logger.Debug("lost ingestion race, reusing existing post", "url", content.OriginalURL)
	return p.posts.FindPostByOriginalURL(ctx, content.OriginalURL)
}

// linkPost attaches a post to a feed. Link failures after the post exists
// are logged and never invalidate the ingestion.
func (p *Pipeline) linkPost(ctx context.Context, feedID, postID core.ID, userID uint64) {
	_, err := p.feeds.AddFeedPost(ctx, &core.FeedPost{
		FeedId: feedID,
		PostId: postID,
		UserId: userID,
	})
	if err == nil || errors.Is(err, storage.ErrDuplicateKey) {
		return
	}
	p.logger.Error("failed to link post into feed", "feedID", feedID, "postID", postID, "err", err)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
