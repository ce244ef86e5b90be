package storage

import (
	"context"

	"github.com/poiesic/gatherit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// PostRepository provides operations for managing durable content records.
// It is the single source of truth for "already ingested": the canonical-URL
// index backing FindPostByOriginalURL is maintained atomically with the posts.
type PostRepository interface {
	Repository

	// AddPosts adds one or more posts to storage.
	// Generates new IDs from sequence and sets InsertedAt/UpdatedAt.
	// Returns ErrDuplicateKey if a post with the same OriginalURL already
	// exists; no partial writes are visible in that case.
	AddPosts(ctx context.Context, posts ...*core.Post) ([]*core.Post, error)

	// UpdatePosts updates existing posts.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any post doesn't exist.
	UpdatePosts(ctx context.Context, posts ...*core.Post) ([]*core.Post, error)

	// DeletePosts removes posts by their IDs, along with the URL index
	// entries. Returns ErrNotFound if any post doesn't exist.
	DeletePosts(ctx context.Context, ids ...core.ID) error

	// GetPost retrieves a single post by ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetPost(ctx context.Context, id core.ID) (*core.Post, error)

	// GetPosts retrieves multiple posts by their IDs.
	// Returns only the posts that exist (no error for missing posts).
	GetPosts(ctx context.Context, ids ...core.ID) ([]*core.Post, error)

	// GetAllPosts retrieves all posts in storage iteration order.
	// Used by batch maintenance; not intended for request paths.
	GetAllPosts(ctx context.Context) ([]*core.Post, error)

	// FindPostByOriginalURL finds a post by exact match on its canonical URL.
	// Returns ErrNotFound if no post has been ingested from that URL.
	FindPostByOriginalURL(ctx context.Context, url string) (*core.Post, error)
}

// FeedRepository provides operations for managing feeds and the edges that
// link posts into them.
type FeedRepository interface {
	Repository

	// AddFeeds adds one or more feeds to storage.
	// Generates new IDs from sequence and sets InsertedAt/UpdatedAt.
	// Returns ErrDuplicateKey if a feed with the same slug already exists.
	AddFeeds(ctx context.Context, feeds ...*core.Feed) ([]*core.Feed, error)

	// GetFeed retrieves a single feed by ID.
	// Returns ErrNotFound if the feed doesn't exist.
	GetFeed(ctx context.Context, id core.ID) (*core.Feed, error)

	// FindFeedBySlug finds a feed by its URL-facing slug.
	// Returns ErrNotFound if no feed has that slug.
	FindFeedBySlug(ctx context.Context, slug string) (*core.Feed, error)

	// AddFeedPost creates the edge linking a post into a feed.
	// Sets InsertedAt. Returns ErrDuplicateKey if the (feed, post) pair is
	// already linked, leaving the existing edge untouched.
	AddFeedPost(ctx context.Context, edge *core.FeedPost) (*core.FeedPost, error)

	// GetFeedPost retrieves the edge for a (feed, post) pair.
	// Returns ErrNotFound if the pair is not linked.
	GetFeedPost(ctx context.Context, feedID, postID core.ID) (*core.FeedPost, error)

	// GetFeedPosts retrieves up to limit edges for a feed, newest first.
	// A limit <= 0 means no limit.
	GetFeedPosts(ctx context.Context, feedID core.ID, limit int) ([]*core.FeedPost, error)
}

// CheckpointRepository provides operations for batch-maintenance checkpoints.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)
}
