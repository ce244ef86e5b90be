package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/extract"
)

func TestProcessFeed_EmbeddedContentScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	published := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	env.feedParser.FetchFeedFunc = func(ctx context.Context, url string) ([]extract.FeedItem, error) {
		return []extract.FeedItem{
			{Link: "/a.html", Title: "T", Content: "<p>Hi</p>", Published: published},
		}, nil
	}

	post, err := env.pipeline.Process(ctx, "https://ex.com/feed.xml", env.feedID, 1)
	require.NoError(t, err)
	assert.Nil(t, post) // batch driver path returns no single post

	// Link resolved against the feed origin, content taken from the item
	stored, err := env.posts.FindPostByOriginalURL(ctx, "https://ex.com/a.html")
	require.NoError(t, err)
	assert.Equal(t, "T", stored.Title)
	assert.Equal(t, "<p>Hi</p>", stored.HTMLContent)
	assert.Equal(t, "Hi", stored.TextContent)

	// No network fetch for embedded content
	assert.Equal(t, 0, env.articles.CallCount())

	// Linked into the requesting feed
	_, err = env.feeds.GetFeedPost(ctx, env.feedID, stored.Id)
	assert.NoError(t, err)
}

func TestProcessFeed_AbsoluteLinkPassthrough(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.feedParser.FetchFeedFunc = func(ctx context.Context, url string) ([]extract.FeedItem, error) {
		return []extract.FeedItem{
			{Link: "https://ex.com/full", Title: "T", Content: "<p>Body</p>", Published: time.Now()},
		}, nil
	}

	_, err := env.pipeline.Process(ctx, "https://ex.com/feed.xml", env.feedID, 1)
	require.NoError(t, err)

	_, err = env.posts.FindPostByOriginalURL(ctx, "https://ex.com/full")
	assert.NoError(t, err)
}

func TestProcessFeed_FallbackToArticleExtractor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// No embedded body: the driver must fetch the page
	env.feedParser.FetchFeedFunc = func(ctx context.Context, url string) ([]extract.FeedItem, error) {
		return []extract.FeedItem{
			{Link: "/thin.html", Title: "Thin Item"},
		}, nil
	}

	_, err := env.pipeline.Process(ctx, "https://ex.com/feed.xml", env.feedID, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, env.articles.CallCount())
	_, err = env.posts.FindPostByOriginalURL(ctx, "https://ex.com/thin.html")
	assert.NoError(t, err)
}

func TestProcessFeed_BatchIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.feedParser.FetchFeedFunc = func(ctx context.Context, url string) ([]extract.FeedItem, error) {
		return []extract.FeedItem{
			{Link: "/one"},
			{Link: "/two"},
			{Link: "/three"},
		}, nil
	}
	env.articles.ExtractArticleFunc = func(ctx context.Context, url string) (*core.ExtractedContent, error) {
		if url == "https://ex.com/two" {
			return nil, extract.ErrExtractionFailed
		}
		return &core.ExtractedContent{
			OriginalURL: url,
			Title:       "Item",
			HTMLContent: "<p>Body</p>",
			TextContent: "Body",
		}, nil
	}

	// One bad item never aborts the batch
	_, err := env.pipeline.Process(ctx, "https://ex.com/feed.xml", env.feedID, 1)
	require.NoError(t, err)

	_, err = env.posts.FindPostByOriginalURL(ctx, "https://ex.com/one")
	assert.NoError(t, err)
	_, err = env.posts.FindPostByOriginalURL(ctx, "https://ex.com/three")
	assert.NoError(t, err)

	all, err := env.posts.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProcessFeed_DedupHitLinksFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Pre-ingested post from another submission
	pre := &core.Post{OriginalURL: "https://ex.com/old", Title: "Old", TextContent: "Old body"}
	_, err := env.posts.AddPosts(ctx, pre)
	require.NoError(t, err)

	env.feedParser.FetchFeedFunc = func(ctx context.Context, url string) ([]extract.FeedItem, error) {
		return []extract.FeedItem{
			{Link: "/old", Title: "Old", Content: "<p>Old body</p>", Published: time.Now()},
		}, nil
	}

	_, err = env.pipeline.Process(ctx, "https://ex.com/feed.xml", env.feedID, 1)
	require.NoError(t, err)

	// Linked without re-ingestion
	_, err = env.feeds.GetFeedPost(ctx, env.feedID, pre.Id)
	assert.NoError(t, err)
	assert.Equal(t, 0, env.summarizer.CallCount())

	all, err := env.posts.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProcessFeed_EmptyFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Zero items is a successful no-op
	post, err := env.pipeline.Process(ctx, "https://ex.com/feed.xml", env.feedID, 1)
	assert.NoError(t, err)
	assert.Nil(t, post)
}

func TestProcessFeed_FetchFailureIsFatal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.feedParser.FetchFeedFunc = func(ctx context.Context, url string) ([]extract.FeedItem, error) {
		return nil, extract.ErrFeedParseFailed
	}

	_, err := env.pipeline.Process(ctx, "https://ex.com/feed.xml", env.feedID, 1)
	assert.ErrorIs(t, err, extract.ErrFeedParseFailed)
}

func TestProcessFeed_ItemWithoutLinkSkipped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.feedParser.FetchFeedFunc = func(ctx context.Context, url string) ([]extract.FeedItem, error) {
		return []extract.FeedItem{
			{Title: "No link at all"},
			{Link: "/ok", Title: "T", Content: "<p>Body</p>", Published: time.Now()},
		}, nil
	}

	_, err := env.pipeline.Process(ctx, "https://ex.com/feed.xml", env.feedID, 1)
	require.NoError(t, err)

	all, err := env.posts.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "https://ex.com/ok", all[0].OriginalURL)
}
