package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/extract"
)

// MockArticleExtractor is a test double for extract.ArticleExtractor.
type MockArticleExtractor struct {
	// ExtractArticleFunc is called by ExtractArticle if set.
	// If nil, returns canned content echoing the URL.
	ExtractArticleFunc func(ctx context.Context, url string) (*core.ExtractedContent, error)

	callCount int
}

// NewMockArticleExtractor creates a mock article extractor.
func NewMockArticleExtractor() *MockArticleExtractor {
	return &MockArticleExtractor{}
}

// ExtractArticle returns canned content for the URL.
func (m *MockArticleExtractor) ExtractArticle(ctx context.Context, url string) (*core.ExtractedContent, error) {
	m.callCount++

	if m.ExtractArticleFunc != nil {
		return m.ExtractArticleFunc(ctx, url)
	}

	return &core.ExtractedContent{
		OriginalURL: url,
		Title:       "Article at " + url,
		HTMLContent: fmt.Sprintf("<p>Content of %s</p>", url),
		TextContent: fmt.Sprintf("Content of %s", url),
	}, nil
}

// CallCount returns the number of times ExtractArticle was called.
func (m *MockArticleExtractor) CallCount() int {
	return m.callCount
}

// MockVideoExtractor is a test double for extract.VideoContentExtractor.
type MockVideoExtractor struct {
	// ExtractVideoFunc is called by ExtractVideo if set.
	// If nil, returns canned content for the video ID.
	ExtractVideoFunc func(ctx context.Context, videoID string) (*core.ExtractedContent, error)

	callCount int
}

// NewMockVideoExtractor creates a mock video extractor.
func NewMockVideoExtractor() *MockVideoExtractor {
	return &MockVideoExtractor{}
}

// ExtractVideo returns canned content for the video ID.
func (m *MockVideoExtractor) ExtractVideo(ctx context.Context, videoID string) (*core.ExtractedContent, error) {
	m.callCount++

	if m.ExtractVideoFunc != nil {
		return m.ExtractVideoFunc(ctx, videoID)
	}

	return &core.ExtractedContent{
		OriginalURL: extract.CanonicalVideoURL(videoID),
		Title:       "Video " + videoID,
		HTMLContent: fmt.Sprintf("<p>0 - 1000: Transcript of %s</p>", videoID),
		TextContent: fmt.Sprintf("Transcript of %s", videoID),
	}, nil
}

// CallCount returns the number of times ExtractVideo was called.
func (m *MockVideoExtractor) CallCount() int {
	return m.callCount
}

// MockFeedParser is a test double for extract.FeedParser.
type MockFeedParser struct {
	// FetchFeedFunc is called by FetchFeed if set.
	// If nil, returns an empty item list.
	FetchFeedFunc func(ctx context.Context, url string) ([]extract.FeedItem, error)

	callCount int
}

// NewMockFeedParser creates a mock feed parser.
func NewMockFeedParser() *MockFeedParser {
	return &MockFeedParser{}
}

// FetchFeed returns the injected items or an empty list.
func (m *MockFeedParser) FetchFeed(ctx context.Context, url string) ([]extract.FeedItem, error) {
	m.callCount++

	if m.FetchFeedFunc != nil {
		return m.FetchFeedFunc(ctx, url)
	}

	return []extract.FeedItem{}, nil
}

// CallCount returns the number of times FetchFeed was called.
func (m *MockFeedParser) CallCount() int {
	return m.callCount
}
