package extract

import (
	"context"
	"time"

	"github.com/poiesic/gatherit/core"
)

// ArticleExtractor isolates readable content from an arbitrary web page.
// Implementations must be thread-safe for concurrent use.
type ArticleExtractor interface {
	// ExtractArticle fetches the page at url and returns its title, main
	// HTML body, and the plain text derived from that body.
	// Returns ErrExtractionFailed if no content body can be isolated.
	ExtractArticle(ctx context.Context, url string) (*core.ExtractedContent, error)
}

// VideoContentExtractor produces normalized content for a video by ID.
// Implementations must be thread-safe for concurrent use.
type VideoContentExtractor interface {
	// ExtractVideo fetches the transcript and metadata for a video and
	// assembles them into normalized content. The OriginalURL of the
	// result is the canonical watch URL for the video ID.
	// Returns ErrExtractionFailed if transcript retrieval fails.
	ExtractVideo(ctx context.Context, videoID string) (*core.ExtractedContent, error)
}

// TranscriptSegment is one timed span of a video transcript.
type TranscriptSegment struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// VideoMetadata is the basic descriptive information for a video.
type VideoMetadata struct {
	Title       string
	Description string
}

// TranscriptClient retrieves the ordered transcript segments for a video.
type TranscriptClient interface {
	// FetchTranscript returns the transcript segments in original order.
	// Returns ErrNoTranscript if the video has no transcript.
	FetchTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error)
}

// VideoMetadataClient retrieves basic metadata for a video.
type VideoMetadataClient interface {
	// FetchMetadata returns the video's title and description.
	FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// FeedItem is one entry of a parsed RSS/Atom document.
type FeedItem struct {
	Title     string
	Link      string
	Content   string // Item body; falls back to the item description
	Published time.Time
}

// FeedParser retrieves and parses an RSS/Atom document.
type FeedParser interface {
	// FetchFeed fetches the document at url and returns its items in
	// document order. Returns ErrFeedParseFailed if the document cannot
	// be parsed as a feed.
	FetchFeed(ctx context.Context, url string) ([]FeedItem, error)
}
