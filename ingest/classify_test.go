package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_RSS(t *testing.T) {
	urls := []string{
		"https://blog.example.com/feed.xml",
		"https://blog.example.com/posts.XML",
		"https://blog.example.com/feed",
		"https://blog.example.com/feed/",
		"https://blog.example.com/rss",
		"https://blog.example.com/atom/",
		"https://blog.example.com/rss.xml",
		"https://blog.example.com/atom.xml",
	}

	for _, url := range urls {
		c := Classify(url)
		assert.Equal(t, SourceRSS, c.Kind, "url %s", url)
		assert.Equal(t, url, c.WorkingURL)
	}
}

func TestClassify_Video(t *testing.T) {
	tests := []struct {
		url     string
		videoID string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/abc123XYZ", "abc123XYZ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		c := Classify(tt.url)
		assert.Equal(t, SourceVideo, c.Kind, "url %s", tt.url)
		assert.Equal(t, tt.videoID, c.VideoID, "url %s", tt.url)
		assert.Equal(t, "https://www.youtube.com/watch?v="+tt.videoID, c.WorkingURL, "url %s", tt.url)
	}
}

func TestClassify_CanonicalizationInvariant(t *testing.T) {
	// Different surface forms of the same video collapse to one URL
	watch := Classify("https://www.youtube.com/watch?v=abc123XYZ")
	short := Classify("https://youtu.be/abc123XYZ")
	shorts := Classify("https://www.youtube.com/shorts/abc123XYZ")

	assert.Equal(t, watch.WorkingURL, short.WorkingURL)
	assert.Equal(t, watch.WorkingURL, shorts.WorkingURL)
}

func TestClassify_Article(t *testing.T) {
	urls := []string{
		"https://example.com/a.html",
		"https://example.com/posts/2026/article",
		"https://youtube.com/about", // video host but no video shape
	}

	for _, url := range urls {
		c := Classify(url)
		assert.Equal(t, SourceArticle, c.Kind, "url %s", url)
		assert.Empty(t, c.VideoID)
		assert.Equal(t, url, c.WorkingURL)
	}
}

func TestClassify_RSSBeforeVideo(t *testing.T) {
	// RSS detection runs first
	c := Classify("https://www.youtube.com/feeds/videos.xml")
	assert.Equal(t, SourceRSS, c.Kind)
}
