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


package extract

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// captionTrackPattern locates the first caption track URL inside the
// player response embedded in a watch page.
var captionTrackPattern = regexp.MustCompile(`"captionTracks":\[\{"baseUrl":"([^"]+)"`)

// YouTubeClient retrieves transcripts and metadata for YouTube videos.
// It implements both TranscriptClient and VideoMetadataClient by scraping
// the watch page: the transcript comes from the timedtext track referenced
// in the embedded player response, the metadata from Open Graph tags.
type YouTubeClient struct {
	client  *http.Client
	baseURL string // Watch page origin, overridable for tests
	logger  *slog.Logger
}

var (
	_ TranscriptClient    = (*YouTubeClient)(nil)
	_ VideoMetadataClient = (*YouTubeClient)(nil)
)

// YouTubeOption configures a YouTubeClient.
type YouTubeOption func(*YouTubeClient)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(client *http.Client) YouTubeOption {
	return func(c *YouTubeClient) {
		c.client = client
	}
}

// WithBaseURL overrides the watch page origin. Used in tests.
func WithBaseURL(baseURL string) YouTubeOption {
	return func(c *YouTubeClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewYouTubeClient creates a client for transcript and metadata retrieval.
func NewYouTubeClient(opts ...YouTubeOption) *YouTubeClient {
	c := &YouTubeClient{
		client:  &http.Client{Timeout: defaultFetchTimeout},
		baseURL: "https://www.youtube.com",
		logger:  slog.Default().With("component", "youtube-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// timedTextDocument mirrors the timedtext XML served for a caption track.
type timedTextDocument struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedTextElm `xml:"text"`
}

type timedTextElm struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// FetchTranscript retrieves the transcript segments for a video in
// original order.
func (c *YouTubeClient) FetchTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error) {
	page, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	match := captionTrackPattern.FindStringSubmatch(page)
	if match == nil {
		return nil, fmt.Errorf("%w: video %s has no caption tracks", ErrNoTranscript, videoID)
	}

	// The URL inside the player response JSON is escaped
	trackURL := strings.ReplaceAll(match[1], `\u0026`, "&")

	body, err := c.get(ctx, trackURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTranscript, err)
	}

	var doc timedTextDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTranscript, err)
	}
	if len(doc.Texts) == 0 {
		return nil, fmt.Errorf("%w: empty transcript for video %s", ErrNoTranscript, videoID)
	}

	segments := make([]TranscriptSegment, len(doc.Texts))
	for i, t := range doc.Texts {
		segments[i] = TranscriptSegment{
			Text:     html.UnescapeString(strings.TrimSpace(t.Body)),
			Start:    time.Duration(t.Start * float64(time.Second)),
			Duration: time.Duration(t.Dur * float64(time.Second)),
		}
	}
	return segments, nil
}

// FetchMetadata retrieves the video's title and description from the watch
// page's Open Graph tags.
func (c *YouTubeClient) FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	page, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	meta := &VideoMetadata{}
	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = v
	}
	if v, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		meta.Description = v
	}
	return meta, nil
}

func (c *YouTubeClient) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/watch?v=%s", c.baseURL, videoID))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *YouTubeClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
