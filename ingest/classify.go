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


package ingest

import (
	"regexp"

	"github.com/poiesic/gatherit/extract"
)

// SourceKind is the extraction strategy selected for a submitted URL.
type SourceKind int

const (
	// SourceArticle is the fallthrough strategy: fetch the page and
	// isolate its readable body.
	SourceArticle SourceKind = iota

	// SourceVideo extracts a video transcript plus metadata.
	SourceVideo

	// SourceRSS hands the URL to the batch driver.
	SourceRSS
)

// String returns the source kind name for logging.
func (k SourceKind) String() string {
	switch k {
	case SourceVideo:
		return "video"
	case SourceRSS:
		return "rss"
	default:
		return "article"
	}
}

// Classification is the result of classifying a submitted URL.
type Classification struct {
	Kind SourceKind

	// VideoID is set only for SourceVideo.
	VideoID string

	// WorkingURL is the URL the pipeline operates on. For videos it is
	// the canonical watch URL, so that every surface form of the same
	// video collapses to one dedup key. Otherwise it is the submitted
	// URL unchanged.
	WorkingURL string
}

// rssPatterns match URL shapes that conventionally serve RSS/Atom documents.
// A heuristic on the URL string only, never a content-type probe.
var rssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.xml$`),
	regexp.MustCompile(`(?i)/feed/?$`),
	regexp.MustCompile(`(?i)/rss/?$`),
	regexp.MustCompile(`(?i)/atom/?$`),
	regexp.MustCompile(`(?i)feed\.xml$`),
	regexp.MustCompile(`(?i)rss\.xml$`),
	regexp.MustCompile(`(?i)atom\.xml$`),
}

// videoIDPatterns match common video URL shapes in priority order.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([0-9A-Za-z]+)`),
}

// Classify decides which extraction strategy applies to a URL.
// RSS detection runs first, then video-id extraction; anything else is a
// generic article. Pure function of the URL string, never fails.
func Classify(url string) Classification {
	if isRSSURL(url) {
		return Classification{Kind: SourceRSS, WorkingURL: url}
	}

	if videoID := extractVideoID(url); videoID != "" {
		return Classification{
			Kind:       SourceVideo,
			VideoID:    videoID,
			WorkingURL: extract.CanonicalVideoURL(videoID),
		}
	}

	return Classification{Kind: SourceArticle, WorkingURL: url}
}

func isRSSURL(url string) bool {
	for _, pattern := range rssPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

func extractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return match[1]
		}
	}
	return ""
}
