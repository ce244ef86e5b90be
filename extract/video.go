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
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/gatherit/core"
)

// VideoExtractor implements VideoContentExtractor by combining a transcript
// client and a metadata client. The two fetches run concurrently. A transcript
// failure aborts the extraction; a metadata failure only degrades the title
// and description to empty.
type VideoExtractor struct {
	transcripts TranscriptClient
	metadata    VideoMetadataClient
	logger      *slog.Logger
}

var _ VideoContentExtractor = (*VideoExtractor)(nil)

// NewVideoExtractor creates a video content extractor.
func NewVideoExtractor(transcripts TranscriptClient, metadata VideoMetadataClient) *VideoExtractor {
	return &VideoExtractor{
		transcripts: transcripts,
		metadata:    metadata,
		logger:      slog.Default().With("component", "video-extractor"),
	}
}

// CanonicalVideoURL returns the canonical watch URL for a video ID.
// Every submission form of the same video collapses to this URL.
func CanonicalVideoURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// ExtractVideo fetches the transcript and metadata concurrently and
// assembles normalized content.
func (e *VideoExtractor) ExtractVideo(ctx context.Context, videoID string) (*core.ExtractedContent, error) {
	type transcriptResult struct {
		segments []TranscriptSegment
		err      error
	}
	type metadataResult struct {
		meta *VideoMetadata
		err  error
	}

	transcriptCh := make(chan transcriptResult, 1)
	metadataCh := make(chan metadataResult, 1)

	go func() {
		segments, err := e.transcripts.FetchTranscript(ctx, videoID)
		transcriptCh <- transcriptResult{segments: segments, err: err}
	}()
	go func() {
		meta, err := e.metadata.FetchMetadata(ctx, videoID)
		metadataCh <- metadataResult{meta: meta, err: err}
	}()

	tr := <-transcriptCh
	mr := <-metadataCh

	if tr.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, tr.err)
	}

	meta := mr.meta
	if mr.err != nil {
		e.logger.Warn("video metadata fetch failed, degrading to empty",
			"videoID", videoID, "err", mr.err)
		meta = &VideoMetadata{}
	}

	return &core.ExtractedContent{
		OriginalURL: CanonicalVideoURL(videoID),
		Title:       meta.Title,
		HTMLContent: assembleVideoHTML(meta.Description, tr.segments),
		TextContent: assembleVideoText(tr.segments),
	}, nil
}

// assembleVideoText joins segment texts by newlines, in original order.
func assembleVideoText(segments []TranscriptSegment) string {
	lines := make([]string, len(segments))
	for i, seg := range segments {
		lines[i] = seg.Text
	}
	return strings.Join(lines, "\n")
}

// assembleVideoHTML renders the description followed by one paragraph per
// segment annotated with its millisecond offset range.
func assembleVideoHTML(description string, segments []TranscriptSegment) string {
	paragraphs := make([]string, len(segments))
	for i, seg := range segments {
		start := seg.Start.Milliseconds()
		end := (seg.Start + seg.Duration).Milliseconds()
		paragraphs[i] = fmt.Sprintf("<p>%d - %d: %s</p>", start, end, seg.Text)
	}
	return description + "\n\n" + strings.Join(paragraphs, "\n")
}
