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
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/poiesic/gatherit/core"
)

const defaultFetchTimeout = 30 * time.Second

// ReadabilityExtractor implements ArticleExtractor using go-readability.
type ReadabilityExtractor struct {
	client *http.Client
	logger *slog.Logger
}

var _ ArticleExtractor = (*ReadabilityExtractor)(nil)

// NewReadabilityExtractor creates an article extractor.
// A nil client uses a default client with a 30 second timeout.
func NewReadabilityExtractor(client *http.Client) *ReadabilityExtractor {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &ReadabilityExtractor{
		client: client,
		logger: slog.Default().With("component", "article-extractor"),
	}
}

// ExtractArticle fetches the page and isolates its readable body.
func (e *ReadabilityExtractor) ExtractArticle(ctx context.Context, pageURL string) (*core.ExtractedContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w: %d", ErrExtractionFailed, ErrUnexpectedStatus, resp.StatusCode)
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		e.logger.Warn("readability parse failed", "url", pageURL, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	if article.Content == "" {
		return nil, fmt.Errorf("%w: no content body isolated", ErrExtractionFailed)
	}

	return &core.ExtractedContent{
		OriginalURL: pageURL,
		Title:       article.Title,
		HTMLContent: article.Content,
		TextContent: StripHTML(article.Content),
	}, nil
}
