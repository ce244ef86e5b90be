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

	"github.com/mmcdole/gofeed"
)

// FeedFetcher implements FeedParser using gofeed.
type FeedFetcher struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ FeedParser = (*FeedFetcher)(nil)

// NewFeedFetcher creates a feed fetcher.
// A nil client uses a default client with a 30 second timeout.
func NewFeedFetcher(client *http.Client) *FeedFetcher {
	parser := gofeed.NewParser()
	if client != nil {
		parser.Client = client
	} else {
		parser.Client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &FeedFetcher{
		parser: parser,
		logger: slog.Default().With("component", "feed-fetcher"),
	}
}

// FetchFeed fetches and parses the RSS/Atom document at url.
// Items are returned in document order. The item body prefers the full
// content element and falls back to the description.
func (f *FeedFetcher) FetchFeed(ctx context.Context, url string) ([]FeedItem, error) {
	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFeedParseFailed, err)
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		out := FeedItem{
			Title:   item.Title,
			Link:    item.Link,
			Content: item.Content,
		}
		if out.Content == "" {
			out.Content = item.Description
		}
		if item.PublishedParsed != nil {
			out.Published = *item.PublishedParsed
		}
		items = append(items, out)
	}

	f.logger.Debug("parsed feed", "url", url, "items", len(items))
	return items, nil
}
