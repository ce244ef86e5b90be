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
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/extract"
	"github.com/poiesic/gatherit/storage"
)

// processFeed ingests every item of an RSS/Atom document, sequentially.
// Per-item failures are logged and never abort the batch; only a fetch or
// parse failure of the document itself fails the whole request.
func (p *Pipeline) processFeed(ctx context.Context, feedURL string, feedID core.ID, userID uint64) error {
	items, err := p.feedParser.FetchFeed(ctx, feedURL)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		p.logger.Info("feed yielded no items", "url", feedURL)
		return nil
	}

	origin, err := feedOrigin(feedURL)
	if err != nil {
		return err
	}

	p.logger.Info("processing feed items", "url", feedURL, "items", len(items))

	for _, item := range items {
		if item.Link == "" {
			p.logger.Warn("feed item has no link, skipping", "title", item.Title)
			continue
		}

		itemURL := absolutizeLink(origin, item.Link)
		if err := p.processFeedItem(ctx, item, itemURL, feedID, userID); err != nil {
			p.logger.Error("feed item failed, continuing", "url", itemURL, "err", err)
		}
	}

	return nil
}

// processFeedItem ingests one feed item against its resolved URL.
// When the item embeds a usable title, publish date, and body, content is
// synthesized directly from the item without fetching the page.
func (p *Pipeline) processFeedItem(ctx context.Context, item extract.FeedItem, itemURL string, feedID core.ID, userID uint64) error {
	existing, err := p.posts.FindPostByOriginalURL(ctx, itemURL)
	if err == nil {
		p.linkPost(ctx, feedID, existing.Id, userID)
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	var content *core.ExtractedContent
	if item.Title != "" && item.Content != "" && !item.Published.IsZero() {
		content = &core.ExtractedContent{
			OriginalURL: itemURL,
			Title:       item.Title,
			HTMLContent: item.Content,
			TextContent: extract.StripHTML(item.Content),
		}
	} else {
		content, err = p.articles.ExtractArticle(ctx, itemURL)
		if err != nil {
			return err
		}
	}
	if err := core.ValidateExtractedContent(content); err != nil {
		return err
	}

	summary, vector, err := p.derive(ctx, content.TextContent)
	if err != nil {
		return err
	}

	post, err := p.persistPost(ctx, content, summary, vector)
	if err != nil {
		return err
	}

	p.linkPost(ctx, feedID, post.Id, userID)
	return nil
}

// feedOrigin extracts the scheme://host origin of the feed URL.
func feedOrigin(feedURL string) (string, error) {
	u, err := url.Parse(feedURL)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + u.Host, nil
}

// absolutizeLink resolves a feed item link against the feed's origin.
// Links already rooted at the origin pass through; anything else gets the
// origin prepended. Best-effort, not full relative-URL resolution.
func absolutizeLink(origin, link string) string {
	if strings.HasPrefix(link, origin) {
		return link
	}
	return origin + link
}
