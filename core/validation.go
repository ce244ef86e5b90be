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


package core

import "fmt"

// ValidatePost validates a Post according to domain rules.
//
// Validation rules:
//   - OriginalURL must not be empty
//   - TextContent must not be empty
//
// NOT validated (populated before or after persistence):
//   - Summary and Vector (required by the pipeline before persist, but a Post
//     read back during maintenance may carry an empty Vector mid-rederive)
//   - ID (0 is valid from database sequences)
func ValidatePost(post *Post) error {
	if post == nil {
		return fmt.Errorf("%w: post is nil", ErrInvalidPost)
	}

	if post.OriginalURL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPost, ErrEmptyOriginalURL)
	}

	if post.TextContent == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPost, ErrEmptyTextContent)
	}

	return nil
}

// ValidateFeed validates a Feed according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Slug must not be empty
func ValidateFeed(feed *Feed) error {
	if feed == nil {
		return fmt.Errorf("%w: feed is nil", ErrInvalidFeed)
	}

	if feed.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeed, ErrEmptyFeedTitle)
	}

	if feed.Slug == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeed, ErrEmptyFeedSlug)
	}

	return nil
}

// ValidateFeedPost validates a FeedPost edge according to domain rules.
func ValidateFeedPost(edge *FeedPost) error {
	if edge == nil {
		return fmt.Errorf("%w: edge is nil", ErrInvalidFeedPost)
	}

	if edge.FeedId == 0 || edge.PostId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFeedPost, ErrZeroEdgeID)
	}

	return nil
}

// ValidateExtractedContent validates extractor output before derivation.
//
// Validation rules:
//   - OriginalURL must not be empty (and must already be canonical)
//   - TextContent must not be empty
func ValidateExtractedContent(content *ExtractedContent) error {
	if content == nil {
		return fmt.Errorf("%w: content is nil", ErrInvalidExtractedContent)
	}

	if content.OriginalURL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidExtractedContent, ErrEmptyOriginalURL)
	}

	if content.TextContent == "" {
		return fmt.Errorf("%w: %w", ErrInvalidExtractedContent, ErrEmptyTextContent)
	}

	return nil
}
