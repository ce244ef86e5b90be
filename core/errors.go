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

import "errors"

// Domain validation errors
var (
	// ErrInvalidPost indicates a Post failed validation.
	ErrInvalidPost = errors.New("invalid post")

	// ErrInvalidFeed indicates a Feed failed validation.
	ErrInvalidFeed = errors.New("invalid feed")

	// ErrInvalidFeedPost indicates a FeedPost edge failed validation.
	ErrInvalidFeedPost = errors.New("invalid feed post")

	// ErrInvalidExtractedContent indicates ExtractedContent failed validation.
	ErrInvalidExtractedContent = errors.New("invalid extracted content")

	// ErrEmptyOriginalURL indicates the OriginalURL field is empty.
	ErrEmptyOriginalURL = errors.New("original url cannot be empty")

	// ErrEmptyTextContent indicates the TextContent field is empty.
	ErrEmptyTextContent = errors.New("text content cannot be empty")

	// ErrEmptyFeedTitle indicates the feed Title field is empty.
	ErrEmptyFeedTitle = errors.New("feed title cannot be empty")

	// ErrEmptyFeedSlug indicates the feed Slug field is empty.
	ErrEmptyFeedSlug = errors.New("feed slug cannot be empty")

	// ErrZeroEdgeID indicates a FeedPost references a zero feed or post ID.
	ErrZeroEdgeID = errors.New("feed and post ids must be non-zero")
)
