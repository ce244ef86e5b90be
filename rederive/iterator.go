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


package rederive

import (
	"context"

	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/storage"
)

const (
	// DefaultBatchSize is the default number of posts to process in each batch
	DefaultBatchSize = 100
)

// PostIterator iterates over stored posts in batches.
type PostIterator struct {
	repo      storage.PostRepository
	batchSize int
}

// NewPostIterator creates a new post iterator.
// batchSize: number of posts to process in each batch (must be > 0)
func NewPostIterator(repo storage.PostRepository, batchSize int) *PostIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &PostIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over posts with ID greater than afterID, calling fn for
// each batch. Iteration stops on first error from fn or when all posts are
// processed. Context cancellation is checked between batches.
func (it *PostIterator) ForEach(ctx context.Context, afterID core.ID, fn func([]*core.Post) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	all, err := it.repo.GetAllPosts(ctx)
	if err != nil {
		return err
	}

	// Skip posts already covered by a previous run
	posts := all[:0:0]
	for _, post := range all {
		if post.Id > afterID {
			posts = append(posts, post)
		}
	}

	if len(posts) == 0 {
		return nil
	}

	for i := 0; i < len(posts); i += it.batchSize {
		end := i + it.batchSize
		if end > len(posts) {
			end = len(posts)
		}

		if err := fn(posts[i:end]); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

// Count returns the number of posts with ID greater than afterID.
func (it *PostIterator) Count(ctx context.Context, afterID core.ID) (int, error) {
	all, err := it.repo.GetAllPosts(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, post := range all {
		if post.Id > afterID {
			count++
		}
	}
	return count, nil
}
