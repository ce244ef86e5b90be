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


// Package storage provides the storage abstraction layer for gatherit.
//
// This package defines repository interfaces that decouple storage
// implementation from the ingestion pipeline. The pipeline depends on these
// interfaces as its deduplication and persistence gateway; the concrete
// backend (BadgerDB, in-memory for tests) is interchangeable.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - PostRepository: durable content records, keyed by ID with a unique
//     canonical-URL index used for deduplication
//   - FeedRepository: feeds and the feed↔post edges linking content into them
//   - CheckpointRepository: batch-maintenance progress records
//
// # Consistency guarantees
//
// PostRepository.AddPosts enforces uniqueness of Post.OriginalURL and returns
// ErrDuplicateKey when a racing ingestion has already stored the same URL.
// FeedRepository.AddFeedPost enforces at most one edge per (feed, post) pair
// the same way. Callers are expected to treat ErrDuplicateKey as "already
// exists" rather than as a hard failure.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
