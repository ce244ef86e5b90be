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


// Package rederive regenerates embedding vectors for stored posts.
//
// It is the batch-maintenance counterpart to the ingestion pipeline: when
// the embedding model changes, every post's vector must be recomputed from
// its text content. Posts are processed in batches with retry and progress
// reporting, and a checkpoint records the highest post ID completed so an
// interrupted run can resume where it left off.
package rederive
