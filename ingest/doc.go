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


// Package ingest orchestrates the content ingestion pipeline.
//
// A submitted URL passes through classification (RSS feed, video, or
// article), extraction, deduplication against previously ingested posts,
// concurrent summary and embedding derivation, persistence, and finally
// linking into the requesting feed.
//
// Ingest schedules the work on a bounded pool and returns immediately; the
// outcome is observable only through storage or logs. Process runs the same
// pipeline synchronously for batch tooling and tests.
//
// RSS submissions hand control to the batch driver, which processes items
// sequentially and isolates per-item failures so one bad item never aborts
// the batch.
package ingest
