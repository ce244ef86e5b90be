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


// Package extract turns submitted URLs into normalized content.
//
// Two extractor variants produce the same core.ExtractedContent shape:
//
//   - ArticleExtractor fetches a web page and isolates its readable body
//     using go-readability, deriving plain text by stripping markup.
//   - VideoExtractor fetches a video's transcript and metadata concurrently.
//     The transcript is essential; a metadata failure only degrades the
//     title and description to empty.
//
// The package also provides FeedFetcher for retrieving and parsing RSS/Atom
// documents, used by the batch ingestion driver.
package extract
