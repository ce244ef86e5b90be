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


// Package openai implements the ai interfaces using OpenAI-compatible APIs.
//
// It works with any endpoint that speaks the OpenAI wire protocol, including
// Ollama, LocalAI, and vLLM. Authentication uses a placeholder token for
// local services that don't require one.
//
// The embedder strips newlines and truncates input before embedding.
// The summarizer sends a fixed system prompt and returns the first choice
// as plain text.
package openai
