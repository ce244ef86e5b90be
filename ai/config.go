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


package ai

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// SummaryHost is the base URL for the summary generation service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	SummaryHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// SummaryModel is the model identifier to use for summary generation.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	SummaryModel string

	// MaxInputChars is the maximum number of characters of extracted text
	// sent to the model. Longer input is truncated.
	// Default: 8000
	MaxInputChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithSummaryHost sets the summary service host URL.
func WithSummaryHost(host string) ConfigOption {
	return func(c *Config) {
		c.SummaryHost = host
	}
}

// WithHost sets both embedding and summary hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.SummaryHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithSummaryModel sets the summary model identifier.
func WithSummaryModel(model string) ConfigOption {
	return func(c *Config) {
		c.SummaryModel = model
	}
}

// WithMaxInputChars sets the truncation limit for model input.
func WithMaxInputChars(max int) ConfigOption {
	return func(c *Config) {
		c.MaxInputChars = max
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and summary use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		SummaryHost:    defaultHost,
		EmbeddingModel: "embeddinggemma",
		SummaryModel:   "qwen2.5:3b",
		MaxInputChars:  8000,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("text-embedding-3-small"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.SummaryHost != "" && !strings.HasSuffix(c.SummaryHost, "/v1") {
		c.SummaryHost = strings.TrimSuffix(c.SummaryHost, "/")
		c.SummaryHost = c.SummaryHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.SummaryHost == "" {
		return errors.New("ai config: SummaryHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.SummaryModel == "" {
		return errors.New("ai config: SummaryModel is required")
	}
	if c.MaxInputChars < 1 {
		return errors.New("ai config: MaxInputChars must be positive")
	}
	return nil
}

// Truncate clips text to the configured MaxInputChars.
// The cut never splits a UTF-8 sequence.
func (c *Config) Truncate(text string) string {
	if len(text) <= c.MaxInputChars {
		return text
	}
	cut := c.MaxInputChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
