package mock

import (
	"context"
	"strings"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default deterministic behavior.
	SummarizeFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default deterministic behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns a deterministic summary derived from the input text.
// The default behavior echoes the first sentence, truncated to 100 characters.
func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}

	summary := strings.TrimSpace(text)
	if idx := strings.IndexAny(summary, ".!?"); idx >= 0 {
		summary = summary[:idx+1]
	}
	if len(summary) > 100 {
		summary = summary[:100]
	}
	return summary, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}
