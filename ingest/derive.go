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


package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// summaryMaxAttempts bounds the summary retry loop.
	summaryMaxAttempts = 7

	// defaultSummaryBaseDelay is the wait after the first summary failure.
	// Each subsequent wait doubles.
	defaultSummaryBaseDelay = 10 * time.Second
)

// derive produces the summary and the embedding for the given text.
// The two calls run concurrently; both must succeed. The summary retries
// with exponential backoff, the embedding is a single attempt.
func (p *Pipeline) derive(ctx context.Context, text string) (string, []float32, error) {
	var (
		wg         sync.WaitGroup
		summary    string
		summaryErr error
		vector     []float32
		embedErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		summary, summaryErr = p.summarize(ctx, text)
	}()
	go func() {
		defer wg.Done()
		vector, embedErr = p.embed(ctx, text)
	}()
	wg.Wait()

	if summaryErr != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrDerivationFailed, summaryErr)
	}
	if embedErr != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrDerivationFailed, embedErr)
	}

	return summary, vector, nil
}

// summarize generates a summary, retrying with exponential backoff.
// An empty result counts as a failure, not a success with empty content.
func (p *Pipeline) summarize(ctx context.Context, text string) (string, error) {
	var summary string
	err := RetryWithBackoff(ctx, func() error {
		result, err := p.provider.Summarizer().Summarize(ctx, text)
		if err != nil {
			return err
		}
		if result == "" {
			return errors.New("empty summary")
		}
		summary = result
		return nil
	}, summaryMaxAttempts, p.summaryBaseDelay)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSummaryFailed, err)
	}
	return summary, nil
}

// embed generates the embedding vector. Single attempt, no retry.
func (p *Pipeline) embed(ctx context.Context, text string) ([]float32, error) {
	vector, err := p.provider.Embedder().EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrEmbeddingFailed)
	}
	return vector, nil
}
