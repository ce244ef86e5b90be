package rederive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEmbedder for testing
type mockEmbedder struct {
	embedTextFunc  func(ctx context.Context, text string) ([]float32, error)
	embedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if m.embedTextFunc != nil {
		return m.embedTextFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedTextsFunc != nil {
		return m.embedTextsFunc(ctx, texts)
	}
	// Default: return unnormalized vectors for each text
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{1.0, 2.0, 2.0} // magnitude = 3.0
	}
	return result, nil
}

func TestBatchProcessor_Process(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	added := addTestPosts(t, repo, 2)

	embedder := &mockEmbedder{}
	processor := NewBatchProcessor(repo, embedder, 3, 10*time.Millisecond)

	err := processor.Process(ctx, added)
	require.NoError(t, err)

	// Verify vectors were stored normalized
	for _, post := range added {
		stored, err := repo.GetPost(ctx, post.Id)
		require.NoError(t, err)
		require.Len(t, stored.Vector, 3)
		assert.InDelta(t, 1.0/3.0, stored.Vector[0], 1e-6)
		assert.InDelta(t, 2.0/3.0, stored.Vector[1], 1e-6)
		assert.InDelta(t, 2.0/3.0, stored.Vector[2], 1e-6)
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	embedder := &mockEmbedder{}
	processor := NewBatchProcessor(repo, embedder, 3, 10*time.Millisecond)

	err := processor.Process(context.Background(), nil)
	require.NoError(t, err, "empty batch should be a no-op")
}

func TestBatchProcessor_RetriesThenSucceeds(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	added := addTestPosts(t, repo, 1)

	calls := 0
	embedder := &mockEmbedder{
		embedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("transient failure")
			}
			result := make([][]float32, len(texts))
			for i := range result {
				result[i] = []float32{1.0, 0.0, 0.0}
			}
			return result, nil
		},
	}

	processor := NewBatchProcessor(repo, embedder, 3, time.Millisecond)
	err := processor.Process(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "should retry until success")
}

func TestBatchProcessor_RetriesExhausted(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	added := addTestPosts(t, repo, 1)

	calls := 0
	embedder := &mockEmbedder{
		embedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			calls++
			return nil, errors.New("persistent failure")
		},
	}

	processor := NewBatchProcessor(repo, embedder, 3, time.Millisecond)
	err := processor.Process(ctx, added)
	require.Error(t, err)
	assert.Equal(t, 3, calls, "should stop after max retries")

	// Post should be unchanged
	stored, err := repo.GetPost(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Empty(t, stored.Vector)
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	added := addTestPosts(t, repo, 2)

	embedder := &mockEmbedder{
		embedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1.0, 0.0}}, nil // one vector for two posts
		},
	}

	processor := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err := processor.Process(ctx, added)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestBatchProcessor_TextsFromContent(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	added := addTestPosts(t, repo, 2)

	var gotTexts []string
	embedder := &mockEmbedder{
		embedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			gotTexts = texts
			result := make([][]float32, len(texts))
			for i := range result {
				result[i] = []float32{1.0, 0.0}
			}
			return result, nil
		},
	}

	processor := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err := processor.Process(ctx, added)
	require.NoError(t, err)

	require.Len(t, gotTexts, 2)
	for i, post := range added {
		assert.Equal(t, post.TextContent, gotTexts[i], "embedding input should be the post text")
	}
}
