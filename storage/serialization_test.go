package storage

import (
	"testing"
	"time"

	"github.com/poiesic/gatherit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("https://example.com/a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalPost(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	post := &core.Post{
		Id:          7,
		OriginalURL: "https://example.com/articles/go",
		Title:       "Why Go",
		HTMLContent: "<p>Because.</p>",
		TextContent: "Because.",
		Summary:     "A short case for Go.",
		Vector:      []float32{0.1, 0.2, 0.3},
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	data := MarshalPost(post)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalPost(data)
	require.NoError(t, err)

	assert.Equal(t, post.Id, decoded.Id)
	assert.Equal(t, post.OriginalURL, decoded.OriginalURL)
	assert.Equal(t, post.Title, decoded.Title)
	assert.Equal(t, post.HTMLContent, decoded.HTMLContent)
	assert.Equal(t, post.TextContent, decoded.TextContent)
	assert.Equal(t, post.Summary, decoded.Summary)
	assert.Equal(t, post.Vector, decoded.Vector)
	assert.True(t, post.InsertedAt.Equal(decoded.InsertedAt))
	assert.True(t, post.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestMarshalUnmarshalFeed(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	feed := &core.Feed{
		Id:            3,
		Title:         "Team reading list",
		Slug:          "x9q2m4k1p7",
		OwnerUserID:   11,
		MemberUserIDs: []uint64{11, 12, 13},
		InsertedAt:    now,
		UpdatedAt:     now,
	}

	data := MarshalFeed(feed)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalFeed(data)
	require.NoError(t, err)

	assert.Equal(t, feed.Id, decoded.Id)
	assert.Equal(t, feed.Title, decoded.Title)
	assert.Equal(t, feed.Slug, decoded.Slug)
	assert.Equal(t, feed.OwnerUserID, decoded.OwnerUserID)
	assert.Equal(t, feed.MemberUserIDs, decoded.MemberUserIDs)
	assert.True(t, feed.InsertedAt.Equal(decoded.InsertedAt))
}

func TestMarshalUnmarshalFeedPost(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	edge := &core.FeedPost{
		FeedId:     3,
		PostId:     7,
		UserId:     11,
		InsertedAt: now,
	}

	data := MarshalFeedPost(edge)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalFeedPost(data)
	require.NoError(t, err)

	assert.Equal(t, edge.FeedId, decoded.FeedId)
	assert.Equal(t, edge.PostId, decoded.PostId)
	assert.Equal(t, edge.UserId, decoded.UserId)
	assert.True(t, edge.InsertedAt.Equal(decoded.InsertedAt))
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	checkpoint := &core.Checkpoint{
		ProcessorType: "rederive",
		LastID:        42,
		UpdatedAt:     now,
	}

	data := MarshalCheckpoint(checkpoint)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)

	assert.Equal(t, checkpoint.ProcessorType, decoded.ProcessorType)
	assert.Equal(t, checkpoint.LastID, decoded.LastID)
	assert.True(t, checkpoint.UpdatedAt.Equal(decoded.UpdatedAt))
}
