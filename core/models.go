package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Post is a durable piece of ingested content. It is created exactly once per
// distinct OriginalURL and is never mutated by the ingestion pipeline after
// creation; only batch maintenance (rederive) may replace its Vector.
type Post struct {
	Id          ID
	OriginalURL string // Canonical URL, the deduplication key
	Title       string
	HTMLContent string
	TextContent string    // Plain text stripped of markup, input for derivation
	Summary     string    // Generated summary (populated by the derivation stage)
	Vector      []float32 // Embedding vector (populated by the derivation stage)
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Feed is a user-curated collection that posts are linked into.
// Not to be confused with an RSS/Atom feed document.
type Feed struct {
	Id            ID
	Title         string
	Slug          string // Random URL-facing identifier
	OwnerUserID   uint64
	MemberUserIDs []uint64
	InsertedAt    time.Time
	UpdatedAt     time.Time
}

// HasMember reports whether the given user owns or belongs to the feed.
func (f *Feed) HasMember(userID uint64) bool {
	if f.OwnerUserID == userID {
		return true
	}
	for _, id := range f.MemberUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// FeedPost is the many-to-many edge linking one post into one feed,
// tagged with the user that requested the ingestion.
// At most one edge exists per (FeedId, PostId) pair.
type FeedPost struct {
	FeedId     ID
	PostId     ID
	UserId     uint64
	InsertedAt time.Time
}

// ExtractedContent is the normalized output of an extractor. It lives only for
// the duration of a single pipeline invocation and is never persisted as-is.
type ExtractedContent struct {
	OriginalURL string // Canonical form, stable for dedup lookups
	Title       string
	HTMLContent string
	TextContent string // Must be non-empty for derivation to proceed
}

// Checkpoint records batch-maintenance progress for a processor type,
// allowing interrupted runs to resume.
type Checkpoint struct {
	ProcessorType string
	LastID        ID
	UpdatedAt     time.Time
}
