package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/gatherit/core"
)

// Key prefixes for different data types
const (
	postRecordPrefix  = "post"
	postURLPrefix     = "posturl"
	postIDSeq         = "postseq"
	feedRecordPrefix  = "feed"
	feedSlugPrefix    = "feedslug"
	feedIDSeq         = "feedseq"
	feedPostPrefix    = "feedpost"
)

// makePostKey generates a key for a post record by ID.
func makePostKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", postRecordPrefix, id))
}

// makePostURLKey generates a key for the URL uniqueness index.
// The URL is hashed to a fixed-width value so keys stay small
// regardless of URL length. Lookups must verify the stored URL
// to guard against hash collisions.
func makePostURLKey(originalURL string) []byte {
	prefix := postURLPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(originalURL)))
	return buf
}

// makeFeedKey generates a key for a feed record by ID.
func makeFeedKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", feedRecordPrefix, id))
}

// makeFeedSlugKey generates a key for the slug lookup index.
func makeFeedSlugKey(slug string) []byte {
	return []byte(fmt.Sprintf("%s:%s", feedSlugPrefix, slug))
}

// makeFeedPostKey generates a composite key for a feed-post edge.
// Format: prefix:feedID:postID
func makeFeedPostKey(feedID, postID core.ID) []byte {
	prefix := feedPostPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for feedID + 8 bytes for postID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(feedID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(postID))
	return buf
}

// makePartialFeedPostKey generates a partial key covering every edge of a feed.
// Format: prefix:feedID
func makePartialFeedPostKey(feedID core.ID) []byte {
	prefix := feedPostPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for feedID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(feedID))
	return buf
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", processorType))
}
