package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/storage"
)

// FeedRepository implements storage.FeedRepository for BadgerDB.
type FeedRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.FeedRepository = (*FeedRepository)(nil)

// NewFeedRepository creates a new FeedRepository.
func NewFeedRepository(backend *Backend) (*FeedRepository, error) {
	idSeq, err := backend.GetSequence(feedIDSeq)
	if err != nil {
		return nil, err
	}

	return &FeedRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *FeedRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *FeedRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddFeeds adds one or more feeds to storage.
func (r *FeedRepository) AddFeeds(ctx context.Context, feeds ...*core.Feed) ([]*core.Feed, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, feed := range feeds {
			// Enforce slug uniqueness before consuming a sequence ID
			slugKey := makeFeedSlugKey(feed.Slug)
			if _, err := tx.Get(slugKey); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			feed.Id = core.ID(nextID)

			feed.InsertedAt = time.Now().UTC()
			feed.UpdatedAt = feed.InsertedAt

			// Store primary record
			key := makeFeedKey(feed.Id)
			value := storage.MarshalFeed(feed)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update slug index
			if err := tx.Set(slugKey, storage.MarshalID(feed.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return feeds, err
}

// GetFeed retrieves a single feed by ID.
func (r *FeedRepository) GetFeed(ctx context.Context, id core.ID) (*core.Feed, error) {
	var result *core.Feed
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFeedKey(id)
		var err error
		result, err = r.readFeed(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// FindFeedBySlug finds a feed by its URL-facing slug.
func (r *FeedRepository) FindFeedBySlug(ctx context.Context, slug string) (*core.Feed, error) {
	var result *core.Feed
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeFeedSlugKey(slug))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var feedID core.ID
		if err := item.Value(func(val []byte) error {
			var unmarshalErr error
			feedID, unmarshalErr = storage.UnmarshalID(val)
			return unmarshalErr
		}); err != nil {
			return err
		}

		result, err = r.readFeed(tx, makeFeedKey(feedID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AddFeedPost creates the edge linking a post into a feed.
func (r *FeedRepository) AddFeedPost(ctx context.Context, edge *core.FeedPost) (*core.FeedPost, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFeedPostKey(edge.FeedId, edge.PostId)

		// One edge per (feed, post) pair
		if _, err := tx.Get(key); err == nil {
			return storage.ErrDuplicateKey
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		edge.InsertedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalFeedPost(edge)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return edge, err
}

// GetFeedPost retrieves the edge for a (feed, post) pair.
func (r *FeedRepository) GetFeedPost(ctx context.Context, feedID, postID core.ID) (*core.FeedPost, error) {
	var result *core.FeedPost
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeFeedPostKey(feedID, postID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalFeedPost(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// GetFeedPosts retrieves up to limit edges for a feed, newest first.
// Edges sort by post ID within a feed, so reverse iteration yields the
// most recently ingested posts first.
func (r *FeedRepository) GetFeedPosts(ctx context.Context, feedID core.ID, limit int) ([]*core.FeedPost, error) {
	var results []*core.FeedPost
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := makePartialFeedPostKey(feedID)

		// Seek to the last possible edge for this feed
		startKey := makeFeedPostKey(feedID, core.ID(^uint64(0)))

		count := 0
		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			if limit > 0 && count >= limit {
				break
			}

			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var edge *core.FeedPost
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				edge, unmarshalErr = storage.UnmarshalFeedPost(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			results = append(results, edge)
			count++
		}
		return nil
	}, false)

	return results, err
}

// readFeed reads a feed record from the transaction.
func (r *FeedRepository) readFeed(tx *badger.Txn, key []byte) (*core.Feed, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var feed *core.Feed
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		feed, unmarshalErr = storage.UnmarshalFeed(val)
		return unmarshalErr
	})
	return feed, err
}
