package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/gatherit/core"
	"github.com/poiesic/gatherit/storage"
)

// PostRepository implements storage.PostRepository for BadgerDB.
type PostRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.PostRepository = (*PostRepository)(nil)

// NewPostRepository creates a new PostRepository.
func NewPostRepository(backend *Backend) (*PostRepository, error) {
	idSeq, err := backend.GetSequence(postIDSeq)
	if err != nil {
		return nil, err
	}

	return &PostRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *PostRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *PostRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddPosts adds one or more posts to storage.
func (r *PostRepository) AddPosts(ctx context.Context, posts ...*core.Post) ([]*core.Post, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, post := range posts {
			// Enforce URL uniqueness before consuming a sequence ID
			existing, err := r.readPostByURL(tx, post.OriginalURL)
			if err != nil {
				return err
			}
			if existing != nil {
				return storage.ErrDuplicateKey
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
			post.Id = core.ID(nextID)

			post.InsertedAt = time.Now().UTC()
			post.UpdatedAt = post.InsertedAt

			// Store primary record
			key := makePostKey(post.Id)
			value := storage.MarshalPost(post)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update URL index
			urlKey := makePostURLKey(post.OriginalURL)
			if err := tx.Set(urlKey, storage.MarshalID(post.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return posts, err
}

// UpdatePosts updates existing posts.
func (r *PostRepository) UpdatePosts(ctx context.Context, posts ...*core.Post) ([]*core.Post, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, post := range posts {
			key := makePostKey(post.Id)

			// Read old record to detect URL changes
			old, err := r.readPost(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			post.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalPost(post)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update URL index if the URL changed
			if old.OriginalURL != post.OriginalURL {
				existing, err := r.readPostByURL(tx, post.OriginalURL)
				if err != nil {
					return err
				}
				if existing != nil && existing.Id != post.Id {
					return storage.ErrDuplicateKey
				}
				if err := tx.Delete(makePostURLKey(old.OriginalURL)); err != nil {
					return err
				}
				if err := tx.Set(makePostURLKey(post.OriginalURL), storage.MarshalID(post.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return posts, err
}

// DeletePosts removes posts by their IDs.
func (r *PostRepository) DeletePosts(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePostKey(id)

			// Read record to get the URL for index cleanup
			post, err := r.readPost(tx, key)
			if err != nil {
				return err
			}
			if post == nil {
				return storage.ErrNotFound
			}

			// Delete from URL index
			if err := tx.Delete(makePostURLKey(post.OriginalURL)); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPost retrieves a single post by ID.
func (r *PostRepository) GetPost(ctx context.Context, id core.ID) (*core.Post, error) {
	var result *core.Post
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makePostKey(id)
		var err error
		result, err = r.readPost(tx, key)
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

// GetPosts retrieves multiple posts by their IDs.
func (r *PostRepository) GetPosts(ctx context.Context, ids ...core.ID) ([]*core.Post, error) {
	var result []*core.Post
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePostKey(id)
			post, err := r.readPost(tx, key)
			if err != nil {
				return err
			}
			if post != nil {
				result = append(result, post)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllPosts retrieves all posts in storage iteration order.
func (r *PostRepository) GetAllPosts(ctx context.Context) ([]*core.Post, error) {
	var results []*core.Post
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(postRecordPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			var post *core.Post
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				post, unmarshalErr = storage.UnmarshalPost(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			results = append(results, post)
		}
		return nil
	}, false)

	return results, err
}

// FindPostByOriginalURL finds a post by exact match on its canonical URL.
func (r *PostRepository) FindPostByOriginalURL(ctx context.Context, url string) (*core.Post, error) {
	var result *core.Post
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readPostByURL(tx, url)
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

// Helper methods

// readPost reads a post record from the transaction.
func (r *PostRepository) readPost(tx *badger.Txn, key []byte) (*core.Post, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var post *core.Post
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		post, unmarshalErr = storage.UnmarshalPost(val)
		return unmarshalErr
	})
	return post, err
}

// readPostByURL resolves the URL index and verifies the stored URL,
// since the index key is a hash of the URL.
func (r *PostRepository) readPostByURL(tx *badger.Txn, url string) (*core.Post, error) {
	item, err := tx.Get(makePostURLKey(url))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var postID core.ID
	if err := item.Value(func(val []byte) error {
		var unmarshalErr error
		postID, unmarshalErr = storage.UnmarshalID(val)
		return unmarshalErr
	}); err != nil {
		return nil, err
	}

	post, err := r.readPost(tx, makePostKey(postID))
	if err != nil {
		return nil, err
	}
	if post == nil || post.OriginalURL != url {
		return nil, nil
	}
	return post, nil
}
