package bolt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/bouzuya/nostrlikes"
	"github.com/bouzuya/nostrlikes/internal/pending"
)

// FileName is the database file used inside the cache directory.
const FileName = "events.bolt"

var bucketRaw = []byte("events")

var _ nostrlikes.Store = (*BoltBackend)(nil)

type BoltBackend struct {
	Path string

	db      *bolt.DB
	pending pending.Events
}

func (b *BoltBackend) Init() error {
	if err := os.MkdirAll(filepath.Dir(b.Path), 0755); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
	}

	// open boltdb, failing instead of waiting forever if another run holds the lock
	db, err := bolt.Open(b.Path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}
	b.db = db

	if err := b.db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(bucketRaw)
		return err
	}); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}

	return nil
}

// Close drops whatever was saved since the last Flush.
func (b *BoltBackend) Close() {
	b.pending.Reset()
	b.db.Close()
}
