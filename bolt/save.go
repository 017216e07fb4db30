package bolt

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/bouzuya/nostrlikes"
	"github.com/mailru/easyjson"
	"github.com/nbd-wtf/go-nostr"
)

// SaveEvent only queues evt, nothing reaches the database file before Flush.
func (b *BoltBackend) SaveEvent(ctx context.Context, evt *nostr.Event) error {
	if _, ok := b.pending.Get(evt.ID); ok {
		return nostrlikes.ErrDupEvent
	}

	var exists bool
	if err := b.db.View(func(txn *bolt.Tx) error {
		exists = txn.Bucket(bucketRaw).Get([]byte(evt.ID)) != nil
		return nil
	}); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}
	if exists {
		return nostrlikes.ErrDupEvent
	}

	b.pending.Add(evt)
	return nil
}

// Flush writes every queued event in a single transaction.
func (b *BoltBackend) Flush() error {
	if b.pending.Len() == 0 {
		return nil
	}

	err := b.db.Update(func(txn *bolt.Tx) error {
		bucket := txn.Bucket(bucketRaw)
		for _, evt := range b.pending.List() {
			raw, err := easyjson.Marshal(evt)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(evt.ID), raw); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
	}

	b.pending.Reset()
	return nil
}
