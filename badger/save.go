package badger

import (
	"context"
	"fmt"

	"github.com/bouzuya/nostrlikes"
	"github.com/dgraph-io/badger/v4"
	"github.com/nbd-wtf/go-nostr"
	nostr_binary "github.com/nbd-wtf/go-nostr/binary"
)

// SaveEvent only queues evt, nothing reaches the database before Flush.
func (b *BadgerBackend) SaveEvent(ctx context.Context, evt *nostr.Event) error {
	key, err := eventKey(evt.ID)
	if err != nil {
		return err
	}

	if _, ok := b.pending.Get(evt.ID); ok {
		return nostrlikes.ErrDupEvent
	}

	err = b.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if err == nil {
		return nostrlikes.ErrDupEvent
	} else if err != badger.ErrKeyNotFound {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}

	b.pending.Add(evt)
	return nil
}

// Flush commits every queued event in one transaction and syncs it to disk.
func (b *BadgerBackend) Flush() error {
	if b.pending.Len() > 0 {
		err := b.Update(func(txn *badger.Txn) error {
			for _, evt := range b.pending.List() {
				key, err := eventKey(evt.ID)
				if err != nil {
					return err
				}
				bin, err := nostr_binary.Marshal(evt)
				if err != nil {
					return err
				}
				if err := txn.Set(key, bin); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
		}
		b.pending.Reset()
	}

	if err := b.DB.Sync(); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
	}
	return nil
}
