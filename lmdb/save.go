package lmdb

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/PowerDNS/lmdb-go/lmdb"
	"github.com/bouzuya/nostrlikes"
	"github.com/nbd-wtf/go-nostr"
	nostr_binary "github.com/nbd-wtf/go-nostr/binary"
)

// SaveEvent only queues evt, nothing reaches the environment before Flush.
func (b *LMDBBackend) SaveEvent(ctx context.Context, evt *nostr.Event) error {
	id, err := hex.DecodeString(evt.ID)
	if err != nil || len(id) != 32 {
		return fmt.Errorf("invalid event id '%s'", evt.ID)
	}

	if _, ok := b.pending.Get(evt.ID); ok {
		return nostrlikes.ErrDupEvent
	}

	err = b.lmdbEnv.View(func(txn *lmdb.Txn) error {
		_, err := txn.Get(b.rawEventStore, id)
		return err
	})
	if err == nil {
		return nostrlikes.ErrDupEvent
	} else if !lmdb.IsNotFound(err) {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}

	b.pending.Add(evt)
	return nil
}

// Flush writes every queued event in one transaction and syncs the environment.
func (b *LMDBBackend) Flush() error {
	if b.pending.Len() > 0 {
		err := b.lmdbEnv.Update(func(txn *lmdb.Txn) error {
			for _, evt := range b.pending.List() {
				id, err := hex.DecodeString(evt.ID)
				if err != nil {
					return err
				}
				bin, err := nostr_binary.Marshal(evt)
				if err != nil {
					return err
				}
				if err := txn.Put(b.rawEventStore, id, bin, lmdb.NoOverwrite); err != nil && !lmdb.IsErrno(err, lmdb.KeyExist) {
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

	if err := b.lmdbEnv.Sync(true); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
	}
	return nil
}
