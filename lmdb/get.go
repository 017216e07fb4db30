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

func (b *LMDBBackend) GetEvent(ctx context.Context, id string) (*nostr.Event, error) {
	key, err := hex.DecodeString(id)
	if err != nil || len(key) != 32 {
		return nil, nostrlikes.ErrNotFound
	}

	if evt, ok := b.pending.Get(id); ok {
		return evt, nil
	}

	evt := &nostr.Event{}
	err = b.lmdbEnv.View(func(txn *lmdb.Txn) error {
		val, err := txn.Get(b.rawEventStore, key)
		if err != nil {
			return err
		}
		return nostr_binary.Unmarshal(val, evt)
	})
	if lmdb.IsNotFound(err) {
		return nil, nostrlikes.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: event %s: %w", nostrlikes.ErrCacheCorrupt, id, err)
	}

	return evt, nil
}
