package badger

import (
	"context"
	"fmt"

	"github.com/bouzuya/nostrlikes"
	"github.com/dgraph-io/badger/v4"
	"github.com/nbd-wtf/go-nostr"
	nostr_binary "github.com/nbd-wtf/go-nostr/binary"
)

func (b *BadgerBackend) GetEvent(ctx context.Context, id string) (*nostr.Event, error) {
	key, err := eventKey(id)
	if err != nil {
		return nil, nostrlikes.ErrNotFound
	}

	if evt, ok := b.pending.Get(id); ok {
		return evt, nil
	}

	evt := &nostr.Event{}
	err = b.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return nostr_binary.Unmarshal(val, evt)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nostrlikes.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: event %s: %w", nostrlikes.ErrCacheCorrupt, id, err)
	}

	return evt, nil
}
