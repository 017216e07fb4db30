package bolt

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/bouzuya/nostrlikes"
	"github.com/mailru/easyjson"
	"github.com/nbd-wtf/go-nostr"
)

func (b *BoltBackend) GetEvent(ctx context.Context, id string) (*nostr.Event, error) {
	if evt, ok := b.pending.Get(id); ok {
		return evt, nil
	}

	var evt *nostr.Event
	err := b.db.View(func(txn *bolt.Tx) error {
		raw := txn.Bucket(bucketRaw).Get([]byte(id))
		if raw == nil {
			return nil
		}
		// the value is only valid inside the transaction
		raw = append([]byte(nil), raw...)
		evt = &nostr.Event{}
		return easyjson.Unmarshal(raw, evt)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: event %s: %w", nostrlikes.ErrCacheCorrupt, id, err)
	}
	if evt == nil {
		return nil, nostrlikes.ErrNotFound
	}
	return evt, nil
}
