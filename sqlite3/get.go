package sqlite3

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bouzuya/nostrlikes"
	"github.com/mailru/easyjson"
	"github.com/nbd-wtf/go-nostr"
)

func (b *SQLite3Backend) GetEvent(ctx context.Context, id string) (*nostr.Event, error) {
	b.Lock()
	evt, ok := b.pending.Get(id)
	b.Unlock()
	if ok {
		return evt, nil
	}

	var raw []byte
	err := b.DB.GetContext(ctx, &raw, `SELECT raw FROM event WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nostrlikes.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}

	evt = &nostr.Event{}
	if err := easyjson.Unmarshal(raw, evt); err != nil {
		return nil, fmt.Errorf("%w: event %s: %w", nostrlikes.ErrCacheCorrupt, id, err)
	}
	return evt, nil
}
