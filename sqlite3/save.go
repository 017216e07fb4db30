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

// SaveEvent only queues evt, nothing is inserted before Flush.
func (b *SQLite3Backend) SaveEvent(ctx context.Context, evt *nostr.Event) error {
	b.Lock()
	defer b.Unlock()

	if _, ok := b.pending.Get(evt.ID); ok {
		return nostrlikes.ErrDupEvent
	}

	var one int
	err := b.DB.GetContext(ctx, &one, `SELECT 1 FROM event WHERE id = $1`, evt.ID)
	if err == nil {
		return nostrlikes.ErrDupEvent
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to look up event %s: %w", evt.ID, err)
	}

	b.pending.Add(evt)
	return nil
}

// Flush inserts every queued event inside a single transaction.
func (b *SQLite3Backend) Flush() error {
	b.Lock()
	defer b.Unlock()

	if b.pending.Len() == 0 {
		return nil
	}

	txn, err := b.DB.Beginx()
	if err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
	}
	defer txn.Rollback()

	for _, evt := range b.pending.List() {
		raw, err := easyjson.Marshal(evt)
		if err != nil {
			return fmt.Errorf("%w: event %s: %w", nostrlikes.ErrCachePersist, evt.ID, err)
		}
		if _, err := txn.Exec(`INSERT OR IGNORE INTO event (id, raw) VALUES ($1, $2)`, evt.ID, raw); err != nil {
			return fmt.Errorf("%w: failed to save event %s: %w", nostrlikes.ErrCachePersist, evt.ID, err)
		}
	}

	if err := txn.Commit(); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
	}

	b.pending.Reset()
	return nil
}
