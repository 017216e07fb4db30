package stats

import (
	"context"
	"errors"

	"github.com/bouzuya/nostrlikes"
	"github.com/nbd-wtf/go-nostr"
)

// Wrapper counts what happens to the store it wraps. Not safe for concurrent use,
// which is fine since the resolver runs one lookup at a time.
type Wrapper struct {
	nostrlikes.Store

	Hits   int
	Misses int
	Saved  int
}

var _ nostrlikes.Store = (*Wrapper)(nil)

func (w *Wrapper) GetEvent(ctx context.Context, id string) (*nostr.Event, error) {
	evt, err := w.Store.GetEvent(ctx, id)
	switch {
	case err == nil:
		w.Hits++
	case errors.Is(err, nostrlikes.ErrNotFound):
		w.Misses++
	}
	return evt, err
}

func (w *Wrapper) SaveEvent(ctx context.Context, evt *nostr.Event) error {
	if err := w.Store.SaveEvent(ctx, evt); err != nil {
		return err
	}
	w.Saved++
	return nil
}
