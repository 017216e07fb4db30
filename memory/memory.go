package memory

import (
	"context"
	"strings"

	"github.com/bouzuya/nostrlikes"
	"github.com/nbd-wtf/go-nostr"
	"golang.org/x/exp/slices"
)

var _ nostrlikes.Store = (*Store)(nil)

// Store keeps events in a slice sorted by created_at (newest first), it persists nothing.
//
// Besides being a cache that forgets everything on exit it also answers arbitrary filters,
// so it can stand in for a relay through nostrlikes.RelayWrapper.
type Store struct {
	internal []*nostr.Event

	MaxLimit int
}

func (b *Store) Init() error {
	b.internal = make([]*nostr.Event, 0, 500)
	if b.MaxLimit == 0 {
		b.MaxLimit = 500
	}
	return nil
}

func (b *Store) Close() {}

func (b *Store) Flush() error { return nil }

func (b *Store) GetEvent(ctx context.Context, id string) (*nostr.Event, error) {
	for _, evt := range b.internal {
		if evt.ID == id {
			return evt, nil
		}
	}
	return nil, nostrlikes.ErrNotFound
}

// QueryEvents sends the events matching filter newest first, at most filter.Limit of them.
func (b *Store) QueryEvents(ctx context.Context, filter nostr.Filter) (chan *nostr.Event, error) {
	limit := filter.Limit
	if limit <= 0 || limit > b.MaxLimit {
		limit = b.MaxLimit
	}

	var matched []*nostr.Event
	for _, evt := range b.internal {
		if len(matched) == limit {
			break
		}
		if filter.Matches(evt) {
			matched = append(matched, evt)
		}
	}

	ch := make(chan *nostr.Event, len(matched))
	for _, evt := range matched {
		ch <- evt
	}
	close(ch)
	return ch, nil
}

func (b *Store) SaveEvent(ctx context.Context, evt *nostr.Event) error {
	idx, found := slices.BinarySearchFunc(b.internal, evt, eventComparator)
	if found {
		return nostrlikes.ErrDupEvent
	}
	// insert at the correct place in the array
	b.internal = append(b.internal, nil)
	copy(b.internal[idx+1:], b.internal[idx:])
	b.internal[idx] = evt

	return nil
}

// Len is the number of events held.
func (b *Store) Len() int { return len(b.internal) }

func eventComparator(a *nostr.Event, b *nostr.Event) int {
	c := int(b.CreatedAt) - int(a.CreatedAt)
	if c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}
