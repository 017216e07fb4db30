package nostrlikes

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
)

// Store is a local cache of events keyed by their id, consulted before asking a relay.
//
// Entries are only ever added: there is no eviction, no expiry and no update of an
// event that is already present.
type Store interface {
	// Init loads whatever state the store has persisted before. A store that was never
	// persisted must come up empty instead of failing.
	Init() error

	// Close must be called after you're done using the store, to free up resources and so on.
	// It does not persist anything, call Flush for that.
	Close()

	// GetEvent returns the event with the given id or ErrNotFound.
	GetEvent(context.Context, string) (*nostr.Event, error)
	// SaveEvent adds an event, returning ErrDupEvent if its id is already present.
	SaveEvent(context.Context, *nostr.Event) error

	// Flush writes the cache to its backing storage.
	Flush() error
}

// Querier is the single thing we need from a relay: a one-shot query that returns what
// was stored there for a filter.
//
// *nostr.Relay satisfies this.
type Querier interface {
	QuerySync(context.Context, nostr.Filter) ([]*nostr.Event, error)
}
