package nostrlikes

import (
	"context"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
)

// Source is anything that can stream events matching a filter, like memory.Store.
type Source interface {
	QueryEvents(context.Context, nostr.Filter) (chan *nostr.Event, error)
}

// RelayWrapper makes a local Source look like a relay to the Resolver.
type RelayWrapper struct {
	Source
}

var _ Querier = (*RelayWrapper)(nil)

func (w RelayWrapper) QuerySync(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	ch, err := w.Source.QueryEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	n := filter.Limit
	if n == 0 {
		n = 500
	}

	results := make([]*nostr.Event, 0, n)
	for evt := range ch {
		results = append(results, evt)
	}

	return results, nil
}
