package nostrlikes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/rs/zerolog"
)

// Resolver fetches the reactions of a public key and resolves the events they point to,
// going to the relay only for events that are not in the cache yet.
//
// It is not safe for concurrent use, queries are issued one at a time.
type Resolver struct {
	Relay   Querier
	Cache   Store
	Limit   int
	Timeout time.Duration
	Logger  *zerolog.Logger
}

type ResolverOption func(*Resolver)

func WithLimit(limit int) ResolverOption {
	return func(r *Resolver) { r.Limit = limit }
}

// WithTimeout bounds each individual relay query, not the whole run.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) { r.Timeout = timeout }
}

func WithLogger(logger *zerolog.Logger) ResolverOption {
	return func(r *Resolver) { r.Logger = logger }
}

func NewResolver(relay Querier, cache Store, opts ...ResolverOption) *Resolver {
	nop := zerolog.Nop()
	r := &Resolver{
		Relay:   relay,
		Cache:   cache,
		Limit:   DefaultLimit,
		Timeout: DefaultTimeout,
		Logger:  &nop,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resolves the parents of the latest reactions by pk, calling emit for each one as soon
// as it is known, then flushes the cache. Any error, emit's included, aborts the run and
// leaves the cache unflushed.
func (r *Resolver) Run(ctx context.Context, pk PublicKey, emit func(*nostr.Event) error) error {
	reactions, err := r.FetchReactions(ctx, pk)
	if err != nil {
		return err
	}
	r.Logger.Debug().Int("count", len(reactions)).Str("author", pk.Hex()).Msg("got reactions")

	for _, reaction := range reactions {
		id, ok := ParentEventID(reaction)
		if !ok {
			r.Logger.Debug().Str("reaction", reaction.ID).Msg("no parent event tag, skipping")
			continue
		}

		parent, err := r.ResolveParent(ctx, id)
		if err != nil {
			return err
		}
		if parent == nil {
			continue
		}
		if err := emit(parent); err != nil {
			return err
		}
	}

	if err := r.Cache.Flush(); err != nil {
		return err
	}
	return nil
}

// FetchReactions does a single query for the reactions authored by pk.
func (r *Resolver) FetchReactions(ctx context.Context, pk PublicKey) ([]*nostr.Event, error) {
	return r.query(ctx, reactionsFilter(pk, r.Limit))
}

// ResolveParent returns the event with the given id, from the cache if possible.
// When the relay doesn't have it (or doesn't answer in time) it returns nil, nil and
// nothing is cached, so a later run will ask again.
func (r *Resolver) ResolveParent(ctx context.Context, id string) (*nostr.Event, error) {
	evt, err := r.Cache.GetEvent(ctx, id)
	if err == nil {
		r.Logger.Debug().Str("id", id).Msg("cache hit")
		return evt, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	r.Logger.Debug().Str("id", id).Msg("cache miss, querying relay")
	events, err := r.query(ctx, idFilter(id))
	if errors.Is(err, ErrQueryTimeout) {
		r.Logger.Warn().Str("id", id).Dur("timeout", r.Timeout).Msg("relay didn't answer, skipping")
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		r.Logger.Info().Str("id", id).Msg("event not found on relay")
		return nil, nil
	}

	evt = events[0]
	if err := r.Cache.SaveEvent(ctx, evt); err != nil && !errors.Is(err, ErrDupEvent) {
		return nil, err
	}
	return evt, nil
}

func (r *Resolver) query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	qctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	events, err := r.Relay.QuerySync(qctx, filter)
	switch {
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil && !errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: %w", ErrRelayQuery, err)
	case qctx.Err() != nil:
		// go-nostr returns (events, nil) both on EOSE and when qctx expires, so an answer
		// racing the deadline is counted as a timeout too
		return nil, fmt.Errorf("%w after %s: %s", ErrQueryTimeout, r.Timeout, filter)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrRelayQuery, err)
	}
	return events, nil
}
