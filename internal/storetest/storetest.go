// Package storetest has the checks every nostrlikes.Store must pass.
package storetest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/bouzuya/nostrlikes"
	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/require"
)

const (
	sk3 = "0000000000000000000000000000000000000000000000000000000000000003"
	sk4 = "0000000000000000000000000000000000000000000000000000000000000004"
)

// Events returns n signed events with distinct ids.
func Events(n int) []*nostr.Event {
	events := make([]*nostr.Event, 0, n)
	for i := 0; i < n; i++ {
		evt := &nostr.Event{
			CreatedAt: nostr.Timestamp(i*10 + 2),
			Content:   fmt.Sprintf("hello %d", i),
			Tags: nostr.Tags{
				{"t", fmt.Sprintf("%d", i)},
				{"e", "0" + strconv.Itoa(i%10) + strings.Repeat("0", 62)},
			},
			Kind: 1,
		}
		sk := sk3
		if i%3 == 0 {
			sk = sk4
		}
		evt.Sign(sk)
		events = append(events, evt)
	}
	return events
}

// Run exercises a store returned by open. When persistent is set, open is called again
// after Flush and the new handle must see everything the first one saved, while events
// saved and then closed without a Flush must be gone.
func Run(t *testing.T, open func() nostrlikes.Store, persistent bool) {
	ctx := context.Background()
	allEvents := Events(10)

	db := open()
	require.NoError(t, db.Init())

	for _, evt := range allEvents {
		_, err := db.GetEvent(ctx, evt.ID)
		require.ErrorIs(t, err, nostrlikes.ErrNotFound)
		require.NoError(t, db.SaveEvent(ctx, evt))
	}

	require.ErrorIs(t, db.SaveEvent(ctx, allEvents[3]), nostrlikes.ErrDupEvent)

	for _, evt := range allEvents {
		got, err := db.GetEvent(ctx, evt.ID)
		require.NoError(t, err)
		require.Equal(t, evt.String(), got.String())
	}

	_, err := db.GetEvent(ctx, strings.Repeat("f", 64))
	require.ErrorIs(t, err, nostrlikes.ErrNotFound)

	require.NoError(t, db.Flush())
	db.Close()

	if !persistent {
		return
	}

	db = open()
	require.NoError(t, db.Init())

	for _, evt := range allEvents {
		got, err := db.GetEvent(ctx, evt.ID)
		require.NoError(t, err, "event %d lost after reopening", evt.CreatedAt)
		require.Equal(t, evt.String(), got.String())
	}
	require.ErrorIs(t, db.SaveEvent(ctx, allEvents[0]), nostrlikes.ErrDupEvent)

	// saved but never flushed, as when a run fails half way
	unflushed := Events(len(allEvents) + 1)[len(allEvents)]
	require.NoError(t, db.SaveEvent(ctx, unflushed))
	got, err := db.GetEvent(ctx, unflushed.ID)
	require.NoError(t, err)
	require.Equal(t, unflushed.ID, got.ID)
	require.ErrorIs(t, db.SaveEvent(ctx, unflushed), nostrlikes.ErrDupEvent)
	db.Close()

	db = open()
	require.NoError(t, db.Init())
	defer db.Close()

	_, err = db.GetEvent(ctx, unflushed.ID)
	require.ErrorIs(t, err, nostrlikes.ErrNotFound, "event persisted without Flush")
	for _, evt := range allEvents {
		_, err := db.GetEvent(ctx, evt.ID)
		require.NoError(t, err)
	}
}
