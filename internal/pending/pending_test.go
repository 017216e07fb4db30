package pending

import (
	"testing"

	"github.com/bouzuya/nostrlikes/internal/storetest"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	events := storetest.Events(3)

	var p Events
	_, ok := p.Get(events[0].ID)
	require.False(t, ok)

	require.True(t, p.Add(events[1]))
	require.True(t, p.Add(events[0]))
	require.False(t, p.Add(events[1]))
	require.Equal(t, 2, p.Len())

	got, ok := p.Get(events[0].ID)
	require.True(t, ok)
	require.Same(t, events[0], got)
	require.Equal(t, events[1:2], p.List()[:1])
	require.Same(t, events[0], p.List()[1])

	p.Reset()
	require.Equal(t, 0, p.Len())
	_, ok = p.Get(events[1].ID)
	require.False(t, ok)
	require.True(t, p.Add(events[1]))
}
