package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreate(t *testing.T) {
	g := NewRegistry()

	r1 := g.GetOrCreate("lobby")
	r2 := g.GetOrCreate("lobby")
	assert.Same(t, r1, r2)

	other := g.GetOrCreate("den")
	assert.NotSame(t, r1, other)
}

func TestRegistryConcurrentGetOrCreate(t *testing.T) {
	g := NewRegistry()

	var wg sync.WaitGroup
	rooms := make([]*Room, 50)
	for i := range rooms {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rooms[i] = g.GetOrCreate("lobby")
		}(i)
	}
	wg.Wait()

	for _, r := range rooms {
		assert.Same(t, rooms[0], r)
	}
}

func TestRegistryRemoveIfEmpty(t *testing.T) {
	g := NewRegistry()

	r := g.GetOrCreate("lobby")
	_, err := r.TryAdmit("c1", "Alice")
	require.NoError(t, err)

	// Occupied room stays.
	g.RemoveIfEmpty("lobby")
	_, ok := g.Lookup("lobby")
	assert.True(t, ok)

	_, _, removed := r.Remove("c1")
	require.True(t, removed)

	g.RemoveIfEmpty("lobby")
	_, ok = g.Lookup("lobby")
	assert.False(t, ok)

	// Unknown room is a no-op.
	g.RemoveIfEmpty("ghost")
}

func TestRegistryClosedRoomRejectsStaleAdmit(t *testing.T) {
	g := NewRegistry()

	stale := g.GetOrCreate("lobby")
	g.RemoveIfEmpty("lobby")

	// The stale pointer refuses the admit so the caller re-resolves.
	_, err := stale.TryAdmit("c1", "Alice")
	assert.ErrorIs(t, err, errRoomClosed)

	fresh := g.GetOrCreate("lobby")
	assert.NotSame(t, stale, fresh)
	_, err = fresh.TryAdmit("c1", "Alice")
	assert.NoError(t, err)
}

func TestRegistryRoomsSnapshot(t *testing.T) {
	g := NewRegistry()
	a := g.GetOrCreate("a")
	b := g.GetOrCreate("b")

	assert.ElementsMatch(t, []*Room{a, b}, g.Rooms())
}
