package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubSubscribeBookkeeping(t *testing.T) {
	h := NewHub()
	c := &clientConn{id: "c1"}
	h.attach(c)

	h.Subscribe("lobby", "c1")
	assert.Same(t, c, h.rooms["lobby"]["c1"])

	h.Unsubscribe("lobby", "c1")
	// Last member out drops the delivery set entirely.
	_, ok := h.rooms["lobby"]
	assert.False(t, ok)
}

func TestHubSubscribeUnknownConn(t *testing.T) {
	h := NewHub()

	h.Subscribe("lobby", "ghost")
	_, ok := h.rooms["lobby"]
	assert.False(t, ok)

	// Unsubscribing from a room that never existed is harmless too.
	h.Unsubscribe("lobby", "ghost")
}

func TestHubDetachSweepsRooms(t *testing.T) {
	h := NewHub()
	c1 := &clientConn{id: "c1"}
	c2 := &clientConn{id: "c2"}
	h.attach(c1)
	h.attach(c2)
	h.Subscribe("lobby", "c1")
	h.Subscribe("lobby", "c2")

	h.detach(c1.id)

	_, ok := h.conns["c1"]
	assert.False(t, ok)
	assert.Len(t, h.rooms["lobby"], 1)

	h.detach(c2.id)
	_, ok = h.rooms["lobby"]
	assert.False(t, ok)
}

func TestHubEmitUnknownConnIsNoop(t *testing.T) {
	h := NewHub()
	// Must not panic with no such connection attached.
	h.Emit("ghost", "room set", "lobby")
	h.Broadcast("lobby", "user count", 0)
}

func TestFrame(t *testing.T) {
	f := frame("room set", "lobby")
	assert.Equal(t, map[string]any{"event": "room set", "body": "lobby"}, f)

	// nil payload leaves the body out, e.g. "room full".
	f = frame("room full", nil)
	assert.Equal(t, map[string]any{"event": "room full"}, f)
}
