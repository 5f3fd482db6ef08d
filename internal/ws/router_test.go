package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()

	var got JoinRequest
	Register(r, "join room", func(ctx context.Context, c *ConnContext, req JoinRequest) error {
		got = req
		return nil
	})

	env := Envelope{
		Event: "join room",
		Body:  json.RawMessage(`{"username":"Alice","roomId":"lobby"}`),
	}
	err := r.dispatch(context.Background(), &ConnContext{ConnID: "c1"}, env)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Username)
	assert.Equal(t, "lobby", got.RoomID)
}

func TestRouterDispatchEmptyBody(t *testing.T) {
	r := NewRouter()

	called := false
	Register(r, "chat message", func(ctx context.Context, c *ConnContext, req ChatRequest) error {
		called = true
		assert.Empty(t, req.Content)
		return nil
	})

	err := r.dispatch(context.Background(), &ConnContext{ConnID: "c1"}, Envelope{Event: "chat message"})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRouterDispatchUnknownEvent(t *testing.T) {
	r := NewRouter()

	err := r.dispatch(context.Background(), &ConnContext{ConnID: "c1"}, Envelope{Event: "nope"})
	assert.ErrorIs(t, err, errUnknownEvent)
}

func TestRouterDispatchBadBody(t *testing.T) {
	r := NewRouter()

	Register(r, "join room", func(ctx context.Context, c *ConnContext, req JoinRequest) error {
		t.Fatal("handler must not run on undecodable body")
		return nil
	})

	env := Envelope{Event: "join room", Body: json.RawMessage(`{"username":42}`)}
	assert.Error(t, r.dispatch(context.Background(), &ConnContext{ConnID: "c1"}, env))
}

func TestRegisterEmptyEventPanics(t *testing.T) {
	r := NewRouter()
	assert.Panics(t, func() {
		Register(r, "", func(ctx context.Context, c *ConnContext, req ChatRequest) error { return nil })
	})
}
