package chat

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"chatrelay/internal/identity"

	"go.uber.org/zap"
)

// Outbound event names. The coordinator decides targets and payloads; the
// transport only delivers.
const (
	EventRoomError     = "room error"
	EventUsernameError = "username error"
	EventRoomFull      = "room full"
	EventUsernameSet   = "username set"
	EventRoomSet       = "room set"
	EventUserCount     = "user count"
	EventUserJoined    = "user joined"
	EventUserLeft      = "user left"
	EventChatMessage   = "chat message"
)

// ChatMessage is the broadcast payload for one relayed message.
type ChatMessage struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	SenderID string `json:"senderId"`
	Username string `json:"username"`
}

// Emitter is the delivery side of the transport. Subscribe/Unsubscribe
// mirror room membership into the transport's broadcast sets; Emit and
// Broadcast hand payloads over for actual delivery. None of these may be
// called with coordinator locks held.
type Emitter interface {
	Emit(connID, event string, payload any)
	Broadcast(roomID, event string, payload any)
	Subscribe(roomID, connID string)
	Unsubscribe(roomID, connID string)
}

// ICoordinator is the session state machine the transport feeds. Each
// connection is either unjoined or a member of exactly one room; the only
// way back to unjoined is Disconnect.
type ICoordinator interface {
	Join(connID, rawUsername, rawRoomID string)
	SendMessage(connID, rawContent string)
	Disconnect(connID string)
}

type coordinator struct {
	registry *Registry
	emitter  Emitter

	mu       sync.Mutex
	sessions map[string]string // connection ID -> room ID, joined connections only
}

var _ ICoordinator = (*coordinator)(nil)

func NewCoordinator(registry *Registry, emitter Emitter) ICoordinator {
	return &coordinator{
		registry: registry,
		emitter:  emitter,
		sessions: make(map[string]string),
	}
}

// Join admits the connection into the named room. Validation failures and
// admission rejections are reported to the originator only and leave every
// structure untouched.
func (c *coordinator) Join(connID, rawUsername, rawRoomID string) {
	roomID, err := identity.SanitizeRoomID(rawRoomID)
	if err != nil {
		c.emitter.Emit(connID, EventRoomError, "Invalid room ID")
		return
	}
	name, err := identity.SanitizeDisplayName(rawUsername)
	if err != nil {
		c.emitter.Emit(connID, EventUsernameError, "Invalid username")
		return
	}

	c.mu.Lock()
	if _, joined := c.sessions[connID]; joined {
		c.mu.Unlock()
		c.emitter.Emit(connID, EventRoomError, "Already in a room")
		return
	}

	var count int
	for {
		room := c.registry.GetOrCreate(roomID)
		count, err = room.TryAdmit(connID, name)
		if errors.Is(err, errRoomClosed) {
			continue // registry dropped the room under us, resolve again
		}
		break
	}
	if err != nil {
		c.mu.Unlock()
		switch {
		case errors.Is(err, ErrRoomFull):
			c.emitter.Emit(connID, EventRoomFull, nil)
		case errors.Is(err, ErrNameTaken):
			c.emitter.Emit(connID, EventUsernameError, "Username is taken in this room")
		}
		return
	}
	c.sessions[connID] = roomID
	c.mu.Unlock()

	zap.L().Debug("user joined room",
		zap.String("conn", connID), zap.String("room", roomID), zap.String("username", name))

	c.emitter.Subscribe(roomID, connID)
	c.emitter.Emit(connID, EventUsernameSet, name)
	c.emitter.Emit(connID, EventRoomSet, roomID)
	c.emitter.Broadcast(roomID, EventUserCount, count)
	c.emitter.Broadcast(roomID, EventUserJoined, name)
}

// SendMessage relays a chat line to the sender's room, sender included.
// Anything out of order here (unjoined connection, vanished room, blank
// content) is dropped without a reply; only well-formed messages produce
// traffic.
func (c *coordinator) SendMessage(connID, rawContent string) {
	content := strings.TrimSpace(rawContent)
	if content == "" {
		return
	}

	c.mu.Lock()
	roomID, joined := c.sessions[connID]
	c.mu.Unlock()
	if !joined {
		return
	}
	room, ok := c.registry.Lookup(roomID)
	if !ok {
		return
	}
	name, ok := room.MemberName(connID)
	if !ok {
		return
	}

	c.emitter.Broadcast(roomID, EventChatMessage, ChatMessage{
		ID:       fmt.Sprintf("%s-%d", connID, time.Now().UnixMilli()),
		Content:  content,
		SenderID: connID,
		Username: name,
	})
}

// Disconnect takes the connection out of its room, tells the remaining
// members, and drops the room once it empties. Disconnecting a connection
// that never joined is a no-op.
func (c *coordinator) Disconnect(connID string) {
	c.mu.Lock()
	roomID, joined := c.sessions[connID]
	if !joined {
		c.mu.Unlock()
		return
	}
	delete(c.sessions, connID)

	var (
		name    string
		count   int
		removed bool
	)
	if room, ok := c.registry.Lookup(roomID); ok {
		name, count, removed = room.Remove(connID)
	}
	c.mu.Unlock()

	if !removed {
		return
	}

	zap.L().Debug("user left room",
		zap.String("conn", connID), zap.String("room", roomID), zap.String("username", name))

	c.emitter.Unsubscribe(roomID, connID)
	c.emitter.Broadcast(roomID, EventUserCount, count)
	c.emitter.Broadcast(roomID, EventUserLeft, name)
	c.registry.RemoveIfEmpty(roomID)
}
