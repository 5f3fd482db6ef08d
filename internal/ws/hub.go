package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub keeps every attached connection and mirrors room membership into
// per-room delivery sets. It is the chat.Emitter implementation: the
// coordinator decides who gets what, the Hub does the writes.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*clientConn            // connection ID -> conn
	rooms map[string]map[string]*clientConn // room ID -> connection ID -> conn
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*clientConn),
		rooms: make(map[string]map[string]*clientConn),
	}
}

func (h *Hub) attach(c *clientConn) {
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
}

// detach forgets the connection entirely. The coordinator has already
// pulled it out of its room by the time this runs.
func (h *Hub) detach(connID string) {
	h.mu.Lock()
	delete(h.conns, connID)
	for roomID, set := range h.rooms {
		if _, ok := set[connID]; ok {
			delete(set, connID)
			if len(set) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	h.mu.Unlock()
}

// Subscribe adds the connection to the room's delivery set.
func (h *Hub) Subscribe(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.conns[connID]
	if !ok {
		return
	}
	set := h.rooms[roomID]
	if set == nil {
		set = make(map[string]*clientConn)
		h.rooms[roomID] = set
	}
	set[connID] = c
}

// Unsubscribe removes the connection from the room's delivery set.
func (h *Hub) Unsubscribe(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(h.rooms, roomID)
	}
}

// Emit delivers one event to one connection.
func (h *Hub) Emit(connID, event string, payload any) {
	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()
	if c == nil {
		return
	}
	if err := c.writeJSON(frame(event, payload)); err != nil {
		zap.L().Debug("ws.emit", zap.String("event", event), zap.Error(err))
	}
}

// Broadcast delivers one event to every connection in the room.
func (h *Hub) Broadcast(roomID, event string, payload any) {
	// Take a quick snapshot of the current connections.
	h.mu.RLock()
	conns := make([]*clientConn, 0, len(h.rooms[roomID]))
	for _, c := range h.rooms[roomID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	// Do the I/O outside the lock.
	msg := frame(event, payload)
	for _, c := range conns {
		if err := c.writeJSON(msg); err != nil {
			// Dead socket; closing it kicks the reader loop into the
			// normal disconnect path.
			_ = c.rawConn.Close()
		}
	}
}

func frame(event string, payload any) map[string]any {
	f := map[string]any{"event": event}
	if payload != nil {
		f["body"] = payload
	}
	return f
}
