package ws

import "encoding/json"

// Envelope wraps every WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "join room"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// ──────────────────────────── Request DTOs ───────────────────────────────────

// JoinRequest is the body for "join room".
type JoinRequest struct {
	Username string `json:"username"`
	RoomID   string `json:"roomId"`
}

// ChatRequest is the body for "chat message".
type ChatRequest struct {
	Content string `json:"content"`
}
