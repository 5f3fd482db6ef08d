package chat

import (
	"errors"
	"sync"
)

// MaxUsersPerRoom caps how many connections a single room admits.
const MaxUsersPerRoom = 40

var (
	ErrRoomFull  = errors.New("room full")
	ErrNameTaken = errors.New("username is taken in this room")

	// errRoomClosed means the registry dropped this room between the
	// caller resolving it and the admit; the caller must re-resolve.
	errRoomClosed = errors.New("room closed")
)

// Room tracks the members of one named broadcast scope. members and names
// always describe the same set of users and are only mutated together
// under mu.
type Room struct {
	id string

	mu      sync.Mutex
	closed  bool
	members map[string]string   // connection ID -> display name
	names   map[string]struct{} // display names in use
}

func newRoom(id string) *Room {
	return &Room{
		id:      id,
		members: make(map[string]string),
		names:   make(map[string]struct{}),
	}
}

func (r *Room) ID() string { return r.id }

// TryAdmit inserts the connection if the room has capacity and the name is
// free. It returns the member count right after the insert so that callers
// broadcast a count consistent with the mutation they caused.
func (r *Room) TryAdmit(connID, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, errRoomClosed
	}
	if len(r.members) >= MaxUsersPerRoom {
		return len(r.members), ErrRoomFull
	}
	if _, taken := r.names[name]; taken {
		return len(r.members), ErrNameTaken
	}
	r.members[connID] = name
	r.names[name] = struct{}{}
	return len(r.members), nil
}

// Remove deletes the connection from both structures and reports the name
// it held plus the post-removal member count.
func (r *Room) Remove(connID string) (string, int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.members[connID]
	if !ok {
		return "", len(r.members), false
	}
	delete(r.members, connID)
	delete(r.names, name)
	return name, len(r.members), true
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// MemberName reports the display name registered for a connection.
func (r *Room) MemberName(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.members[connID]
	return name, ok
}

// Members snapshots the current display names. Order is not significant.
func (r *Room) Members() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.members))
	for _, name := range r.members {
		out = append(out, name)
	}
	return out
}

// close marks the room dead iff it is empty. Only the registry calls this,
// holding the registry lock, right before deleting the map entry.
func (r *Room) close() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.members) > 0 {
		return false
	}
	r.closed = true
	return true
}
