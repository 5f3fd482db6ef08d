package chat

import "sync"

// Registry owns every live Room for the process. Rooms are created on the
// first join and dropped as soon as they empty; an empty room never rests
// in the map. Lock order everywhere is registry, then room.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the live room for id, creating it if absent.
// Concurrent first joiners to the same id observe a single Room instance.
func (g *Registry) GetOrCreate(id string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[id]
	if !ok {
		r = newRoom(id)
		g.rooms[id] = r
	}
	return r
}

func (g *Registry) Lookup(id string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[id]
	return r, ok
}

// RemoveIfEmpty drops the room iff it currently has no members. The
// emptiness check and the delete happen under both locks, so a join racing
// this call either lands before the check or finds the room closed and
// re-resolves through GetOrCreate.
func (g *Registry) RemoveIfEmpty(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[id]
	if !ok {
		return
	}
	if r.close() {
		delete(g.rooms, id)
	}
}

// Rooms snapshots the live rooms, for introspection endpoints.
func (g *Registry) Rooms() []*Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		out = append(out, r)
	}
	return out
}
