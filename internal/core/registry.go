package core

// Registry is the single owner of all live rooms, keyed by room ID.
// It has no locking of its own: the hub goroutine is the only caller.
type Registry struct {
	rooms map[string]*Room
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room for the given ID, creating a
// default-seeded one on first use. Never fails.
func (reg *Registry) GetOrCreate(roomID string) *Room {
	room, ok := reg.rooms[roomID]
	if !ok {
		room = NewRoom(roomID)
		reg.rooms[roomID] = room
	}
	return room
}

// Get looks up a room without creating it.
func (reg *Registry) Get(roomID string) (*Room, bool) {
	room, ok := reg.rooms[roomID]
	return room, ok
}

// Remove deletes a room. No-op if absent.
func (reg *Registry) Remove(roomID string) {
	delete(reg.rooms, roomID)
}

// Len returns the number of live rooms.
func (reg *Registry) Len() int {
	return len(reg.rooms)
}
