package core

import "sort"

// Defaults seeded into a freshly created room.
const (
	DefaultCode     = "// Write your code here..."
	DefaultLanguage = "javascript"
)

// Room is a named collaborative session: a member set plus the shared
// code buffer, input text, selected language, and last run output.
// Rooms are owned by the Registry and mutated only from the hub goroutine.
type Room struct {
	ID         string
	Code       string
	Input      string
	Language   string
	LastOutput string

	members map[string]*Client
}

// NewRoom constructs a room seeded with default state and no members.
func NewRoom(id string) *Room {
	return &Room{
		ID:       id,
		Code:     DefaultCode,
		Input:    "",
		Language: DefaultLanguage,
		members:  make(map[string]*Client),
	}
}

// Member returns the client holding the given name, if any.
func (r *Room) Member(name string) (*Client, bool) {
	c, ok := r.members[name]
	return c, ok
}

// AddMember binds a name to a client. Re-inserting the same name is
// an overwrite, never a duplicate.
func (r *Room) AddMember(name string, c *Client) {
	r.members[name] = c
}

// RemoveMember deletes a name from the member set. No-op if absent.
func (r *Room) RemoveMember(name string) {
	delete(r.members, name)
}

// Empty returns true if no members are in the room.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}

// Members returns the member names in sorted order.
func (r *Room) Members() []string {
	names := make([]string, 0, len(r.members))
	for name := range r.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Broadcast sends an event to every member of the room.
func (r *Room) Broadcast(event *Event) {
	for _, client := range r.members {
		client.send(event)
	}
}

// BroadcastExcept sends an event to every member except the sender.
func (r *Room) BroadcastExcept(sender *Client, event *Event) {
	for _, client := range r.members {
		if client == sender {
			continue
		}
		client.send(event)
	}
}
