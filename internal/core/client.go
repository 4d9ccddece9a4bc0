package core

// Client is one connected participant as seen by the core layer.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// membership is nil while the client occupies no room. Both the room
	// and the user name live in one value so they are always set or
	// cleared together. Only the hub goroutine touches it.
	membership *Membership

	// gone is set once the client is unregistered; late commands from
	// it are discarded. Hub goroutine only.
	gone bool
}

// Membership binds a client to a room under a user name.
type Membership struct {
	Room string
	User string
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 32),
		Events:   make(chan *Event, 64),
	}
}

// Membership returns the client's current room binding, or nil when unjoined.
func (c *Client) Membership() *Membership {
	return c.membership
}

func (c *Client) send(event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
