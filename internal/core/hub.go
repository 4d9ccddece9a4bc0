package core

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/heyymateen/CodeSync/internal/exec"
	"github.com/heyymateen/CodeSync/internal/metrics"
)

// Hub routes client commands to room state and fans events back out.
// All registry and room mutation happens on the single Run goroutine,
// so rooms need no locking; only the execution call leaves the loop.
type Hub struct {
	registry *Registry
	runner   exec.Runner
	log      *zerolog.Logger

	register    chan *Client
	unregister  chan *Client
	submissions chan submission
	results     chan *runResult
}

type submission struct {
	client *Client
	cmd    *Command
}

type runResult struct {
	room   string
	result *exec.Result
	failed bool
}

// NewHub builds a hub around an injected registry and execution runner.
func NewHub(registry *Registry, runner exec.Runner, logger *zerolog.Logger) *Hub {
	return &Hub{
		registry:    registry,
		runner:      runner,
		log:         logger,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		submissions: make(chan submission),
		results:     make(chan *runResult),
	}
}

// RegisterClient announces a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a connection. The caller must guarantee no
// further writes to the client's Commands channel.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes events one at a time until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			metrics.ConnectionsActive.Inc()
			h.log.Debug().Str("client_id", c.ID).Msg("client registered")
			go h.pump(ctx, c)

		case c := <-h.unregister:
			h.leaveCurrentRoom(c, true)
			c.gone = true
			close(c.Commands)
			metrics.ConnectionsActive.Dec()
			h.log.Debug().Str("client_id", c.ID).Msg("client unregistered")

		case s := <-h.submissions:
			if s.client.gone {
				continue
			}
			h.dispatch(ctx, s.client, s.cmd)

		case res := <-h.results:
			h.deliverResult(res)

		case <-ctx.Done():
			return
		}
	}
}

// pump forwards one client's commands into the shared submissions
// channel, preserving per-client order.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.submissions <- submission{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, c *Client, cmd *Command) {
	metrics.CommandsTotal.WithLabelValues(cmd.Kind.String()).Inc()

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(c, cmd)
	case CommandLeaveRoom:
		h.leaveCurrentRoom(c, true)
	case CommandCodeChange:
		h.handleCodeChange(c, cmd)
	case CommandInputChange:
		h.handleInputChange(c, cmd)
	case CommandLanguageChange:
		h.handleLanguageChange(cmd)
	case CommandTyping:
		h.handleTyping(c, cmd)
	case CommandRunCode:
		h.handleRunCode(ctx, cmd)
	default:
		h.log.Warn().Int("kind", int(cmd.Kind)).Msg("unknown command kind")
	}
}

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	room := h.registry.GetOrCreate(cmd.Room)

	if existing, ok := room.Member(cmd.User); ok && existing != c {
		c.send(&Event{Kind: EventUsernameTaken, Room: cmd.Room, User: cmd.User})
		h.log.Info().Str("room", cmd.Room).Str("user", cmd.User).Msg("join rejected, username taken")
		return
	}

	if m := c.membership; m != nil {
		switch {
		case m.Room == cmd.Room && m.User == cmd.User:
			// Reconnect-style rejoin under the identical key; nothing to move.
		case m.Room == cmd.Room:
			// New name in the same room. The room cannot empty here,
			// the client is re-added just below.
			room.RemoveMember(m.User)
		default:
			h.leaveCurrentRoom(c, false)
		}
	}

	room.AddMember(cmd.User, c)
	c.membership = &Membership{Room: cmd.Room, User: cmd.User}

	// Replay authoritative state so a late joiner never sees defaults
	// for a pre-existing room.
	c.send(&Event{Kind: EventCodeUpdate, Room: room.ID, Code: room.Code})
	c.send(&Event{Kind: EventInputUpdate, Room: room.ID, Input: room.Input})
	c.send(&Event{Kind: EventLanguageUpdate, Room: room.ID, Language: room.Language})

	members := room.Members()
	c.send(&Event{Kind: EventMembers, Room: room.ID, Members: members})
	room.BroadcastExcept(c, &Event{Kind: EventMembers, Room: room.ID, Members: members})
	room.BroadcastExcept(c, &Event{Kind: EventUserJoinedNotice, Room: room.ID, User: cmd.User})

	metrics.RoomsActive.Set(float64(h.registry.Len()))
	h.log.Info().Str("room", room.ID).Str("user", cmd.User).Msg("user joined room")
}

// leaveCurrentRoom is the single exit path, shared by an explicit
// leaveRoom command, a room switch, and a transport disconnect.
func (h *Hub) leaveCurrentRoom(c *Client, notify bool) {
	m := c.membership
	if m == nil {
		return
	}
	c.membership = nil

	room, ok := h.registry.Get(m.Room)
	if !ok {
		return
	}
	room.RemoveMember(m.User)

	if room.Empty() {
		h.registry.Remove(room.ID)
		h.log.Info().Str("room", room.ID).Msg("room closed, last member left")
	} else {
		if notify {
			room.Broadcast(&Event{Kind: EventUserLeft, Room: room.ID, User: m.User})
		}
		room.Broadcast(&Event{Kind: EventMembers, Room: room.ID, Members: room.Members()})
		h.log.Info().Str("room", room.ID).Str("user", m.User).Msg("user left room")
	}

	metrics.RoomsActive.Set(float64(h.registry.Len()))
}

func (h *Hub) handleCodeChange(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.Room)
	if !ok {
		return
	}
	room.Code = cmd.Code
	room.BroadcastExcept(c, &Event{Kind: EventCodeUpdate, Room: room.ID, Code: cmd.Code})
}

func (h *Hub) handleInputChange(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.Room)
	if !ok {
		return
	}
	room.Input = cmd.Input
	room.BroadcastExcept(c, &Event{Kind: EventInputUpdate, Room: room.ID, Input: cmd.Input})
}

// handleLanguageChange relays to the whole room including the sender,
// so the sender's UI reflects the server-confirmed value.
func (h *Hub) handleLanguageChange(cmd *Command) {
	room, ok := h.registry.Get(cmd.Room)
	if !ok {
		return
	}
	room.Language = cmd.Language
	room.Broadcast(&Event{Kind: EventLanguageUpdate, Room: room.ID, Language: cmd.Language})
}

func (h *Hub) handleTyping(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.Room)
	if !ok {
		return
	}
	room.BroadcastExcept(c, &Event{Kind: EventUserTyping, Room: room.ID, User: cmd.User})
}

// handleRunCode calls the execution service off the hub goroutine.
// The result re-enters the loop through the results channel, so a room
// deleted while the call is in flight makes the delivery a no-op.
func (h *Hub) handleRunCode(ctx context.Context, cmd *Command) {
	if _, ok := h.registry.Get(cmd.Room); !ok {
		return
	}

	go func() {
		result, err := h.runner.Execute(ctx, exec.Request{
			Language: cmd.Language,
			Version:  cmd.Version,
			Code:     cmd.Code,
			Stdin:    cmd.Input,
		})
		failed := err != nil
		if failed {
			h.log.Error().Err(err).Str("room", cmd.Room).Msg("code execution failed")
			metrics.ExecRequestsTotal.WithLabelValues("error").Inc()
			result = exec.FailureResult(cmd.Language, cmd.Version)
		} else {
			metrics.ExecRequestsTotal.WithLabelValues("ok").Inc()
		}

		select {
		case h.results <- &runResult{room: cmd.Room, result: result, failed: failed}:
		case <-ctx.Done():
		}
	}()
}

func (h *Hub) deliverResult(res *runResult) {
	room, ok := h.registry.Get(res.room)
	if !ok {
		return
	}
	if !res.failed {
		room.LastOutput = res.result.Run.Output
	}
	room.Broadcast(&Event{Kind: EventCodeResponse, Room: room.ID, Result: res.result})
}
