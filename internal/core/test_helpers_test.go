package core

import (
	"context"
	"testing"
	"time"

	"github.com/heyymateen/CodeSync/internal/exec"
	"github.com/heyymateen/CodeSync/internal/log"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func noEvent(t *testing.T, ch <-chan *Event, kind EventKind, wait time.Duration) {
	t.Helper()

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// fakeRunner stands in for the Piston client in hub tests.
type fakeRunner struct {
	result *exec.Result
	err    error
	block  chan struct{} // when non-nil, Execute waits on it first
}

func (f *fakeRunner) Execute(_ context.Context, req exec.Request) (*exec.Result, error) {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &exec.Result{
		Language: req.Language,
		Version:  req.Version,
		Run:      exec.RunDetail{Stdout: "ok\n", Output: "ok\n"},
	}, nil
}

func startHub(t *testing.T, runner exec.Runner) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(NewRegistry(), runner, log.Nop())
	go hub.Run(ctx)
	return hub
}

func join(c *Client, room, user string) {
	c.Commands <- &Command{Kind: CommandJoin, Room: room, User: user}
}
