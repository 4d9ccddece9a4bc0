package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/heyymateen/CodeSync/internal/config"
	"github.com/heyymateen/CodeSync/internal/core"
	"github.com/heyymateen/CodeSync/internal/exec"
	"github.com/heyymateen/CodeSync/internal/log"
	"github.com/heyymateen/CodeSync/internal/proto"
)

type stubRunner struct {
	result *exec.Result
	err    error
}

func (s *stubRunner) Execute(_ context.Context, req exec.Request) (*exec.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &exec.Result{Language: req.Language, Version: req.Version, Run: exec.RunDetail{Output: "ran\n"}}, nil
}

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := core.NewHub(core.NewRegistry(), &stubRunner{}, log.Nop())
	go hub.Run(ctx)

	server := NewServer(hub, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		CORSOrigins:       []string{"*"},
	}, log.Nop())

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		t.Fatalf("send %s: %v", typ, err)
	}
}

func readUntilEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			t.Fatalf("read waiting for %s: %v", event, err)
		}
		if outbound.Event == event {
			return outbound.Data
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketJoinAndCodeChange(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	sendInbound(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{RoomID: "abc12", UserName: "alice"})

	// The joiner's replay ends with the member list.
	var users proto.EventMembers
	if err := json.Unmarshal(readUntilEvent(t, ctx, connA, proto.EventUserJoined), &users); err != nil {
		t.Fatalf("unmarshal member list: %v", err)
	}
	if len(users.Users) != 1 || users.Users[0] != "alice" {
		t.Fatalf("unexpected member list: %+v", users)
	}

	sendInbound(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{RoomID: "abc12", UserName: "bob"})
	readUntilEvent(t, ctx, connB, proto.EventUserJoined)

	sendInbound(t, ctx, connA, proto.InboundTypeCodeChange, proto.CodeChangeData{RoomID: "abc12", Code: "print(42)"})

	var code proto.EventCode
	if err := json.Unmarshal(readUntilEvent(t, ctx, connB, proto.EventCodeUpdate), &code); err != nil {
		t.Fatalf("unmarshal code update: %v", err)
	}
	if code.Code != "print(42)" {
		t.Fatalf("unexpected code update: %+v", code)
	}
}

func TestWebSocketUsernameTaken(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	sendInbound(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{RoomID: "abc12", UserName: "alice"})
	readUntilEvent(t, ctx, connA, proto.EventUserJoined)

	sendInbound(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{RoomID: "abc12", UserName: "alice"})

	var rejected proto.EventUser
	if err := json.Unmarshal(readUntilEvent(t, ctx, connB, proto.EventUsernameTaken), &rejected); err != nil {
		t.Fatalf("unmarshal rejection: %v", err)
	}
	if rejected.UserName != "alice" {
		t.Fatalf("unexpected rejection payload: %+v", rejected)
	}
}

func TestWebSocketDisconnectNotifiesRoom(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	sendInbound(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{RoomID: "abc12", UserName: "alice"})
	readUntilEvent(t, ctx, connA, proto.EventUserJoined)

	sendInbound(t, ctx, connB, proto.InboundTypeJoin, proto.JoinData{RoomID: "abc12", UserName: "bob"})
	readUntilEvent(t, ctx, connB, proto.EventUserJoined)

	connB.Close(websocket.StatusNormalClosure, "bye")

	var left proto.EventUser
	if err := json.Unmarshal(readUntilEvent(t, ctx, connA, proto.EventUserLeft), &left); err != nil {
		t.Fatalf("unmarshal userLeft: %v", err)
	}
	if left.UserName != "bob" {
		t.Fatalf("unexpected leaver: %+v", left)
	}
}

func TestWebSocketCompileCodeBroadcast(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)

	sendInbound(t, ctx, connA, proto.InboundTypeJoin, proto.JoinData{RoomID: "abc12", UserName: "alice"})
	readUntilEvent(t, ctx, connA, proto.EventUserJoined)

	sendInbound(t, ctx, connA, proto.InboundTypeCompileCode, proto.CompileData{
		RoomID:   "abc12",
		Code:     "print(42)",
		Language: "python",
		Version:  "3.10.0",
	})

	var result exec.Result
	if err := json.Unmarshal(readUntilEvent(t, ctx, connA, proto.EventCodeResponse), &result); err != nil {
		t.Fatalf("unmarshal run result: %v", err)
	}
	if result.Run.Output != "ran\n" {
		t.Fatalf("unexpected run output: %+v", result)
	}
}

func TestWebSocketBadRequestKeepsConnectionOpen(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)

	sendInbound(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{RoomID: "", UserName: ""})

	var outbound struct {
		Type  string       `json:"type"`
		Error *proto.Error `json:"error"`
	}
	if err := wsjson.Read(ctx, conn, &outbound); err != nil {
		t.Fatalf("read error response: %v", err)
	}
	if outbound.Type != proto.OutboundTypeError || outbound.Error == nil || outbound.Error.Code != core.ErrCodeBadRequest {
		t.Fatalf("unexpected error response: %+v", outbound)
	}

	// The connection still works after a rejected message.
	sendInbound(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{RoomID: "abc12", UserName: "alice"})
	readUntilEvent(t, ctx, conn, proto.EventUserJoined)
}
