// Command ws_smoke drives two websocket connections through a join /
// edit / typing / language-change round trip against a running server
// and prints everything it observes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/heyymateen/CodeSync/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:5000/ws", "WebSocket address")
	room := flag.String("room", "test-room", "room to join")
	timeout := flag.Duration("timeout", 10*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	alice, err := dial(ctx, *addr)
	if err != nil {
		return fmt.Errorf("dial alice: %w", err)
	}
	defer alice.Close(websocket.StatusNormalClosure, "bye")

	bob, err := dial(ctx, *addr)
	if err != nil {
		return fmt.Errorf("dial bob: %w", err)
	}
	defer bob.Close(websocket.StatusNormalClosure, "bye")

	go printEvents(ctx, "alice", alice)
	go printEvents(ctx, "bob", bob)

	steps := []struct {
		conn *websocket.Conn
		typ  string
		data any
	}{
		{alice, proto.InboundTypeJoin, proto.JoinData{RoomID: *room, UserName: "Alice"}},
		{bob, proto.InboundTypeJoin, proto.JoinData{RoomID: *room, UserName: "Bob"}},
		{alice, proto.InboundTypeCodeChange, proto.CodeChangeData{RoomID: *room, Code: `console.log("Hello World!");`}},
		{alice, proto.InboundTypeTyping, proto.TypingData{RoomID: *room, UserName: "Alice"}},
		{alice, proto.InboundTypeLanguageChange, proto.LanguageChangeData{RoomID: *room, Language: "python"}},
	}

	for _, step := range steps {
		if err := send(ctx, step.conn, step.typ, step.data); err != nil {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}

	// Leave time for the last broadcasts to arrive.
	time.Sleep(time.Second)
	return nil
}

func dial(ctx context.Context, addr string) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	return conn, err
}

func send(ctx context.Context, conn *websocket.Conn, typ string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		return fmt.Errorf("send %s: %w", typ, err)
	}
	log.Printf("-> %s", typ)
	return nil
}

func printEvents(ctx context.Context, who string, conn *websocket.Conn) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return
		}
		data, _ := json.Marshal(outbound.Data)
		log.Printf("<- %s: %s %s", who, outbound.Event, data)
	}
}
