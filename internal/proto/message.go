package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin           = "join"
	InboundTypeLeaveRoom      = "leaveRoom"
	InboundTypeCodeChange     = "codeChange"
	InboundTypeInputChange    = "inputChange"
	InboundTypeLanguageChange = "languageChange"
	InboundTypeTyping         = "typing"
	InboundTypeCompileCode    = "compileCode"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// Outbound event names.
const (
	EventCodeUpdate     = "codeUpdate"
	EventInputUpdate    = "inputUpdate"
	EventLanguageUpdate = "languageUpdate"
	EventUserJoined     = "userJoined"
	EventUserJoinedNote = "userJoinedNotification"
	EventUserLeft       = "userLeft"
	EventUserTyping     = "userTyping"
	EventUsernameTaken  = "usernameTaken"
	EventCodeResponse   = "codeResponse"
)

// JoinData requests to join a room under a user name.
type JoinData struct {
	RoomID   string `json:"roomId"`
	UserName string `json:"userName"`
}

// CodeChangeData replaces the room's shared code buffer.
type CodeChangeData struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

// InputChangeData replaces the room's stdin text.
type InputChangeData struct {
	RoomID string `json:"roomId"`
	Input  string `json:"input"`
}

// LanguageChangeData switches the room's selected language.
type LanguageChangeData struct {
	RoomID   string `json:"roomId"`
	Language string `json:"language"`
}

// TypingData signals that a user is typing.
type TypingData struct {
	RoomID   string `json:"roomId"`
	UserName string `json:"userName"`
}

// CompileData asks the server to run the room's code.
type CompileData struct {
	RoomID   string `json:"roomId"`
	Code     string `json:"code"`
	Language string `json:"language"`
	Version  string `json:"version"`
	Input    string `json:"input"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventCode carries the room's code buffer.
type EventCode struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

// EventInput carries the room's input text.
type EventInput struct {
	RoomID string `json:"roomId"`
	Input  string `json:"input"`
}

// EventLanguage carries the room's selected language.
type EventLanguage struct {
	RoomID   string `json:"roomId"`
	Language string `json:"language"`
}

// EventMembers carries the room's full member list.
type EventMembers struct {
	RoomID string   `json:"roomId"`
	Users  []string `json:"users"`
}

// EventUser names a user for join/leave/typing notices.
type EventUser struct {
	RoomID   string `json:"roomId,omitempty"`
	UserName string `json:"userName"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
