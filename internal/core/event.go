package core

import "github.com/heyymateen/CodeSync/internal/exec"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventCodeUpdate carries the room's new code buffer.
	EventCodeUpdate EventKind = iota
	// EventInputUpdate carries the room's new input text.
	EventInputUpdate
	// EventLanguageUpdate carries the room's new language.
	EventLanguageUpdate
	// EventMembers carries the room's full member list.
	EventMembers
	// EventUserJoinedNotice announces a user joining, for UI display.
	EventUserJoinedNotice
	// EventUserLeft announces a user leaving.
	EventUserLeft
	// EventUserTyping signals that a user is typing.
	EventUserTyping
	// EventUsernameTaken rejects a join whose name is already held.
	EventUsernameTaken
	// EventCodeResponse delivers the result of a code run.
	EventCodeResponse
	// EventError notifies a client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	User     string
	Code     string
	Input    string
	Language string
	Members  []string
	Result   *exec.Result
	Error    *CoreError
}
