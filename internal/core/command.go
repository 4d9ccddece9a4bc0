package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin places the client in a room under a user name.
	CommandJoin CommandKind = iota
	// CommandLeaveRoom removes the client from its current room.
	CommandLeaveRoom
	// CommandCodeChange replaces the room's shared code buffer.
	CommandCodeChange
	// CommandInputChange replaces the room's stdin text.
	CommandInputChange
	// CommandLanguageChange switches the room's selected language.
	CommandLanguageChange
	// CommandTyping signals that a user is typing. No state change.
	CommandTyping
	// CommandRunCode forwards code to the execution service.
	CommandRunCode
)

// String names the command kind for logs and metrics labels.
func (k CommandKind) String() string {
	switch k {
	case CommandJoin:
		return "join"
	case CommandLeaveRoom:
		return "leaveRoom"
	case CommandCodeChange:
		return "codeChange"
	case CommandInputChange:
		return "inputChange"
	case CommandLanguageChange:
		return "languageChange"
	case CommandTyping:
		return "typing"
	case CommandRunCode:
		return "compileCode"
	default:
		return "unknown"
	}
}

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Room     string
	User     string
	Code     string
	Input    string
	Language string
	Version  string
}
