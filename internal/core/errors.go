package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeUsernameTaken = "username_taken"
	ErrCodeBadRequest    = "bad_request"
)

var (
	ErrUsernameTaken = errors.New("username taken")
	ErrBadRequest    = errors.New("bad request")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}
