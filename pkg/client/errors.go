package client

import "strings"

const (
	MsgServerError = "An error occurred"
	MsgNetwork     = "Network error. Please check your connection."
	MsgUnexpected  = "An unexpected error occurred"
)

// Error is returned by every Client method. StatusCode is 0 when no response
// was received.
type Error struct {
	StatusCode  int
	Message     string
	FieldErrors []FieldError
	Err         error
}

func (e *Error) Error() string {
	if len(e.FieldErrors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *Error) Unwrap() error {
	return e.Err
}
