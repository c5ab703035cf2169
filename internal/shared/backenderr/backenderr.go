// Package backenderr wraps failures surfaced by the document store,
// cache or auth provider into a catch-all error carrying a
// user-readable message.
package backenderr

import (
	"errors"
	"fmt"
)

const (
	CodeUnavailable      = "backend/unavailable"
	CodeQueryFailed      = "backend/query-failed"
	CodeWriteFailed      = "backend/write-failed"
	CodeDeadlineExceeded = "backend/deadline-exceeded"
	CodePermissionDenied = "backend/permission-denied"
)

// messages is the static code-to-message table. Unrecognized codes
// fall back to genericMessage.
var messages = map[string]string{
	CodeUnavailable:      "The service is temporarily unavailable. Please try again.",
	CodeQueryFailed:      "We could not load the requested data. Please try again.",
	CodeWriteFailed:      "Your changes could not be saved. Please try again.",
	CodeDeadlineExceeded: "The request took too long. Please try again.",
	CodePermissionDenied: "You do not have access to this resource.",
}

const genericMessage = "Something went wrong. Please try again."

// Error is the catch-all wrapper for backend failures.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags a backend failure with a code and its display message.
func Wrap(code string, err error) *Error {
	return &Error{
		Code:    code,
		Message: MessageFor(code),
		Err:     err,
	}
}

// MessageFor translates a backend code into a user-readable message.
func MessageFor(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return genericMessage
}

// UserMessage extracts the display message from any error chain.
func UserMessage(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return genericMessage
}
