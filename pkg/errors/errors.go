// Package errors defines the coded error taxonomy shared by services,
// stores and transport. Codes, not types, drive propagation decisions:
// handlers map a code to an HTTP status, the workflow engine decides from a
// code whether a failure marks the step failed or rejects the request outright.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for propagation and transport mapping.
type Code string

const (
	// CodeNotFound marks lookups of unknown client/classification/workflow ids.
	CodeNotFound Code = "not_found"
	// CodeValidation marks missing or malformed caller input.
	CodeValidation Code = "validation"
	// CodeDependency marks a collaborator call that failed or timed out.
	CodeDependency Code = "dependency"
	// CodePrecondition marks a step invoked before its data dependency holds.
	CodePrecondition Code = "precondition"
	// CodeTerminalState marks attempts to advance an already-terminal workflow.
	CodeTerminalState Code = "terminal_state"
	// CodeTimeout marks a deadline expiry inside a step execution.
	CodeTimeout Code = "timeout"
	// CodeInternal marks everything we cannot attribute to the caller.
	CodeInternal Code = "internal"
)

// Error carries a code, a human-readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// MessageOf extracts the message from err without any wrapped cause detail,
// falling back to err.Error for uncoded errors.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Message
	}
	return err.Error()
}

// ToHTTPStatus maps a code to the status a transport handler should emit.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeDependency:
		return http.StatusBadGateway
	case CodePrecondition, CodeTerminalState:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
