package pawdialog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the ways a request can fail
type ErrorKind int

const (
	ProtocolError   ErrorKind = iota // Unknown method
	ArgumentError                    // Malformed request payload
	ResolutionError                  // Window handle not found
	PlatformError                    // Native dialog could not be shown; folded into Cancelled
)

func (k ErrorKind) String() string {
	switch k {
	case ProtocolError:
		return "protocol"
	case ArgumentError:
		return "argument"
	case ResolutionError:
		return "resolution"
	case PlatformError:
		return "platform"
	default:
		return "unknown"
	}
}

// ErrChannelNotFound is returned when a call targets a channel with no handler
var ErrChannelNotFound = errors.New("channel not found")

// MethodError is an error reply: a (code, message, details) triple
type MethodError struct {
	Kind    ErrorKind   `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrInvalidMethod builds the reply for an unrecognised method name
func ErrInvalidMethod() *MethodError {
	return &MethodError{
		Kind:    ProtocolError,
		Code:    CodeInvalidMethod,
		Message: "Invalid method",
	}
}

// ErrInvalidArgs builds the reply for arguments that failed to decode
func ErrInvalidArgs(err error) *MethodError {
	return &MethodError{
		Kind:    ArgumentError,
		Code:    CodeInvalidArgs,
		Message: err.Error(),
	}
}

// ErrNoWindow builds the reply for a handle the resolver does not know
func ErrNoWindow() *MethodError {
	return &MethodError{
		Kind:    ResolutionError,
		Code:    CodeNoWindow,
		Message: "Platform window not found",
	}
}
