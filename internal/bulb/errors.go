package bulb

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of control-channel failure
type ErrorType int

const (
	// ErrTypePrecondition indicates a missing or unparsable device
	// address; reported before any socket operation is attempted
	ErrTypePrecondition ErrorType = iota
	// ErrTypeConnect indicates the TCP connection could not be
	// established, or was lost while awaiting the reply
	ErrTypeConnect
	// ErrTypeDecode indicates the reply payload was not valid JSON
	ErrTypeDecode
	// ErrTypeTimeout indicates the deadline fired before a reply arrived
	ErrTypeTimeout
	// ErrTypeDevice indicates the bulb answered with a protocol-level
	// error object instead of a result
	ErrTypeDevice
	// ErrTypeUnknown indicates an unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypePrecondition:
		return "Precondition Error"
	case ErrTypeConnect:
		return "Connect Error"
	case ErrTypeDecode:
		return "Decode Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeDevice:
		return "Device Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// CommandError represents a failed command invocation. Every failure is
// scoped to one invocation and reported to the caller; nothing here is
// fatal to the process and no retry is attempted.
type CommandError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Addr    string    // Device address (for context)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewPreconditionError creates an error for an unusable device address
func NewPreconditionError(addr string, message string) *CommandError {
	return &CommandError{
		Type:    ErrTypePrecondition,
		Message: message,
		Addr:    addr,
	}
}

func newConnectError(addr string, message string, err error) *CommandError {
	return &CommandError{
		Type:    ErrTypeConnect,
		Message: message,
		Addr:    addr,
		Err:     err,
	}
}

func newDecodeError(addr string, err error) *CommandError {
	return &CommandError{
		Type:    ErrTypeDecode,
		Message: "reply was not valid JSON",
		Addr:    addr,
		Err:     err,
	}
}

func newTimeoutError(addr string, deadline time.Duration) *CommandError {
	return &CommandError{
		Type:    ErrTypeTimeout,
		Message: fmt.Sprintf("no reply within %s", deadline),
		Addr:    addr,
	}
}

func newDeviceError(addr string, err error) *CommandError {
	return &CommandError{
		Type:    ErrTypeDevice,
		Message: "device rejected command",
		Addr:    addr,
		Err:     err,
	}
}

// TypeOf returns the CommandError category of err, or ErrTypeUnknown if
// err is not a CommandError
func TypeOf(err error) ErrorType {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Type
	}
	return ErrTypeUnknown
}

// IsTimeout reports whether err is a control-channel timeout
func IsTimeout(err error) bool {
	return TypeOf(err) == ErrTypeTimeout
}
