package errors

import (
	"errors"
	"fmt"
	"time"
)

// ClaudeSDKError is the base interface for all SDK errors.
type ClaudeSDKError interface {
	error
	IsClaudeSDKError() bool
}

// Compile-time verification that all error types implement ClaudeSDKError.
var (
	_ ClaudeSDKError = (*InvalidStateError)(nil)
	_ ClaudeSDKError = (*ControlRequestError)(nil)
	_ ClaudeSDKError = (*TimeoutError)(nil)
	_ ClaudeSDKError = (*ConnectionError)(nil)
	_ ClaudeSDKError = (*JSONDecodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrInvalidState indicates an operation was attempted outside its required client state.
	ErrInvalidState = errors.New("invalid client state")

	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.New("client not connected")

	// ErrTransportNotConfigured indicates the client was built without a transport.
	ErrTransportNotConfigured = errors.New("no transport configured: use WithTransport")

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.New("transport not connected")

	// ErrRequestTimeout indicates a request timed out.
	ErrRequestTimeout = errors.New("request timeout")

	// ErrControlRequestFailed indicates a control request was not affirmatively acknowledged.
	ErrControlRequestFailed = errors.New("control request failed")
)

// InvalidStateError indicates an operation was attempted while the client was
// not in the state the operation requires (e.g. Send before Connect).
type InvalidStateError struct {
	Operation string
	State     string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: %v (state: %s)", e.Operation, ErrClientNotConnected, e.State)
}

// Unwrap exposes both ErrInvalidState and ErrClientNotConnected to errors.Is.
func (e *InvalidStateError) Unwrap() []error {
	return []error{ErrInvalidState, ErrClientNotConnected}
}

// IsClaudeSDKError implements ClaudeSDKError.
func (e *InvalidStateError) IsClaudeSDKError() bool { return true }

// ControlRequestError indicates a control request was issued but not
// affirmatively acknowledged, or no acknowledgment could be obtained.
type ControlRequestError struct {
	RequestID string
	Reason    string
}

func (e *ControlRequestError) Error() string {
	return fmt.Sprintf("control request %s: %s", e.RequestID, e.Reason)
}

// Unwrap returns ErrControlRequestFailed.
func (e *ControlRequestError) Unwrap() error {
	return ErrControlRequestFailed
}

// IsClaudeSDKError implements ClaudeSDKError.
func (e *ControlRequestError) IsClaudeSDKError() bool { return true }

// TimeoutError indicates an acknowledgment was not received within its bound.
// Timeout carries the bound for diagnostics.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: %v after %s", e.Operation, ErrRequestTimeout, e.Timeout)
}

// Unwrap returns ErrRequestTimeout.
func (e *TimeoutError) Unwrap() error {
	return ErrRequestTimeout
}

// IsClaudeSDKError implements ClaudeSDKError.
func (e *TimeoutError) IsClaudeSDKError() bool { return true }

// ConnectionError indicates failure to open the underlying duplex channel.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect transport: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsClaudeSDKError implements ClaudeSDKError.
func (e *ConnectionError) IsClaudeSDKError() bool { return true }

// JSONDecodeError indicates a line read from the transport was not valid JSON.
// This error preserves the original raw data that failed to parse.
type JSONDecodeError struct {
	RawData string
	Err     error
}

func (e *JSONDecodeError) Error() string {
	return fmt.Sprintf("failed to decode JSON from transport: %v", e.Err)
}

func (e *JSONDecodeError) Unwrap() error {
	return e.Err
}

// IsClaudeSDKError implements ClaudeSDKError.
func (e *JSONDecodeError) IsClaudeSDKError() bool { return true }
