package claudesdk

import "github.com/wagiedev/claude-session-sdk-go/internal/errors"

// Re-export error types from internal package

// InvalidStateError indicates an operation was attempted while not connected.
type InvalidStateError = errors.InvalidStateError

// ControlRequestError indicates a control request was refused or went unanswered.
type ControlRequestError = errors.ControlRequestError

// TimeoutError indicates an acknowledgment did not arrive in time.
type TimeoutError = errors.TimeoutError

// ConnectionError indicates failure to open the underlying stream.
type ConnectionError = errors.ConnectionError

// JSONDecodeError indicates a line read from the transport was not valid JSON.
type JSONDecodeError = errors.JSONDecodeError

// ClaudeSDKError is the base interface for all SDK errors.
type ClaudeSDKError = errors.ClaudeSDKError

// Re-export sentinel errors from internal package.
var (
	// ErrInvalidState indicates the client is in the wrong state for an operation.
	ErrInvalidState = errors.ErrInvalidState

	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.ErrClientNotConnected

	// ErrTransportNotConfigured indicates Connect was called without a transport.
	ErrTransportNotConfigured = errors.ErrTransportNotConfigured

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.ErrTransportNotConnected

	// ErrRequestTimeout indicates a request timed out.
	ErrRequestTimeout = errors.ErrRequestTimeout

	// ErrControlRequestFailed indicates a control request was not acknowledged.
	ErrControlRequestFailed = errors.ErrControlRequestFailed
)
