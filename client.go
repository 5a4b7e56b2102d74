package claudesdk

import (
	"context"
	"iter"
)

// Client provides an interactive, stateful interface to a long-lived
// conversational process.
//
// A client owns one transport. It tracks the conversation sessions it has sent
// to, relays inbound messages to whichever consumer is currently receiving (and
// buffers them while nobody is), and can interrupt the current turn through an
// out-of-band control request.
//
// Clients can be reconnected after Disconnect or after a fatal stream error.
//
// Example usage:
//
//	client := claudesdk.NewClient(
//	    claudesdk.WithTransport(transport),
//	    claudesdk.WithLogger(slog.Default()),
//	)
//	defer client.Disconnect(ctx)
//
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := client.Send(ctx, "What is 2+2?"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Receive all messages for this turn (stops at the result message)
//	for msg, err := range client.ReceiveResponse(ctx) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // Process message...
//	}
type Client interface {
	// Connect opens the transport and starts relaying inbound messages.
	// Calling Connect while connected is a no-op.
	// Returns ErrTransportNotConfigured if no transport was supplied.
	Connect(ctx context.Context) error

	// ConnectWithPrompt connects and immediately sends an initial prompt to the
	// default session. Equivalent to Connect followed by Send.
	ConnectWithPrompt(ctx context.Context, prompt string) error

	// Send sends a user prompt.
	// Returns immediately after sending; use ReceiveMessages or ReceiveResponse to get responses.
	// Optional sessionID defaults to the configured default session.
	// Returns an InvalidStateError when not connected.
	Send(ctx context.Context, prompt string, sessionID ...string) error

	// SendToolResult answers a tool use with its result.
	// Optional sessionID defaults to the configured default session.
	SendToolResult(ctx context.Context, toolUseID, content string, isError bool, sessionID ...string) error

	// ReceiveMessages returns an iterator that yields inbound messages.
	//
	// Messages that arrived while nobody was receiving are yielded first, in
	// arrival order. Starting a new iteration supersedes the previous one, which
	// then ends after the messages it already holds. Messages a consumer leaves
	// unread when it stops early are kept for the next one.
	// The iterator ends on Disconnect, after yielding a fatal stream error, or
	// after yielding the context's error.
	ReceiveMessages(ctx context.Context) iter.Seq2[Message, error]

	// ReceiveResponse returns an iterator that yields messages until and
	// including the next result message.
	ReceiveResponse(ctx context.Context) iter.Seq2[Message, error]

	// Interrupt asks the process to stop its current turn and waits for the
	// acknowledgment, bounded by the interrupt timeout.
	// Returns ControlRequestError if refused and TimeoutError if unanswered.
	Interrupt(ctx context.Context) error

	// Disconnect closes the transport and forgets all sessions.
	// The client is disconnected afterwards even if the transport fails to close.
	// Calling Disconnect while disconnected is a no-op.
	Disconnect(ctx context.Context) error

	// IsConnected reports whether the client is connected.
	IsConnected() bool

	// State returns the connection state.
	State() ClientState

	// Err returns the fatal stream error that moved the client to StateError, if any.
	Err() error

	// ListSessions returns the ids of all sessions sent to since connecting, sorted.
	ListSessions() []string

	// SessionInfo returns the bookkeeping for one session.
	SessionInfo(sessionID string) (SessionInfo, bool)
}

// NewClient creates a new interactive client.
//
// The client starts disconnected; call Connect to begin:
//
//	client := claudesdk.NewClient(claudesdk.WithTransport(transport))
//	err := client.Connect(ctx)
//
// A client that becomes unreachable while connected is disconnected in the
// background on a best-effort basis. Call Disconnect explicitly to observe errors.
func NewClient(opts ...Option) Client {
	return newClientImpl(applyOptions(opts))
}
