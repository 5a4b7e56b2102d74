package claudesdk

import (
	"context"
	"iter"
	"runtime"

	"github.com/wagiedev/claude-session-sdk-go/internal/client"
)

// clientWrapper wraps the internal client to adapt it to the public interface.
type clientWrapper struct {
	impl *client.Client
}

// Compile-time check that *clientWrapper implements the Client interface.
var _ Client = (*clientWrapper)(nil)

// newClientImpl creates the internal client implementation.
func newClientImpl(options *Options) Client {
	w := &clientWrapper{impl: client.New(options)}

	runtime.AddCleanup(w, func(impl *client.Client) { impl.Finalize() }, w.impl)

	return w
}

// Connect opens the transport and starts relaying inbound messages.
func (c *clientWrapper) Connect(ctx context.Context) error {
	return c.impl.Connect(ctx)
}

// ConnectWithPrompt connects and immediately sends an initial prompt.
func (c *clientWrapper) ConnectWithPrompt(ctx context.Context, prompt string) error {
	return c.impl.ConnectWithPrompt(ctx, prompt)
}

// Send sends a user prompt.
func (c *clientWrapper) Send(ctx context.Context, prompt string, sessionID ...string) error {
	return c.impl.Send(ctx, prompt, sessionID...)
}

// SendToolResult answers a tool use with its result.
func (c *clientWrapper) SendToolResult(
	ctx context.Context,
	toolUseID, content string,
	isError bool,
	sessionID ...string,
) error {
	return c.impl.SendToolResult(ctx, toolUseID, content, isError, sessionID...)
}

// ReceiveMessages returns an iterator that yields inbound messages.
func (c *clientWrapper) ReceiveMessages(ctx context.Context) iter.Seq2[Message, error] {
	return c.impl.ReceiveMessages(ctx)
}

// ReceiveResponse returns an iterator that yields messages until a result message.
func (c *clientWrapper) ReceiveResponse(ctx context.Context) iter.Seq2[Message, error] {
	return c.impl.ReceiveResponse(ctx)
}

// Interrupt asks the process to stop its current turn.
func (c *clientWrapper) Interrupt(ctx context.Context) error {
	return c.impl.Interrupt(ctx)
}

// Disconnect closes the transport and forgets all sessions.
func (c *clientWrapper) Disconnect(ctx context.Context) error {
	return c.impl.Disconnect(ctx)
}

// IsConnected reports whether the client is connected.
func (c *clientWrapper) IsConnected() bool {
	return c.impl.IsConnected()
}

// State returns the connection state.
func (c *clientWrapper) State() ClientState {
	return c.impl.State()
}

// Err returns the fatal stream error, if any.
func (c *clientWrapper) Err() error {
	return c.impl.Err()
}

// ListSessions returns the ids of all known sessions.
func (c *clientWrapper) ListSessions() []string {
	return c.impl.ListSessions()
}

// SessionInfo returns the bookkeeping for one session.
func (c *clientWrapper) SessionInfo(sessionID string) (SessionInfo, bool) {
	return c.impl.SessionInfo(sessionID)
}
