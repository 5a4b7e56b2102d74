package client

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/claude-session-sdk-go/internal/config"
	"github.com/wagiedev/claude-session-sdk-go/internal/errors"
	"github.com/wagiedev/claude-session-sdk-go/internal/message"
	"github.com/wagiedev/claude-session-sdk-go/internal/protocol"
	"github.com/wagiedev/claude-session-sdk-go/internal/relay"
	"github.com/wagiedev/claude-session-sdk-go/internal/session"
)

// Client implements the interactive client interface.
type Client struct {
	log       *slog.Logger
	options   *config.Options
	transport config.Transport
	sessions  *session.Registry
	relay     *relay.Relay
	control   *protocol.Coordinator

	// lifecycleMu serializes Connect and Disconnect and guards eg and stopRelay
	lifecycleMu sync.Mutex
	eg          *errgroup.Group
	stopRelay   context.CancelFunc

	// sendMu serializes message sends on the transport
	sendMu sync.Mutex

	// stateMu guards state, generation and fatalErr
	stateMu    sync.RWMutex
	state      State
	generation uint64
	fatalErr   error
}

// New creates a new interactive client.
//
// The client is not connected after creation. Call Connect() to connect.
func New(options *config.Options) *Client {
	options = options.WithDefaults()

	c := &Client{
		log:       options.Logger.With("component", "client"),
		options:   options,
		transport: options.Transport,
		sessions:  session.NewRegistry(),
		relay:     relay.New(options.Logger),
	}

	if c.transport != nil {
		c.control = protocol.NewCoordinator(options.Logger, c.transport, options.InterruptTimeout)
	}

	return c
}

// State returns the current connection state.
// This method is safe to call from any goroutine.
func (c *Client) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return c.state
}

// IsConnected returns true if the client is connected.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Err returns the error that moved the client into StateError, if any.
func (c *Client) Err() error {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return c.fatalErr
}

// Connect opens the transport and starts relaying inbound messages.
//
// Connect is a no-op when already connected. If the transport fails to
// connect, the error is returned and the state is left unchanged so the
// caller may retry.
func (c *Client) Connect(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if c.IsConnected() {
		c.log.Debug("Already connected")

		return nil
	}

	if c.transport == nil {
		return errors.ErrTransportNotConfigured
	}

	// A relay from a failed connection has already stopped; reap it
	c.waitRelay()

	c.log.Info("Connecting transport")

	if err := c.transport.Connect(ctx); err != nil {
		c.log.Error("Failed to connect transport", "error", err)

		return fmt.Errorf("connect transport: %w", err)
	}

	c.stateMu.Lock()
	c.generation++
	generation := c.generation
	c.state = StateConnected
	c.fatalErr = nil
	c.stateMu.Unlock()

	c.startRelay(generation)

	c.log.Info("Client connected", "generation", generation)

	return nil
}

// ConnectWithPrompt connects and immediately sends prompt to the default session.
//
// This is a convenience method equivalent to calling Connect() followed by Send().
func (c *Client) ConnectWithPrompt(ctx context.Context, prompt string) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}

	return c.Send(ctx, prompt)
}

// startRelay launches the relay for one connection.
// Caller must hold c.lifecycleMu.
func (c *Client) startRelay(generation uint64) {
	// The relay must outlive the caller's ctx: it runs until Disconnect
	// cancels it or the inbound stream ends.
	relayCtx, cancel := context.WithCancel(context.Background())

	var egCtx context.Context

	c.eg, egCtx = errgroup.WithContext(relayCtx)
	c.stopRelay = cancel

	stream := c.transport.ReceiveMessages(egCtx)

	// Take delivery over now, so a relay left from an earlier connection
	// cannot claim it back
	pass := c.relay.Start()

	c.eg.Go(func() error {
		err := pass.Run(egCtx, stream)
		if err != nil {
			c.markFailed(generation, err)
		}

		return err
	})
}

// waitRelay stops the current relay, if any, and waits for it to exit.
// Caller must hold c.lifecycleMu.
func (c *Client) waitRelay() {
	if c.stopRelay != nil {
		c.stopRelay()
		c.stopRelay = nil
	}

	if c.eg == nil {
		return
	}

	if err := c.eg.Wait(); err != nil {
		c.log.Debug("Relay exited with error", "error", err)
	}

	c.eg = nil
}

// markFailed moves a connected client into StateError after a fatal stream
// error. Errors from a relay of an earlier connection are ignored.
func (c *Client) markFailed(generation uint64, err error) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	if c.generation != generation || c.state != StateConnected {
		c.log.Debug("Ignoring error from stale relay", "generation", generation, "error", err)

		return
	}

	c.state = StateError
	c.fatalErr = err

	c.log.Error("Inbound stream failed", "error", err)
}

// Send sends a user prompt.
//
// Returns immediately after sending; use ReceiveMessages() or ReceiveResponse()
// to get the responses. Optional sessionID defaults to the configured default session.
func (c *Client) Send(ctx context.Context, prompt string, sessionID ...string) error {
	sid := c.resolveSession(sessionID)

	return c.send(ctx, "send", sid, message.NewUserInput(prompt, sid))
}

// SendToolResult sends the result of a tool invocation back to the process.
func (c *Client) SendToolResult(
	ctx context.Context,
	toolUseID string,
	content string,
	isError bool,
	sessionID ...string,
) error {
	sid := c.resolveSession(sessionID)

	return c.send(ctx, "send tool result", sid, message.NewToolResultInput(toolUseID, content, sid, isError))
}

// send records msg against its session and forwards it to the transport.
func (c *Client) send(
	ctx context.Context,
	operation string,
	sessionID string,
	msg *message.InputMessage,
) error {
	// Disconnect clears the registry under the write lock
	c.stateMu.RLock()

	if c.state != StateConnected {
		state := c.state
		c.stateMu.RUnlock()

		return &errors.InvalidStateError{Operation: operation, State: state.String()}
	}

	if c.sessions.Ensure(sessionID) {
		c.log.Debug("Created session", "session_id", sessionID)
	}

	count := c.sessions.Increment(sessionID)
	c.stateMu.RUnlock()

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.log.Debug("Sending message", "session_id", sessionID, "message_count", count)

	if err := c.transport.SendMessage(ctx, msg); err != nil {
		c.log.Error("Failed to send message", "session_id", sessionID, "error", err)

		return fmt.Errorf("%s: %w", operation, err)
	}

	return nil
}

func (c *Client) resolveSession(sessionID []string) string {
	if len(sessionID) > 0 && sessionID[0] != "" {
		return sessionID[0]
	}

	return c.options.DefaultSessionID
}

// ReceiveMessages returns an iterator over buffered and then live messages.
//
// Each call creates an independent attachment that supersedes the previous
// one; a superseded iterator ends after yielding what it already holds. The
// iterator works in any state: before Connect it simply waits for messages.
// It ends when the connection's inbound stream ends, after yielding a fatal
// stream error, or when ctx is done.
func (c *Client) ReceiveMessages(ctx context.Context) iter.Seq2[message.Message, error] {
	return c.relay.Receive(ctx)
}

// ReceiveResponse returns an iterator that yields messages until a result message is received.
// The iterator stops after yielding the result message.
func (c *Client) ReceiveResponse(ctx context.Context) iter.Seq2[message.Message, error] {
	return func(yield func(message.Message, error) bool) {
		for msg, err := range c.relay.Receive(ctx) {
			if !yield(msg, err) {
				return
			}

			if err == nil && msg.IsResult() {
				return
			}
		}
	}
}

// Interrupt sends an interrupt signal and waits for its acknowledgment.
func (c *Client) Interrupt(ctx context.Context) error {
	if state := c.State(); state != StateConnected {
		return &errors.InvalidStateError{Operation: "interrupt", State: state.String()}
	}

	c.log.Info("Sending interrupt signal")

	if err := c.control.Interrupt(ctx); err != nil {
		return fmt.Errorf("interrupt: %w", err)
	}

	return nil
}

// ListSessions returns the ids of the sessions used since connecting, sorted.
func (c *Client) ListSessions() []string {
	return c.sessions.ListIDs()
}

// SessionInfo returns the bookkeeping of one session.
func (c *Client) SessionInfo(sessionID string) (session.Session, bool) {
	return c.sessions.Get(sessionID)
}

// Disconnect closes the transport, stops the relay and forgets all sessions.
//
// Disconnect is a no-op when already disconnected and is permitted from the
// error state. The state and session registry are reset even when the
// transport fails to disconnect; that error is returned.
func (c *Client) Disconnect(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if c.State() == StateDisconnected {
		return nil
	}

	c.log.Info("Disconnecting client")

	// Cancel first so stream errors caused by the teardown are not fatal
	if c.stopRelay != nil {
		c.stopRelay()
	}

	disconnectErr := c.transport.Disconnect(ctx)
	if disconnectErr != nil {
		c.log.Warn("Transport disconnect failed", "error", disconnectErr)
	}

	c.stateMu.Lock()
	c.generation++
	c.state = StateDisconnected
	c.sessions.Clear()
	c.stateMu.Unlock()

	if disconnectErr != nil {
		// The stream may still be open; let the relay exit on its own
		c.eg = nil
		c.stopRelay = nil

		return fmt.Errorf("disconnect transport: %w", disconnectErr)
	}

	c.waitRelay()

	c.log.Info("Client disconnected")

	return nil
}

// Finalize starts a best-effort disconnect in the background if the client
// is still connected. It never blocks and never fails; errors are logged.
func (c *Client) Finalize() {
	if !c.IsConnected() {
		return
	}

	go func() {
		if err := c.Disconnect(context.Background()); err != nil {
			c.log.Debug("Error disconnecting in cleanup", "error", err)
		}
	}()
}
