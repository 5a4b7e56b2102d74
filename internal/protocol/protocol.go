package protocol

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/claude-session-sdk-go/internal/errors"
)

// Transport defines the minimal interface needed for control operations.
//
// This interface is satisfied by every config.Transport but allows for testing
// with mock transports.
type Transport interface {
	SendControlRequest(ctx context.Context, req *ControlRequest) error
	ReceiveControlResponse(ctx context.Context) (*ControlResponse, error)
}

// Coordinator issues control requests and awaits their acknowledgments.
//
// Only one acknowledgment wait is active at a time; concurrent callers are
// serialized. Responses for other request ids are skipped and the wait goes on
// until a match, the end of the control stream, or the timeout.
//
// At most one ReceiveControlResponse call is outstanding. A receive still
// running when a wait gives up is handed to the next wait rather than
// abandoned, so a transport slow to honour cancellation cannot swallow a
// later acknowledgment.
type Coordinator struct {
	log       *slog.Logger
	transport Transport
	timeout   time.Duration

	// mu serializes control requests and guards counter and pending
	mu      sync.Mutex
	counter uint64
	pending chan received
}

// received is the outcome of one ReceiveControlResponse call.
type received struct {
	resp *ControlResponse
	err  error
	// ctx is the context the receive ran under
	ctx context.Context
}

// NewCoordinator creates a coordinator that waits up to timeout for each acknowledgment.
func NewCoordinator(log *slog.Logger, transport Transport, timeout time.Duration) *Coordinator {
	return &Coordinator{
		log:       log.With("component", "protocol"),
		transport: transport,
		timeout:   timeout,
	}
}

// Timeout returns the acknowledgment bound.
func (c *Coordinator) Timeout() time.Duration {
	return c.timeout
}

// Interrupt sends an interrupt request and waits for its acknowledgment.
//
// Returns nil when the process acknowledges successfully, a *errors.ControlRequestError
// when it refuses or the control stream ends first, a *errors.TimeoutError when no
// acknowledgment arrives within the bound, or the transport's error.
func (c *Coordinator) Interrupt(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	requestID := c.nextRequestID(string(KindInterrupt))

	c.log.Debug("Sending control request", "request_id", requestID, "kind", KindInterrupt)

	if err := c.transport.SendControlRequest(ctx, NewInterruptRequest(requestID)); err != nil {
		c.log.Error("Failed to send control request", "request_id", requestID, "error", err)

		return fmt.Errorf("send interrupt request: %w", err)
	}

	c.log.Info("Sent interrupt request", "request_id", requestID)

	return c.await(ctx, requestID, string(KindInterrupt))
}

// await waits for the acknowledgment of requestID, bounded by the coordinator timeout.
// Caller must hold c.mu.
func (c *Coordinator) await(ctx context.Context, requestID string, operation string) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	for {
		select {
		case got := <-c.receive(waitCtx):
			c.pending = nil

			if got.err != nil && stderrors.Is(got.err, got.ctx.Err()) {
				if got.ctx != waitCtx {
					c.log.Debug("Discarding receive cancelled by an earlier wait", "request_id", requestID)

					continue
				}

				return c.waitEnded(ctx, requestID, operation)
			}

			done, err := c.match(requestID, got)
			if done {
				return err
			}

		case <-waitCtx.Done():
			return c.waitEnded(ctx, requestID, operation)
		}
	}
}

// receive returns the outstanding receive, starting one under ctx if none is running.
// Caller must hold c.mu.
func (c *Coordinator) receive(ctx context.Context) <-chan received {
	if c.pending != nil {
		return c.pending
	}

	// Buffered so the receive never blocks once nobody listens
	pending := make(chan received, 1)
	c.pending = pending

	go func() {
		resp, err := c.transport.ReceiveControlResponse(ctx)
		pending <- received{resp: resp, err: err, ctx: ctx}
	}()

	return pending
}

// match applies one received control response to the wait for requestID.
// It reports whether the wait is over, and with what result.
func (c *Coordinator) match(requestID string, got received) (bool, error) {
	if got.err != nil {
		return true, fmt.Errorf("receive control response: %w", got.err)
	}

	resp := got.resp
	if resp == nil {
		c.log.Warn("Control stream ended before acknowledgment", "request_id", requestID)

		return true, &errors.ControlRequestError{
			RequestID: requestID,
			Reason:    "no acknowledgment received",
		}
	}

	if resp.RequestID != requestID {
		c.log.Debug("Skipping unrelated control response",
			"request_id", requestID,
			"response_id", resp.RequestID,
		)

		return false, nil
	}

	if !resp.Success {
		reason := "not acknowledged successfully"
		if resp.Error != "" {
			reason += ": " + resp.Error
		}

		c.log.Warn("Control request refused", "request_id", requestID, "error", resp.Error)

		return true, &errors.ControlRequestError{RequestID: requestID, Reason: reason}
	}

	c.log.Debug("Received control acknowledgment", "request_id", requestID)

	return true, nil
}

// waitEnded reports why a wait stopped without an answer: the caller's
// context, or the coordinator timeout.
func (c *Coordinator) waitEnded(ctx context.Context, requestID string, operation string) error {
	if err := ctx.Err(); err != nil {
		c.log.Debug("Control request cancelled", "request_id", requestID)

		return err
	}

	return c.timedOut(requestID, operation)
}

func (c *Coordinator) timedOut(requestID string, operation string) error {
	c.log.Warn("Control request timed out", "request_id", requestID, "timeout", c.timeout)

	return &errors.TimeoutError{Operation: operation, Timeout: c.timeout}
}

// nextRequestID returns a new id made of a per-coordinator counter and a ULID,
// increasing within a coordinator and unique across the process.
// Caller must hold c.mu.
func (c *Coordinator) nextRequestID(prefix string) string {
	c.counter++

	return fmt.Sprintf("%s_%d_%s", prefix, c.counter, ulid.Make().String())
}
