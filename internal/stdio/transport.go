package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/wagiedev/claude-session-sdk-go/internal/config"
	"github.com/wagiedev/claude-session-sdk-go/internal/errors"
	"github.com/wagiedev/claude-session-sdk-go/internal/message"
	"github.com/wagiedev/claude-session-sdk-go/internal/protocol"
)

const (
	// maxScanTokenSize is the maximum size of one inbound line.
	maxScanTokenSize = 1024 * 1024 // 1MB
	// controlBufferSize bounds control responses nobody is waiting for.
	controlBufferSize = 16
	// writeExitGrace is how long a cancelled write may take to unwind.
	writeExitGrace = time.Second
)

// DialFunc opens the duplex byte stream to the conversational process.
// The reader carries inbound lines, the writer outbound ones.
type DialFunc func(ctx context.Context) (io.ReadCloser, io.WriteCloser, error)

// inbound is one entry of the message stream.
type inbound struct {
	msg message.Message
	err error
}

// conn holds the state of one dialed stream.
type conn struct {
	reader   io.ReadCloser
	writer   io.WriteCloser
	messages chan inbound
	control  chan *protocol.ControlResponse
	// closed is closed by Disconnect, ended by the read loop
	closed    chan struct{}
	ended     chan struct{}
	closeOnce sync.Once
}

// Transport implements config.Transport over line-delimited JSON.
type Transport struct {
	log  *slog.Logger
	dial DialFunc

	mu   sync.Mutex // guards conn
	conn *conn

	writeMu sync.Mutex // serializes writes
}

// Compile-time verification that Transport implements the Transport interface.
var _ config.Transport = (*Transport)(nil)

// New creates a transport that dials with the given function on Connect.
func New(log *slog.Logger, dial DialFunc) *Transport {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Transport{
		log:  log.With("component", "stdio_transport"),
		dial: dial,
	}
}

// Connect dials the stream and starts reading from it.
//
// A stream left over from an earlier connection is closed first.
// Returns ConnectionError if dialing fails.
func (t *Transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		t.log.Debug("Closing previous stream before reconnect")

		if err := t.conn.close(); err != nil {
			t.log.Warn("Failed to close previous stream", "error", err)
		}

		t.conn = nil
	}

	if t.dial == nil {
		return &errors.ConnectionError{Err: stderrors.New("no dial function")}
	}

	reader, writer, err := t.dial(ctx)
	if err != nil {
		t.log.Error("Failed to dial", "error", err)

		return &errors.ConnectionError{Err: err}
	}

	c := &conn{
		reader:   reader,
		writer:   writer,
		messages: make(chan inbound),
		control:  make(chan *protocol.ControlResponse, controlBufferSize),
		closed:   make(chan struct{}),
		ended:    make(chan struct{}),
	}

	t.conn = c

	go t.readLoop(c)

	t.log.Info("Transport connected")

	return nil
}

// readLoop decodes inbound lines until the stream ends or is closed.
func (t *Transport) readLoop(c *conn) {
	defer close(c.ended)
	defer close(c.messages)
	defer close(c.control)
	defer t.log.Debug("Read loop stopped")

	scanner := bufio.NewScanner(c.reader)
	// Set large buffer for big messages
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	messageCount := 0

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var msg message.Message

		if err := json.Unmarshal(line, &msg); err != nil {
			t.log.Debug("Failed to unmarshal JSON line", "error", err, "line", string(line))

			c.deliver(inbound{err: &errors.JSONDecodeError{RawData: string(line), Err: err}})

			return
		}

		if msg.MessageType() == typeControlResponse {
			t.routeControl(c, line)

			continue
		}

		messageCount++
		t.log.Debug("Received message", "message_count", messageCount, "type", msg.MessageType())

		if !c.deliver(inbound{msg: msg}) {
			return
		}
	}

	if err := scanner.Err(); err != nil && !c.isClosed() {
		t.log.Error("Scanner error while reading stream", "error", err)

		c.deliver(inbound{err: fmt.Errorf("read stream: %w", err)})
	}
}

// routeControl hands a control response to whoever waits on the control channel.
// When nobody has collected the last few responses the oldest is discarded.
func (t *Transport) routeControl(c *conn, line []byte) {
	var wire controlResponseLine

	if err := json.Unmarshal(line, &wire); err != nil {
		t.log.Warn("Malformed control response", "error", err)

		return
	}

	resp := wire.toControlResponse()

	for {
		select {
		case c.control <- resp:
			return
		case <-c.closed:
			return
		default:
		}

		select {
		case stale := <-c.control:
			t.log.Warn("Dropping uncollected control response", "request_id", stale.RequestID)
		default:
		}
	}
}

// deliver blocks until the item is taken or the stream is closed.
func (c *conn) deliver(item inbound) bool {
	select {
	case c.messages <- item:
		return true
	case <-c.closed:
		return false
	}
}

func (c *conn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *conn) close() error {
	var err error

	c.closeOnce.Do(func() {
		close(c.closed)

		err = stderrors.Join(c.writer.Close(), c.reader.Close())
	})

	return err
}

func (t *Transport) current() *conn {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.conn
}

// SendMessage writes one input message as a JSON line.
func (t *Transport) SendMessage(ctx context.Context, msg *message.InputMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal input message: %w", err)
	}

	return t.write(ctx, data)
}

// SendControlRequest writes one control request as a JSON line.
func (t *Transport) SendControlRequest(ctx context.Context, req *protocol.ControlRequest) error {
	data, err := json.Marshal(newControlRequestLine(req))
	if err != nil {
		return fmt.Errorf("marshal control request: %w", err)
	}

	return t.write(ctx, data)
}

// write sends a newline-terminated line, honouring context cancellation even
// while the underlying Write blocks. A write abandoned on cancellation leaves the
// stream in an unknown state, so the writer is closed.
func (t *Transport) write(ctx context.Context, data []byte) error {
	c := t.current()
	if c == nil || c.isClosed() {
		return errors.ErrTransportNotConnected
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	line := make([]byte, len(data)+1)
	copy(line, data)
	line[len(data)] = '\n'

	t.log.Debug("Writing line", "data_len", len(line))

	done := make(chan error, 1)

	go func() {
		_, err := c.writer.Write(line)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.log.Error("Failed to write line", "error", err)

			return fmt.Errorf("write line: %w", err)
		}

		return nil

	case <-ctx.Done():
		t.log.Debug("Context cancelled during write, closing writer")

		_ = c.writer.Close()

		select {
		case <-done:
		case <-time.After(writeExitGrace):
			t.log.Warn("Write goroutine did not exit after writer close, potential leak")
		}

		return ctx.Err()
	}
}

// ReceiveMessages yields inbound messages of the current stream.
//
// The sequence ends when the stream ends, when the transport disconnects, or after
// yielding a decode or read error. It yields nothing when not connected.
func (t *Transport) ReceiveMessages(ctx context.Context) iter.Seq2[message.Message, error] {
	c := t.current()

	return func(yield func(message.Message, error) bool) {
		if c == nil {
			return
		}

		for {
			select {
			case item, ok := <-c.messages:
				if !ok {
					return
				}

				if !yield(item.msg, item.err) || item.err != nil {
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}
}

// ReceiveControlResponse returns the next control response.
// It returns (nil, nil) once the stream has ended.
func (t *Transport) ReceiveControlResponse(ctx context.Context) (*protocol.ControlResponse, error) {
	c := t.current()
	if c == nil {
		return nil, errors.ErrTransportNotConnected
	}

	select {
	case resp, ok := <-c.control:
		if !ok {
			return nil, nil
		}

		return resp, nil

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Disconnect closes the stream. It is safe to call in any state and more than once.
func (t *Transport) Disconnect(_ context.Context) error {
	t.mu.Lock()
	c := t.conn
	t.conn = nil
	t.mu.Unlock()

	if c == nil {
		return nil
	}

	t.log.Info("Disconnecting transport")

	if err := c.close(); err != nil {
		return fmt.Errorf("close stream: %w", err)
	}

	return nil
}

// IsConnected reports whether a stream is open and still being read.
func (t *Transport) IsConnected() bool {
	c := t.current()
	if c == nil {
		return false
	}

	select {
	case <-c.ended:
		return false
	case <-c.closed:
		return false
	default:
		return true
	}
}
