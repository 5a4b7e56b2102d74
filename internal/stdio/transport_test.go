package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/claude-session-sdk-go/internal/errors"
	"github.com/wagiedev/claude-session-sdk-go/internal/message"
	"github.com/wagiedev/claude-session-sdk-go/internal/protocol"
)

// peer is the far end of a pipe-backed transport.
type peer struct {
	in  *bufio.Reader  // lines written by the transport
	out *io.PipeWriter // lines read by the transport
}

// writeLine is called from helper goroutines, so it asserts instead of requiring.
func (p *peer) writeLine(t *testing.T, line string) {
	t.Helper()

	_, err := io.WriteString(p.out, line+"\n")
	assert.NoError(t, err)
}

func (p *peer) readLine(t *testing.T) map[string]any {
	t.Helper()

	line, err := p.in.ReadBytes('\n')
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(line, &decoded))

	return decoded
}

// newPipeTransport returns a connected transport and its peer.
func newPipeTransport(t *testing.T) (*Transport, *peer) {
	t.Helper()

	clientRead, peerWrite := io.Pipe()
	peerRead, clientWrite := io.Pipe()

	transport := New(nil, func(_ context.Context) (io.ReadCloser, io.WriteCloser, error) {
		return clientRead, clientWrite, nil
	})

	require.NoError(t, transport.Connect(context.Background()))

	t.Cleanup(func() {
		_ = transport.Disconnect(context.Background())
		_ = peerWrite.Close()
		_ = peerRead.Close()
	})

	return transport, &peer{in: bufio.NewReader(peerRead), out: peerWrite}
}

// collect reads up to n items from the message stream.
func collect(t *testing.T, transport *Transport, n int) ([]message.Message, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var msgs []message.Message

	for msg, err := range transport.ReceiveMessages(ctx) {
		if err != nil {
			return msgs, err
		}

		msgs = append(msgs, msg)
		if len(msgs) == n {
			break
		}
	}

	return msgs, nil
}

func TestTransport_ConnectDialError(t *testing.T) {
	dialErr := stderrors.New("connection refused")

	transport := New(nil, func(_ context.Context) (io.ReadCloser, io.WriteCloser, error) {
		return nil, nil, dialErr
	})

	err := transport.Connect(context.Background())
	require.ErrorIs(t, err, dialErr)

	connErr, ok := stderrors.AsType[*errors.ConnectionError](err)
	require.True(t, ok)
	require.True(t, connErr.IsClaudeSDKError())
	require.False(t, transport.IsConnected())
}

func TestTransport_NotConnected(t *testing.T) {
	transport := New(nil, nil)
	ctx := context.Background()

	err := transport.SendMessage(ctx, message.NewUserInput("hi", "default"))
	require.ErrorIs(t, err, errors.ErrTransportNotConnected)

	err = transport.SendControlRequest(ctx, protocol.NewInterruptRequest("interrupt_1"))
	require.ErrorIs(t, err, errors.ErrTransportNotConnected)

	_, err = transport.ReceiveControlResponse(ctx)
	require.ErrorIs(t, err, errors.ErrTransportNotConnected)

	for range transport.ReceiveMessages(ctx) {
		t.Fatal("no messages expected without a connection")
	}

	require.NoError(t, transport.Disconnect(ctx))
	require.False(t, transport.IsConnected())
}

func TestTransport_SendMessageWritesLine(t *testing.T) {
	transport, p := newPipeTransport(t)

	errCh := make(chan error, 1)

	go func() {
		errCh <- transport.SendMessage(context.Background(), message.NewUserInput("Hello!", "default"))
	}()

	line := p.readLine(t)
	require.NoError(t, <-errCh)

	require.Equal(t, "user", line["type"])
	require.Equal(t, "default", line["session_id"])
	require.NotContains(t, line, "parent_tool_use_id")

	turn, ok := line["message"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "user", turn["role"])
	require.Equal(t, "Hello!", turn["content"])
}

func TestTransport_SendControlRequestWireFormat(t *testing.T) {
	transport, p := newPipeTransport(t)

	errCh := make(chan error, 1)

	go func() {
		errCh <- transport.SendControlRequest(context.Background(), protocol.NewInterruptRequest("interrupt_1_x"))
	}()

	line := p.readLine(t)
	require.NoError(t, <-errCh)

	require.Equal(t, "control_request", line["type"])
	require.Equal(t, "interrupt_1_x", line["request_id"])
	require.Equal(t, map[string]any{"subtype": "interrupt"}, line["request"])
}

func TestTransport_RoutesControlResponses(t *testing.T) {
	transport, p := newPipeTransport(t)

	go func() {
		p.writeLine(t, `{"type":"assistant","n":1}`)
		p.writeLine(t, `{"type":"control_response","response":{"subtype":"success","request_id":"interrupt_1"}}`)
		p.writeLine(t, `{"type":"control_response","response":{"subtype":"error","request_id":"interrupt_2","error":"busy"}}`)
		p.writeLine(t, `{"type":"result","n":2}`)
	}()

	msgs, err := collect(t, transport, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "assistant", msgs[0].MessageType())
	require.True(t, msgs[1].IsResult())

	ctx := context.Background()

	resp, err := transport.ReceiveControlResponse(ctx)
	require.NoError(t, err)
	require.Equal(t, &protocol.ControlResponse{RequestID: "interrupt_1", Success: true}, resp)

	resp, err = transport.ReceiveControlResponse(ctx)
	require.NoError(t, err)
	require.Equal(t, &protocol.ControlResponse{RequestID: "interrupt_2", Error: "busy"}, resp)
}

func TestTransport_InvalidJSONEndsStream(t *testing.T) {
	transport, p := newPipeTransport(t)

	go func() {
		p.writeLine(t, `{"type":"assistant"}`)
		p.writeLine(t, `{not json`)
	}()

	msgs, err := collect(t, transport, 10)
	require.Len(t, msgs, 1)

	decodeErr, ok := stderrors.AsType[*errors.JSONDecodeError](err)
	require.True(t, ok)
	require.Equal(t, "{not json", decodeErr.RawData)

	require.Eventually(t, func() bool { return !transport.IsConnected() }, time.Second, 5*time.Millisecond)

	// The control stream ends with the message stream
	resp, err := transport.ReceiveControlResponse(context.Background())
	require.NoError(t, err)
	require.Nil(t, resp)
}

func TestTransport_PeerCloseEndsStream(t *testing.T) {
	transport, p := newPipeTransport(t)

	go func() {
		p.writeLine(t, `{"type":"assistant"}`)
		_ = p.out.Close()
	}()

	msgs, err := collect(t, transport, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

func TestTransport_DisconnectIsIdempotent(t *testing.T) {
	transport, _ := newPipeTransport(t)
	ctx := context.Background()

	require.True(t, transport.IsConnected())
	require.NoError(t, transport.Disconnect(ctx))
	require.NoError(t, transport.Disconnect(ctx))
	require.False(t, transport.IsConnected())

	err := transport.SendMessage(ctx, message.NewUserInput("hi", "default"))
	require.ErrorIs(t, err, errors.ErrTransportNotConnected)
}

func TestTransport_DisconnectEndsReceivers(t *testing.T) {
	transport, _ := newPipeTransport(t)

	ended := make(chan struct{})

	go func() {
		defer close(ended)

		for range transport.ReceiveMessages(context.Background()) {
		}
	}()

	require.NoError(t, transport.Disconnect(context.Background()))

	select {
	case <-ended:
	case <-time.After(2 * time.Second):
		t.Fatal("receiver did not end after disconnect")
	}
}

func TestTransport_ReconnectReplacesStream(t *testing.T) {
	dials := 0

	var peers []*io.PipeWriter

	transport := New(nil, func(_ context.Context) (io.ReadCloser, io.WriteCloser, error) {
		dials++

		clientRead, peerWrite := io.Pipe()
		peers = append(peers, peerWrite)

		return clientRead, nopWriteCloser{io.Discard}, nil
	})

	ctx := context.Background()

	require.NoError(t, transport.Connect(ctx))
	require.NoError(t, transport.Connect(ctx))
	require.Equal(t, 2, dials)

	// The first stream was closed, so writes to it fail
	_, err := peers[0].Write([]byte("{}\n"))
	require.ErrorIs(t, err, io.ErrClosedPipe)

	require.NoError(t, transport.Disconnect(ctx))
}

func TestTransport_SendMessageHonoursCancellation(t *testing.T) {
	// Nobody reads the peer side, so the write blocks
	transport, _ := newPipeTransport(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := transport.SendMessage(ctx, message.NewUserInput("hi", "default"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransport_ControlResponsesWithoutWaiterAreBounded(t *testing.T) {
	transport, p := newPipeTransport(t)

	go func() {
		for i := range controlBufferSize + 4 {
			p.writeLine(t, `{"type":"control_response","response":{"subtype":"success","request_id":"r`+strings.Repeat("x", i)+`"}}`)
		}

		p.writeLine(t, `{"type":"assistant"}`)
	}()

	// The message stream is not held up by uncollected control responses
	msgs, err := collect(t, transport, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	// The oldest responses were dropped, the newest kept
	resp, err := transport.ReceiveControlResponse(context.Background())
	require.NoError(t, err)
	require.Equal(t, "r"+strings.Repeat("x", 4), resp.RequestID)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
