// Package config provides configuration types for the Claude session SDK.
package config

import (
	"context"
	"iter"

	"github.com/wagiedev/claude-session-sdk-go/internal/message"
	"github.com/wagiedev/claude-session-sdk-go/internal/protocol"
)

// Transport defines the interface for communication with the conversational process.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods (e.g., remote connections).
//
// The client assumes messages arrive in the order the process emitted them and
// that control responses travel independently of the message stream.
type Transport interface {
	// Connect opens the duplex channel to the process.
	Connect(ctx context.Context) error

	// SendMessage sends one input message to the process.
	SendMessage(ctx context.Context, msg *message.InputMessage) error

	// ReceiveMessages returns the continuous inbound message stream.
	// The sequence ends on disconnect or after yielding a fatal error.
	// Only one caller iterates it per connection.
	ReceiveMessages(ctx context.Context) iter.Seq2[message.Message, error]

	// SendControlRequest sends an out-of-band control request.
	SendControlRequest(ctx context.Context, req *protocol.ControlRequest) error

	// ReceiveControlResponse returns the next control response.
	// It returns (nil, nil) once the control stream has ended.
	ReceiveControlResponse(ctx context.Context) (*protocol.ControlResponse, error)

	// Disconnect closes the channel. It is idempotent and safe to call from any state.
	Disconnect(ctx context.Context) error

	// IsConnected returns true if the channel is open.
	IsConnected() bool
}
