package claudesdk

import (
	"github.com/wagiedev/claude-session-sdk-go/internal/client"
	"github.com/wagiedev/claude-session-sdk-go/internal/config"
	"github.com/wagiedev/claude-session-sdk-go/internal/message"
	"github.com/wagiedev/claude-session-sdk-go/internal/protocol"
	"github.com/wagiedev/claude-session-sdk-go/internal/session"
)

// ===== Configuration =====

// Options configures a client.
type Options = config.Options

// Settings are client settings read from a YAML file. See LoadSettings.
type Settings = config.File

const (
	// DefaultInterruptTimeout bounds an interrupt when no timeout is configured.
	DefaultInterruptTimeout = config.DefaultInterruptTimeout
	// DefaultSessionID is the session used when Send is called without one.
	DefaultSessionID = config.DefaultSessionID
)

// ===== Client State =====

// ClientState is the connection state of a client.
type ClientState = client.State

const (
	// StateDisconnected is the initial state, and the state after Disconnect.
	StateDisconnected = client.StateDisconnected
	// StateConnected means messages can be sent and interrupts issued.
	StateConnected = client.StateConnected
	// StateError means the inbound stream failed. Connect again to recover.
	StateError = client.StateError
)

// SessionInfo is the bookkeeping kept for one conversation session.
type SessionInfo = session.Session

// ===== Messages =====

// Message is a decoded inbound JSON object.
type Message = message.Message

// InputMessage is an outbound user turn.
type InputMessage = message.InputMessage

// UserTurn is the role and content of an outbound user turn.
type UserTurn = message.UserTurn

// TurnContent is the content of a user turn: plain text or tool result blocks.
type TurnContent = message.TurnContent

// ToolResultBlock carries the result of one tool use.
type ToolResultBlock = message.ToolResultBlock

// NewUserInput creates a user turn carrying a plain text prompt.
var NewUserInput = message.NewUserInput

// NewToolResultInput creates a user turn answering a tool use.
var NewToolResultInput = message.NewToolResultInput

// ===== Control Protocol =====

// ControlRequest is an out-of-band request to the process.
type ControlRequest = protocol.ControlRequest

// ControlResponse acknowledges a ControlRequest.
type ControlResponse = protocol.ControlResponse

// ControlKind names a control operation.
type ControlKind = protocol.ControlKind

// KindInterrupt asks the process to stop its current turn.
const KindInterrupt = protocol.KindInterrupt
