package client

// State is the connection state of a Client.
type State int

const (
	// StateDisconnected is the initial state, and the state after Disconnect.
	StateDisconnected State = iota

	// StateConnected means the transport is open and the relay is running.
	StateConnected

	// StateError means the inbound stream failed; Disconnect or Connect to recover.
	StateError
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
