// Package client implements the interactive Client for multi-turn conversations with Claude.
//
// The client package provides a stateful, bidirectional interface to a
// long-lived conversational process reached through a Transport. It owns:
//   - the connection state machine (disconnected, connected, error)
//   - the session registry used for per-session message counts
//   - the message relay that bridges the inbound stream to consumers
//   - the control coordinator used to interrupt the current turn
//
// The relay runs in its own goroutine for the lifetime of each connection,
// managed by an errgroup.
package client
