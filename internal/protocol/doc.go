// Package protocol implements the out-of-band control channel of a session.
//
// The protocol package provides a Coordinator that issues control requests
// (currently interrupt) with generated correlation ids and waits, within a
// fixed bound, for the matching acknowledgment from the transport's control
// response stream. Control responses travel independently of the message
// stream, so waiting for an acknowledgment never stalls message delivery.
//
// Example usage:
//
//	coordinator := protocol.NewCoordinator(log, transport, 5*time.Second)
//
//	if err := coordinator.Interrupt(ctx); err != nil {
//	    // *errors.ControlRequestError, *errors.TimeoutError or a transport error
//	}
package protocol
