// Package errors defines error types for the Claude session SDK.
//
// This package provides structured error types for the failure classes of the
// session layer: operations attempted in the wrong client state, transport
// failures, unacknowledged control requests and control request timeouts.
// All error types support error unwrapping and can be checked using
// errors.Is, errors.As, and errors.AsType.
package errors
