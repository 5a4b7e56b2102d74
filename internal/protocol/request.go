package protocol

// ControlKind names an out-of-band control operation.
type ControlKind string

// KindInterrupt asks the process to stop its current turn.
const KindInterrupt ControlKind = "interrupt"

// ControlRequest is an out-of-band request sent to the process.
//
// Requests are correlated with their acknowledgment by RequestID:
//
//	{"kind": "interrupt", "request_id": "interrupt_1_01J..."}
type ControlRequest struct {
	// Kind selects the control operation
	Kind ControlKind `json:"kind"`

	// RequestID uniquely identifies this request for response correlation
	RequestID string `json:"request_id"` //nolint:tagliatelle // Claude CLI uses snake_case
}

// NewInterruptRequest creates an interrupt request with the given id.
func NewInterruptRequest(requestID string) *ControlRequest {
	return &ControlRequest{Kind: KindInterrupt, RequestID: requestID}
}

// ControlResponse acknowledges a control request.
//
//	{"request_id": "interrupt_1_01J...", "success": true}
type ControlResponse struct {
	// RequestID is the id of the request being acknowledged
	RequestID string `json:"request_id"` //nolint:tagliatelle // Claude CLI uses snake_case

	// Success is true when the request was carried out
	Success bool `json:"success"`

	// Error optionally explains an unsuccessful acknowledgment
	Error string `json:"error,omitempty"`
}
