package stdio

import (
	"github.com/wagiedev/claude-session-sdk-go/internal/protocol"
)

const (
	typeControlRequest  = "control_request"
	typeControlResponse = "control_response"

	subtypeSuccess = "success"
)

// controlRequestLine is the wire form of an outbound control request.
//
//	{
//	  "type": "control_request",
//	  "request_id": "interrupt_1_01J...",
//	  "request": {"subtype": "interrupt"}
//	}
type controlRequestLine struct {
	Type      string             `json:"type"`
	RequestID string             `json:"request_id"` //nolint:tagliatelle // wire format uses snake_case
	Request   controlRequestBody `json:"request"`
}

type controlRequestBody struct {
	Subtype string `json:"subtype"`
}

// controlResponseLine is the wire form of an inbound control response.
//
//	{
//	  "type": "control_response",
//	  "response": {
//	    "subtype": "success" | "error",
//	    "request_id": "interrupt_1_01J...",
//	    "error": "message"
//	  }
//	}
type controlResponseLine struct {
	Type     string              `json:"type"`
	Response controlResponseBody `json:"response"`
}

type controlResponseBody struct {
	Subtype   string `json:"subtype"`
	RequestID string `json:"request_id"` //nolint:tagliatelle // wire format uses snake_case
	Error     string `json:"error,omitempty"`
}

func newControlRequestLine(req *protocol.ControlRequest) *controlRequestLine {
	return &controlRequestLine{
		Type:      typeControlRequest,
		RequestID: req.RequestID,
		Request:   controlRequestBody{Subtype: string(req.Kind)},
	}
}

// toControlResponse converts the wire form into the coordinator's response type.
func (l *controlResponseLine) toControlResponse() *protocol.ControlResponse {
	return &protocol.ControlResponse{
		RequestID: l.Response.RequestID,
		Success:   l.Response.Subtype == subtypeSuccess,
		Error:     l.Response.Error,
	}
}
