// Package message provides the message types moved across the session layer.
package message

// TypeResult is the discriminant of the message that ends a turn.
const TypeResult = "result"

// Message is a decoded inbound JSON object from the conversational process.
//
// The session layer moves messages without interpreting their payload; only the
// "type" discriminant is read, and only by callers that treat a result message
// as the end of a turn.
type Message map[string]any

// MessageType returns the "type" discriminant, or "" if absent.
func (m Message) MessageType() string {
	if t, ok := m["type"].(string); ok {
		return t
	}

	return ""
}

// IsResult reports whether the message marks the end of a turn.
func (m Message) IsResult() bool {
	return m.MessageType() == TypeResult
}

// SessionID returns the "session_id" field, or "" if absent.
func (m Message) SessionID() string {
	if id, ok := m["session_id"].(string); ok {
		return id
	}

	return ""
}
