package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUserInput(t *testing.T) {
	msg := NewUserInput("Hello", "session-123")

	require.Equal(t, TypeUser, msg.Type)
	require.Equal(t, "session-123", msg.SessionID)
	require.Nil(t, msg.ParentToolUseID)
	require.True(t, msg.Message.Content.IsString())
	require.Equal(t, "Hello", msg.Message.Content.String())

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	require.Contains(t, string(data), `"type":"user"`)
	require.Contains(t, string(data), `"content":"Hello"`)
	require.Contains(t, string(data), `"session_id":"session-123"`)
	require.NotContains(t, string(data), "parent_tool_use_id")
}

func TestNewToolResultInput(t *testing.T) {
	msg := NewToolResultInput("tool-123", "Result", "session-456", false)

	require.Equal(t, TypeUser, msg.Type)
	require.NotNil(t, msg.ParentToolUseID)
	require.Equal(t, "tool-123", *msg.ParentToolUseID)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	require.Contains(t, string(data), `"parent_tool_use_id":"tool-123"`)
	require.Contains(t, string(data), `"tool_use_id":"tool-123"`)
	require.Contains(t, string(data), `"is_error":false`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	turn, ok := decoded["message"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "user", turn["role"])

	blocks, ok := turn["content"].([]any)
	require.True(t, ok)
	require.Len(t, blocks, 1)

	block, ok := blocks[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "tool_result", block["type"])
	require.Equal(t, "Result", block["content"])
}

func TestInputMessage_RoundTrip(t *testing.T) {
	for _, original := range []*InputMessage{
		NewUserInput("What is 2+2?", "default"),
		NewToolResultInput("tool-9", "boom", "other", true),
	} {
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded InputMessage
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, *original, decoded)
	}
}

func TestTurnContent_UnmarshalRejectsObjects(t *testing.T) {
	var content TurnContent

	err := json.Unmarshal([]byte(`{"role":"user"}`), &content)
	require.Error(t, err)
}

func TestMessage_Discriminants(t *testing.T) {
	msg := Message{"type": "result", "session_id": "s1"}
	require.Equal(t, "result", msg.MessageType())
	require.True(t, msg.IsResult())
	require.Equal(t, "s1", msg.SessionID())

	empty := Message{}
	require.Empty(t, empty.MessageType())
	require.False(t, empty.IsResult())
	require.Empty(t, empty.SessionID())
}
