package message

import (
	"encoding/json"
	"fmt"
)

const (
	// TypeUser is the type of every message sent to the process.
	TypeUser = "user"

	// RoleUser is the role of every turn sent to the process.
	RoleUser = "user"

	// BlockTypeToolResult is the content block type of a tool result.
	BlockTypeToolResult = "tool_result"
)

// InputMessage is a message sent to the conversational process.
//
// Wire format for a prompt:
//
//	{
//	  "type": "user",
//	  "message": {"role": "user", "content": "Hello"},
//	  "session_id": "default"
//	}
//
// Wire format for a tool result:
//
//	{
//	  "type": "user",
//	  "message": {
//	    "role": "user",
//	    "content": [{"type": "tool_result", "tool_use_id": "tool-123", "content": "Result", "is_error": false}]
//	  },
//	  "parent_tool_use_id": "tool-123",
//	  "session_id": "default"
//	}
//
//nolint:tagliatelle // The CLI protocol uses snake_case
type InputMessage struct {
	Type            string   `json:"type"`
	Message         UserTurn `json:"message"`
	ParentToolUseID *string  `json:"parent_tool_use_id,omitempty"`
	SessionID       string   `json:"session_id"`
}

// UserTurn is the role/content pair carried by an InputMessage.
type UserTurn struct {
	Role    string      `json:"role"`
	Content TurnContent `json:"content"`
}

// ToolResultBlock carries the outcome of a tool invocation back to the process.
//
//nolint:tagliatelle // The CLI protocol uses snake_case
type ToolResultBlock struct {
	Type      string `json:"type"`
	ToolUseID string `json:"tool_use_id"`
	Content   string `json:"content"`
	IsError   bool   `json:"is_error"`
}

// NewUserInput creates a prompt message for the given session.
func NewUserInput(prompt string, sessionID string) *InputMessage {
	return &InputMessage{
		Type: TypeUser,
		Message: UserTurn{
			Role:    RoleUser,
			Content: NewTextContent(prompt),
		},
		SessionID: sessionID,
	}
}

// NewToolResultInput creates a tool result message answering toolUseID.
func NewToolResultInput(toolUseID, content, sessionID string, isError bool) *InputMessage {
	parent := toolUseID

	return &InputMessage{
		Type: TypeUser,
		Message: UserTurn{
			Role: RoleUser,
			Content: NewBlockContent([]ToolResultBlock{{
				Type:      BlockTypeToolResult,
				ToolUseID: toolUseID,
				Content:   content,
				IsError:   isError,
			}}),
		},
		ParentToolUseID: &parent,
		SessionID:       sessionID,
	}
}

// TurnContent represents content that can be either a string or []ToolResultBlock.
type TurnContent struct {
	text   *string           // Set when content is a string
	blocks []ToolResultBlock // Set when content is array of blocks
}

// NewTextContent creates TurnContent from a string.
func NewTextContent(text string) TurnContent {
	return TurnContent{text: &text}
}

// NewBlockContent creates TurnContent from blocks.
func NewBlockContent(blocks []ToolResultBlock) TurnContent {
	return TurnContent{blocks: blocks}
}

// String returns the string content if it was originally a string, or empty string.
func (c *TurnContent) String() string {
	if c.text != nil {
		return *c.text
	}

	return ""
}

// Blocks returns the content blocks, or nil for string content.
func (c *TurnContent) Blocks() []ToolResultBlock {
	return c.blocks
}

// IsString returns true if content was originally a string.
func (c *TurnContent) IsString() bool {
	return c.text != nil
}

// MarshalJSON implements json.Marshaler.
// Outputs string if content is string, otherwise outputs array of blocks.
func (c TurnContent) MarshalJSON() ([]byte, error) {
	if c.text != nil {
		return json.Marshal(*c.text)
	}

	if c.blocks == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(c.blocks)
}

// UnmarshalJSON implements json.Unmarshaler.
// Accepts both string and array of tool result blocks.
func (c *TurnContent) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.text = &text
		c.blocks = nil

		return nil
	}

	var blocks []ToolResultBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return fmt.Errorf("turn content is neither string nor blocks: %w", err)
	}

	c.blocks = blocks
	c.text = nil

	return nil
}
