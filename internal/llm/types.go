// Package llm implements the C8 LLMGateway from spec §4.6: a uniform
// Chat(messages, tools?, model) -> {content, tool_calls?} contract that
// every provider (and the provider-fallback wrapper) satisfies, keeping
// the Agent decoupled from any one vendor's wire shape (spec §9 "Runtime
// reflection / duck typing" design note).
package llm

import (
	"context"
	"encoding/json"
)

// Role mirrors the ABI in spec §6.3.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of the conversation passed to Chat.
type Message struct {
	Role       Role   `json:"role"`
	Content    string `json:"content"`
	ToolCallID string `json:"tool_call_id,omitempty"` // set on role=tool messages
	Name       string `json:"name,omitempty"`         // tool name, set on role=tool messages
}

// ToolSpec is how a tool is advertised to the Gateway; the JSON schema is
// kept opaque here and translated to each provider's shape at the
// provider boundary (spec §9 "Dynamic tool schemas").
type ToolSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
}

// ToolCall is one tool invocation the model asked for.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ChatResponse is the Gateway's single typed return shape (spec §9):
// ToolCalls is nil/empty when the model produced a final answer.
type ChatResponse struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Model     string     `json:"model"`
}

// Gateway is the provider-agnostic contract from spec §4.6.
type Gateway interface {
	Chat(ctx context.Context, messages []Message, tools []ToolSpec, model string) (*ChatResponse, error)
}
