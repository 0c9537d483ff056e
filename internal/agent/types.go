// Package agent implements the C11 Agent: the bounded ReAct loop spec §4.6
// calls "the core of this spec", dispatching a classified query to one of
// six paths and producing a single structured response the HTTP edge
// never has to unwrap further (spec §9 "Runtime reflection / duck typing"
// design note — no dict-or-object ambiguity survives past this package).
package agent

import (
	"github.com/wealthin/agent-backend/internal/llm"
)

// Request is the Agent's input (spec §4.6: "(query, user_context, history)").
// UserContext is expected to already carry any trends/profile summary the
// caller wants folded into the system prompt (spec §4.6 step 3's
// "trends_context") — the Agent itself never queries Analytics directly,
// keeping it decoupled from the other C-components per the composition-
// root wiring pattern (spec §9 "Global singletons").
type Request struct {
	Query              string
	UserContext        string
	ConversationHistory []llm.Message
	UserID             string
}

// Response is the Agent's single typed output shape (spec §4.6: "(response_text,
// action_taken, action_type?, action_data?, needs_confirmation, sources[],
// model_used)").
type Response struct {
	ResponseText      string   `json:"response"`
	ActionTaken       bool     `json:"action_taken"`
	ActionType        string   `json:"action_type,omitempty"`
	ActionData        any      `json:"action_data,omitempty"`
	NeedsConfirmation bool     `json:"needs_confirmation"`
	Sources           []string `json:"sources,omitempty"`
	ModelUsed         string   `json:"model_used"`
	QueryType         string   `json:"query_type"`
}
