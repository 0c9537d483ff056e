// Package tools implements the C9 Tools described in spec §4.5: every
// tool is a {name, description, json_schema, handler} record returning a
// structured {success, action, data, message, needs_confirmation, error}
// result, grouped into four families the Agent (C11) and Router (C10)
// draw tool subsets from.
package tools

import (
	"context"
	"encoding/json"

	"github.com/wealthin/agent-backend/internal/llm"
)

// Family groups tools so a caller can offer the model a restricted subset
// (spec §4.6 step 2: "TRANSACTION: ... tool set restricted to ledger-write
// prepares + calculators").
type Family string

const (
	FamilyCalculator Family = "calculator"
	FamilyKnowledge  Family = "knowledge"
	FamilyAction     Family = "action"
	FamilySearch     Family = "search"
)

// Result is the structured return value every handler produces (spec §4.5).
type Result struct {
	Success           bool   `json:"success"`
	Action            string `json:"action"`
	Data              any    `json:"data,omitempty"`
	Message           string `json:"message"`
	NeedsConfirmation bool   `json:"needs_confirmation,omitempty"`
	RequiresData      bool   `json:"requires_data,omitempty"`
	Error             string `json:"error,omitempty"`
}

// maxResultChars matches spec §4.6 step 3: "Tool results are serialized
// as JSON (trimmed to <=1000 characters) before appending."
const maxResultChars = 1000

// JSON serializes the result and trims it to the Agent loop's message
// budget.
func (r Result) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return `{"success":false,"error":"result serialization failed"}`
	}
	s := string(b)
	if len(s) > maxResultChars {
		s = s[:maxResultChars]
	}
	return s
}

func ok(action string, data any, message string) Result {
	return Result{Success: true, Action: action, Data: data, Message: message}
}

func failed(action, errMsg string) Result {
	return Result{Success: false, Action: action, Error: errMsg, Message: errMsg}
}

// Handler executes one tool call. args is the model-supplied JSON object.
type Handler func(ctx context.Context, userID string, args json.RawMessage) Result

// Tool bundles a handler with the metadata advertised to the Gateway.
type Tool struct {
	Name        string
	Description string
	Family      Family
	Schema      json.RawMessage
	Handle      Handler
}

// Registry holds every registered tool, keyed by name, and can produce the
// llm.ToolSpec subset for a given set of families.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, overwriting any prior registration of the same name.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// Specs returns llm.ToolSpec entries for every tool in the given families,
// in registration order. No families means every registered tool.
func (r *Registry) Specs(families ...Family) []llm.ToolSpec {
	want := make(map[Family]bool, len(families))
	for _, f := range families {
		want[f] = true
	}
	var out []llm.ToolSpec
	for _, name := range r.order {
		t := r.tools[name]
		if len(want) > 0 && !want[t.Family] {
			continue
		}
		out = append(out, llm.ToolSpec{Name: t.Name, Description: t.Description, Schema: t.Schema})
	}
	return out
}

// Dispatch runs the named tool, or returns a failed Result if it is unknown.
func (r *Registry) Dispatch(ctx context.Context, userID, name string, args json.RawMessage) Result {
	t, found := r.tools[name]
	if !found {
		return failed(name, "unknown tool: "+name)
	}
	return t.Handle(ctx, userID, args)
}
