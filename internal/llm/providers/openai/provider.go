// Package openai implements llm.Gateway against OpenAI's chat completions
// API. No OpenAI SDK appears anywhere in the retrieved pack (only
// anthropics/anthropic-sdk-go is vendored), so this provider is a plain
// net/http client over the documented REST shape, the same way
// internal/extract/docintel and internal/extract/receipt talk to
// providers with no vendored SDK.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/wealthin/agent-backend/internal/apperr"
	"github.com/wealthin/agent-backend/internal/llm"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

const defaultModel = "gpt-4o-mini"

// Provider wraps OpenAI's chat completions endpoint as an llm.Gateway,
// intended as a FallbackGateway member alongside providers/anthropic.
type Provider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// New builds a Provider, or nil when apiKey is empty — callers must check
// before wiring it into a FallbackGateway chain (the NotConfigured
// collaborator pattern used throughout internal/llm and internal/extract).
func New(apiKey string) *Provider {
	if apiKey == "" {
		return nil
	}
	return &Provider{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role       string          `json:"role"`
	Content    string          `json:"content,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	Name       string          `json:"name,omitempty"`
	ToolCalls  []toolCallWire  `json:"tool_calls,omitempty"`
}

type toolCallWire struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type toolWire struct {
	Type     string `json:"type"`
	Function struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Parameters  json.RawMessage `json:"parameters,omitempty"`
	} `json:"function"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Tools    []toolWire    `json:"tools,omitempty"`
}

type chatResponseWire struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Model string `json:"model"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func toWireMessages(messages []llm.Message) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		wire := chatMessage{Role: string(m.Role), Content: m.Content}
		if m.Role == llm.RoleTool {
			wire.ToolCallID = m.ToolCallID
			wire.Name = m.Name
		}
		out = append(out, wire)
	}
	return out
}

func toWireTools(tools []llm.ToolSpec) []toolWire {
	out := make([]toolWire, 0, len(tools))
	for _, t := range tools {
		w := toolWire{Type: "function"}
		w.Function.Name = t.Name
		w.Function.Description = t.Description
		w.Function.Parameters = t.Schema
		out = append(out, w)
	}
	return out
}

// Chat implements llm.Gateway. Tool-call arguments come back as a
// stringified JSON blob per OpenAI's wire format; gjson/sjson (the same
// pair providers/anthropic uses) re-serialize it into the flat
// json.RawMessage shape the Agent's tool dispatcher expects.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec, model string) (*llm.ChatResponse, error) {
	if model == "" {
		model = defaultModel
	}

	reqBody := chatRequest{
		Model:    model,
		Messages: toWireMessages(messages),
	}
	if len(tools) > 0 {
		reqBody.Tools = toWireTools(tools)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperr.Internal("marshal openai request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Internal("build openai request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperr.Cancelled("openai chat cancelled")
		}
		return nil, apperr.Transient("openai chat request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Transient("read openai response", err)
	}

	var wire chatResponseWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, apperr.Internal("parse openai response", err)
	}
	if resp.StatusCode >= 500 {
		return nil, apperr.Transient(fmt.Sprintf("openai chat failed: %d", resp.StatusCode), nil)
	}
	if wire.Error != nil {
		return nil, apperr.Transient("openai chat error: "+wire.Error.Message, nil)
	}
	if resp.StatusCode >= 400 {
		return nil, apperr.Internal(fmt.Sprintf("openai chat failed: %d", resp.StatusCode), nil)
	}
	if len(wire.Choices) == 0 {
		return nil, apperr.Transient("openai chat returned no choices", nil)
	}

	out := &llm.ChatResponse{Content: wire.Choices[0].Message.Content, Model: model}
	for _, tc := range wire.Choices[0].Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: normalizeArguments(tc.Function.Arguments),
		})
	}
	return out, nil
}

// normalizeArguments re-serializes the stringified JSON arguments blob
// into a canonical flat object, matching providers/anthropic's treatment
// of its own provider-specific argument wrapping.
func normalizeArguments(raw string) json.RawMessage {
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return json.RawMessage(raw)
	}
	out := "{}"
	var setErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		out, setErr = sjson.SetRaw(out, key.String(), value.Raw)
		return setErr == nil
	})
	if setErr != nil {
		return json.RawMessage(raw)
	}
	return json.RawMessage(out)
}
