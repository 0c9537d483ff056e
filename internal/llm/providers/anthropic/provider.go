// Package anthropic implements llm.Gateway against Anthropic's API via
// the official anthropics/anthropic-sdk-go client — the concrete C8
// LLMGateway provider named in SPEC_FULL.md's domain stack.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/wealthin/agent-backend/internal/apperr"
	"github.com/wealthin/agent-backend/internal/llm"
)

// defaultMaxTokens bounds a single Chat call when the caller's router
// config does not override it.
const defaultMaxTokens = 4096

// Provider wraps an Anthropic client as an llm.Gateway.
type Provider struct {
	client    sdk.Client
	maxTokens int64
}

// New builds a Provider. apiKey empty means the caller should not wire
// this provider at all (apperr.NotConfigured is the agent's signal, not
// this constructor's).
func New(apiKey string) *Provider {
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	return &Provider{client: client, maxTokens: defaultMaxTokens}
}

func toSDKMessages(messages []llm.Message) ([]sdk.MessageParam, string) {
	var system string
	var out []sdk.MessageParam
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
		case llm.RoleUser:
			out = append(out, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		case llm.RoleAssistant:
			out = append(out, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		case llm.RoleTool:
			out = append(out, sdk.NewUserMessage(sdk.NewToolResultBlock(m.ToolCallID, m.Content, false)))
		}
	}
	return out, system
}

func toSDKTools(tools []llm.ToolSpec) []sdk.ToolUnionParam {
	out := make([]sdk.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		var schema sdk.ToolInputSchemaParam
		if len(t.Schema) > 0 {
			_ = json.Unmarshal(t.Schema, &schema)
		}
		out = append(out, sdk.ToolUnionParam{
			OfTool: &sdk.ToolParam{
				Name:        t.Name,
				Description: sdk.String(t.Description),
				InputSchema: schema,
			},
		})
	}
	return out
}

// Chat implements llm.Gateway. Tool-call arguments arrive from the SDK as
// arbitrary nested JSON; gjson/sjson normalize them into the flat
// json-object shape spec §6.3 expects tool dispatch to receive.
func (p *Provider) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec, model string) (*llm.ChatResponse, error) {
	if model == "" {
		model = string(sdk.ModelClaude3_5SonnetLatest)
	}

	sdkMessages, system := toSDKMessages(messages)
	params := sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: p.maxTokens,
		Messages:  sdkMessages,
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}
	if len(tools) > 0 {
		params.Tools = toSDKTools(tools)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperr.Cancelled("anthropic chat cancelled")
		}
		return nil, apperr.Transient("anthropic chat failed", err)
	}

	out := &llm.ChatResponse{Model: model}
	for _, block := range resp.Content {
		switch variant := block.AsAny().(type) {
		case sdk.TextBlock:
			out.Content += variant.Text
		case sdk.ToolUseBlock:
			args, normErr := normalizeArguments(variant.Input)
			if normErr != nil {
				args = variant.Input
			}
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:        variant.ID,
				Name:      variant.Name,
				Arguments: args,
			})
		}
	}
	return out, nil
}

// normalizeArguments re-serializes raw tool-input JSON through gjson/sjson
// so every provider's idiosyncratic nesting (e.g. a top-level "input"
// wrapper some providers add) collapses to one flat object before the
// Agent's tool dispatcher sees it.
func normalizeArguments(raw json.RawMessage) (json.RawMessage, error) {
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() {
		return raw, nil
	}
	if wrapped := parsed.Get("input"); wrapped.Exists() && wrapped.IsObject() {
		return json.RawMessage(wrapped.Raw), nil
	}

	out := "{}"
	var setErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		out, setErr = sjson.SetRaw(out, key.String(), value.Raw)
		return setErr == nil
	})
	if setErr != nil {
		return nil, fmt.Errorf("normalize tool arguments: %w", setErr)
	}
	return json.RawMessage(out), nil
}
