package agent_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/agent"
	"github.com/wealthin/agent-backend/internal/llm"
	"github.com/wealthin/agent-backend/internal/llm/providers/mock"
	"github.com/wealthin/agent-backend/internal/router"
	"github.com/wealthin/agent-backend/internal/tools"
)

func newRegistry(t *testing.T) (*tools.Registry, *tools.ActionTokens) {
	t.Helper()
	r := tools.NewRegistry()
	tools.RegisterCalculators(r)
	tools.RegisterGovTools(r)
	tokens := tools.NewActionTokens("test-secret")
	tools.RegisterActionTools(r, tokens)
	return r, tokens
}

func toolCallArgs(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// Scenario 6 (spec §8): a budget-creation query returns needs_confirmation
// with action data and never commits on its own.
func TestRun_TransactionPath_PreparesBudgetWithoutCommitting(t *testing.T) {
	registry, _ := newRegistry(t)
	provider := mock.New(llm.ChatResponse{
		ToolCalls: []llm.ToolCall{{
			ID:        "call-1",
			Name:      "create_budget",
			Arguments: toolCallArgs(t, map[string]any{"category": "food", "amount": 5000}),
		}},
	})
	rtr := router.New(nil)
	a := agent.New(provider, registry, rtr, nil, "")

	resp := a.Run(context.Background(), agent.Request{
		Query:  "create a monthly budget of 5000 for food",
		UserID: "user-1",
	})

	require.True(t, resp.NeedsConfirmation)
	require.Equal(t, "create_budget", resp.ActionType)
	require.Equal(t, router.LabelTransaction, router.Label(resp.QueryType))
}

// P7: the agent never makes more than K (=5) LLM calls in the ReAct loop.
func TestRun_ReActLoop_BoundedByK(t *testing.T) {
	registry, _ := newRegistry(t)

	loopingCall := llm.ChatResponse{
		ToolCalls: []llm.ToolCall{{
			ID:        "call-loop",
			Name:      "calculate_sip",
			Arguments: toolCallArgs(t, map[string]any{"monthly_investment": 1000, "annual_rate_pct": 10, "duration_months": 12}),
		}},
	}
	responses := make([]llm.ChatResponse, 10)
	for i := range responses {
		responses[i] = loopingCall
	}
	provider := mock.New(responses...)
	rtr := router.New(nil)
	a := agent.New(provider, registry, rtr, nil, "")

	resp := a.Run(context.Background(), agent.Request{Query: "hello there", UserID: "user-1"})

	require.LessOrEqual(t, provider.Calls(), 5)
	require.NotEmpty(t, resp.ResponseText)
}

// P8: cancellation observed before an iteration stops further tool dispatch.
func TestRun_CancelledContext_ReturnsCancelledResponse(t *testing.T) {
	registry, _ := newRegistry(t)
	provider := mock.New(llm.ChatResponse{Content: "should never be reached"})
	rtr := router.New(nil)
	a := agent.New(provider, registry, rtr, nil, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := a.Run(ctx, agent.Request{Query: "hello there", UserID: "user-1"})
	require.Equal(t, "Request cancelled.", resp.ResponseText)
	require.Equal(t, 0, provider.Calls())
}

func TestRun_GovAPIPath_VerifiesPANWithoutLLMCall(t *testing.T) {
	registry, _ := newRegistry(t)
	provider := mock.New(llm.ChatResponse{Content: "should never be reached"})
	rtr := router.New(nil)
	a := agent.New(provider, registry, rtr, nil, "")

	resp := a.Run(context.Background(), agent.Request{Query: "verify PAN ABCDE1234F please", UserID: "user-1"})
	require.Equal(t, 0, provider.Calls())
	require.Equal(t, "gov_verify_pan", resp.ActionType)
}

func TestRun_SimplePath_ReturnsCleanedFinalAnswer(t *testing.T) {
	registry, _ := newRegistry(t)
	provider := mock.New(llm.ChatResponse{Content: "Final Answer: hi there\n\n\n\nhow can I help?"})
	rtr := router.New(nil)
	a := agent.New(provider, registry, rtr, nil, "")

	resp := a.Run(context.Background(), agent.Request{Query: "hello there", UserID: "user-1"})
	require.Equal(t, "hi there\n\nhow can I help?", resp.ResponseText)
}
