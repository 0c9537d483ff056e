package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/agent"
	"github.com/wealthin/agent-backend/internal/ledger"
	"github.com/wealthin/agent-backend/internal/llm"
	"github.com/wealthin/agent-backend/internal/planning"
	"github.com/wealthin/agent-backend/internal/tools"
)

// actionCommitterAdapter implements tools.ActionCommitter over the Ledger
// and Planning stores, translating a confirmed agent action into the
// concrete write each store already exposes (spec §4.5/§9 "Global
// singletons" — the agent/tools packages never import ledger/planning
// directly; this adapter is the one place that bridges them).
type actionCommitterAdapter struct {
	ledger   *ledger.Store
	planning *planning.Store
}

func newActionCommitterAdapter(l *ledger.Store, p *planning.Store) tools.ActionCommitter {
	return &actionCommitterAdapter{ledger: l, planning: p}
}

func (a *actionCommitterAdapter) CommitBudget(ctx context.Context, userID, category string, amount decimal.Decimal, period string) (string, error) {
	p := planning.PeriodMonthly
	if period == string(planning.PeriodWeekly) {
		p = planning.PeriodWeekly
	}
	b, err := a.planning.CreateBudget(&planning.Budget{
		UserID:    userID,
		Name:      category,
		Category:  category,
		Amount:    amount,
		Period:    p,
		StartDate: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}
	return itoa64(b.ID), nil
}

func (a *actionCommitterAdapter) CommitGoal(ctx context.Context, userID, name string, target decimal.Decimal, deadline *time.Time) (string, error) {
	g, err := a.planning.CreateGoal(&planning.Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
		Status:       planning.GoalActive,
	})
	if err != nil {
		return "", err
	}
	return itoa64(g.ID), nil
}

func (a *actionCommitterAdapter) CommitScheduledPayment(ctx context.Context, userID, payee string, amount decimal.Decimal, dueDate time.Time, frequency string) (string, error) {
	freq := planning.FrequencyMonthly
	switch frequency {
	case string(planning.FrequencyDaily):
		freq = planning.FrequencyDaily
	case string(planning.FrequencyWeekly):
		freq = planning.FrequencyWeekly
	case string(planning.FrequencyYearly):
		freq = planning.FrequencyYearly
	}
	p, err := a.planning.CreateScheduledPayment(&planning.ScheduledPayment{
		UserID:      userID,
		Name:        payee,
		Amount:      amount,
		Frequency:   freq,
		DueDate:     dueDate,
		NextDueDate: dueDate,
		Status:      planning.PaymentActive,
	})
	if err != nil {
		return "", err
	}
	return itoa64(p.ID), nil
}

func (a *actionCommitterAdapter) CommitTransaction(ctx context.Context, userID, txType, category, description string, amount decimal.Decimal, date time.Time) (string, error) {
	typ := ledger.TypeExpense
	if txType == string(ledger.TypeIncome) {
		typ = ledger.TypeIncome
	}
	t, err := a.ledger.CreateTransaction(&ledger.Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Description: description,
		Date:        date,
	})
	if err != nil {
		return "", err
	}
	return itoa64(t.ID), nil
}

func itoa64(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// NewActionCommitter builds the tools.ActionCommitter the composition root
// wires into AgentHandler.
func NewActionCommitter(l *ledger.Store, p *planning.Store) tools.ActionCommitter {
	return newActionCommitterAdapter(l, p)
}

// AgentHandler exposes the C11 Agent's ReAct loop and C9's prepare/confirm
// action flow over HTTP (spec §6.1: /agent/chat, /agent/agentic-chat,
// /agent/confirm-action).
type AgentHandler struct {
	agent     *agent.Agent
	tokens    *tools.ActionTokens
	committer tools.ActionCommitter
}

func NewAgentHandler(a *agent.Agent, tokens *tools.ActionTokens, committer tools.ActionCommitter) *AgentHandler {
	return &AgentHandler{agent: a, tokens: tokens, committer: committer}
}

type agentChatRequest struct {
	UserID              string       `json:"user_id"`
	Query               string       `json:"query"`
	UserContext         string       `json:"user_context"`
	ConversationHistory []llmMessage `json:"conversation_history"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toLLMHistory(msgs []llmMessage) []llm.Message {
	out := make([]llm.Message, len(msgs))
	for i, m := range msgs {
		out[i] = llm.Message{Role: llm.Role(m.Role), Content: m.Content}
	}
	return out
}

// Chat handles POST /agent/chat.
func (h *AgentHandler) Chat(c echo.Context) error {
	var req agentChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" || req.Query == "" {
		return NewValidationError(c, "user_id and query are required", nil)
	}

	resp := h.agent.Run(c.Request().Context(), agent.Request{
		Query:               req.Query,
		UserContext:         req.UserContext,
		ConversationHistory: toLLMHistory(req.ConversationHistory),
		UserID:              req.UserID,
	})
	return c.JSON(http.StatusOK, resp)
}

// AgenticChat handles POST /agent/agentic-chat — same dispatch as Chat;
// the distinction is a client-facing label for callers advertising
// tool-use capability (spec §6.1 lists both routes, both resolving to
// the single Agent.Run loop of spec §4.6).
func (h *AgentHandler) AgenticChat(c echo.Context) error {
	return h.Chat(c)
}

type confirmActionRequest struct {
	UserID   string `json:"user_id"`
	ActionID string `json:"action_id"`
}

// ConfirmAction handles POST /agent/confirm-action.
func (h *AgentHandler) ConfirmAction(c echo.Context) error {
	var req confirmActionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" || req.ActionID == "" {
		return NewValidationError(c, "user_id and action_id are required", nil)
	}

	result := tools.ConfirmAction(c.Request().Context(), h.tokens, h.committer, req.UserID, req.ActionID)
	return c.JSON(http.StatusOK, result)
}
