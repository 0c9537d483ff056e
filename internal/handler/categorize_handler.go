package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wealthin/agent-backend/internal/categorize"
	"github.com/wealthin/agent-backend/internal/llm"
	"github.com/wealthin/agent-backend/internal/planning"
)

// planningRuleSource adapts planning.Store to categorize.RuleSource (spec
// §4.4's priority chain reads a user's merchant rules before falling
// back to the builtin table and the LLM).
type planningRuleSource struct {
	store *planning.Store
}

func NewPlanningRuleSource(store *planning.Store) categorize.RuleSource {
	return &planningRuleSource{store: store}
}

func (s *planningRuleSource) ListMerchantRules(userID string) ([]categorize.Rule, error) {
	rules, err := s.store.ListMerchantRules(userID)
	if err != nil {
		return nil, err
	}
	out := make([]categorize.Rule, len(rules))
	for i, r := range rules {
		out[i] = categorize.Rule{Keyword: r.Keyword, Category: r.Category}
	}
	return out, nil
}

// gatewayCategorizer adapts an llm.Gateway into categorize.LLMCategorizer
// (spec §4.4 step 3: a single-shot "what category is this?" prompt).
type gatewayCategorizer struct {
	gateway llm.Gateway
	model   string
}

func NewGatewayCategorizer(gateway llm.Gateway, model string) categorize.LLMCategorizer {
	if gateway == nil {
		return nil
	}
	return &gatewayCategorizer{gateway: gateway, model: model}
}

func (g *gatewayCategorizer) Categorize(ctx context.Context, description string) (string, bool, error) {
	resp, err := g.gateway.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: "Reply with a single short spending category name for the given transaction description. No punctuation, no explanation."},
		{Role: llm.RoleUser, Content: description},
	}, nil, g.model)
	if err != nil {
		return "", false, err
	}
	category := strings.TrimSpace(resp.Content)
	if category == "" {
		return "", false, nil
	}
	return category, true, nil
}

func (g *gatewayCategorizer) CategorizeBatch(ctx context.Context, descriptions []string) ([]string, error) {
	out := make([]string, len(descriptions))
	for i, d := range descriptions {
		cat, ok, err := g.Categorize(ctx, d)
		if err != nil {
			return nil, err
		}
		if !ok {
			cat = categorize.CategoryOther
		}
		out[i] = cat
	}
	return out, nil
}

// CategorizeHandler exposes C3 over HTTP (spec §6.1: /categorize,
// /categorize/batch).
type CategorizeHandler struct {
	rules categorize.RuleSource
	llm   categorize.LLMCategorizer
}

func NewCategorizeHandler(rules categorize.RuleSource, llmCat categorize.LLMCategorizer) *CategorizeHandler {
	return &CategorizeHandler{rules: rules, llm: llmCat}
}

type categorizeRequest struct {
	UserID      string `json:"user_id"`
	Description string `json:"description"`
}

// Categorize handles POST /categorize.
func (h *CategorizeHandler) Categorize(c echo.Context) error {
	var req categorizeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" || req.Description == "" {
		return NewValidationError(c, "user_id and description are required", nil)
	}
	result, err := categorize.Categorize(c.Request().Context(), req.Description, h.rules, req.UserID, h.llm)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

type categorizeBatchRequest struct {
	UserID       string   `json:"user_id"`
	Descriptions []string `json:"descriptions"`
}

// CategorizeBatch handles POST /categorize/batch.
func (h *CategorizeHandler) CategorizeBatch(c echo.Context) error {
	var req categorizeBatchRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" || len(req.Descriptions) == 0 {
		return NewValidationError(c, "user_id and descriptions are required", nil)
	}
	items, err := categorize.CategorizeBatch(c.Request().Context(), req.Descriptions, h.rules, req.UserID, h.llm)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
