package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wealthin/agent-backend/internal/scheme"
)

// SchemeHandler exposes C12's deterministic MSME loan-scheme eligibility
// engine over HTTP (SPEC_FULL.md's supplement of the original
// SchemeCompatibilityService). It never calls an LLM — see scheme.Assess.
type SchemeHandler struct{}

func NewSchemeHandler() *SchemeHandler { return &SchemeHandler{} }

type schemeHistoryDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type schemeAssessRequest struct {
	Message string                 `json:"message"`
	Profile map[string]any         `json:"profile"`
	History []schemeHistoryDTO     `json:"history"`
}

// Assess handles POST /scheme/assess.
func (h *SchemeHandler) Assess(c echo.Context) error {
	var req schemeAssessRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	history := make([]scheme.Message, len(req.History))
	for i, e := range req.History {
		history[i] = scheme.Message{Content: e.Content}
	}

	report := scheme.Assess(req.Message, scheme.RawProfile(req.Profile), history)
	return c.JSON(http.StatusOK, echo.Map{
		"report":  report,
		"summary": scheme.RenderMarkdownSummary(report),
	})
}
