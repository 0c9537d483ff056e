package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wealthin/agent-backend/internal/brainstorm"
)

// BrainstormHandler exposes C13's Orchestrator over HTTP (SPEC_FULL.md's
// supplement of the original three-stage ideation flow: Input/Refinery/
// Anchor).
type BrainstormHandler struct {
	orch *brainstorm.Orchestrator
}

func NewBrainstormHandler(orch *brainstorm.Orchestrator) *BrainstormHandler {
	return &BrainstormHandler{orch: orch}
}

type historyEntryDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toHistory(entries []historyEntryDTO) []brainstorm.HistoryEntry {
	out := make([]brainstorm.HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = brainstorm.HistoryEntry{Role: e.Role, Content: e.Content}
	}
	return out
}

type brainstormRequest struct {
	Message         string            `json:"message"`
	History         []historyEntryDTO `json:"history"`
	Persona         string            `json:"persona"`
	EnableWebSearch bool              `json:"enable_web_search"`
	SearchCategory  string            `json:"search_category"`
}

// Brainstorm handles POST /brainstorm/chat.
func (h *BrainstormHandler) Brainstorm(c echo.Context) error {
	var req brainstormRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.Message == "" {
		return NewValidationError(c, "message is required", nil)
	}

	msg := h.orch.Brainstorm(c.Request().Context(), req.Message, toHistory(req.History), brainstorm.Options{
		Persona:         brainstorm.Persona(req.Persona),
		EnableWebSearch: req.EnableWebSearch,
		SearchCategory:  req.SearchCategory,
	})
	return c.JSON(http.StatusOK, msg)
}

type reverseBrainstormRequest struct {
	Ideas   []string          `json:"ideas"`
	History []historyEntryDTO `json:"history"`
}

// ReverseBrainstorm handles POST /brainstorm/critique: the Refinery stage.
func (h *BrainstormHandler) ReverseBrainstorm(c echo.Context) error {
	var req reverseBrainstormRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if len(req.Ideas) == 0 {
		return NewValidationError(c, "ideas is required", nil)
	}
	msg := h.orch.ReverseBrainstorm(c.Request().Context(), req.Ideas, toHistory(req.History))
	return c.JSON(http.StatusOK, msg)
}

type extractCanvasRequest struct {
	History []historyEntryDTO `json:"history"`
}

// ExtractCanvas handles POST /brainstorm/canvas: the Anchor stage.
func (h *BrainstormHandler) ExtractCanvas(c echo.Context) error {
	var req extractCanvasRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	result := h.orch.ExtractCanvasCandidates(c.Request().Context(), toHistory(req.History))
	return c.JSON(http.StatusOK, result)
}
