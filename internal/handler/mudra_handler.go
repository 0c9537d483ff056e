package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wealthin/agent-backend/internal/docs"
	"github.com/wealthin/agent-backend/internal/mudra"
)

// MudraHandler exposes C6 over HTTP (spec §6.1: /mudra-dpr/calculate,
// /mudra-dpr/whatif), persisting each result via the Docs store's
// upsert-by-month MudraDPR document.
type MudraHandler struct {
	docs *docs.Store
}

func NewMudraHandler(docsStore *docs.Store) *MudraHandler {
	return &MudraHandler{docs: docsStore}
}

type mudraCalculateRequest struct {
	UserID string               `json:"user_id"`
	Input  mudra.MudraDPRInput  `json:"input"`
}

// Calculate handles POST /mudra-dpr/calculate.
func (h *MudraHandler) Calculate(c echo.Context) error {
	var req mudraCalculateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	output := mudra.CalculateDPR(req.Input)

	payload, err := json.Marshal(output)
	if err != nil {
		return RespondErr(c, err)
	}
	month := time.Now().UTC().Format("2006-01")
	if _, err := h.docs.UpsertMudraDPR(req.UserID, month, payload); err != nil {
		return RespondErr(c, err)
	}

	return c.JSON(http.StatusOK, output)
}

type mudraWhatIfRequest struct {
	UserID   string          `json:"user_id"`
	Base     mudra.MudraDPRInput `json:"base"`
	Override json.RawMessage `json:"override"` // partial MudraDPRInput JSON merged onto base
}

// WhatIf handles POST /mudra-dpr/whatif: re-runs CalculateDPR with a
// subset of fields overridden, without persisting anything (spec §4.7's
// what-if mechanism is a scratch comparison, never stored).
func (h *MudraHandler) WhatIf(c echo.Context) error {
	var req mudraWhatIfRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	output := mudra.WhatIf(req.Base, func(in *mudra.MudraDPRInput) {
		if len(req.Override) == 0 {
			return
		}
		modified := *in
		if err := json.Unmarshal(req.Override, &modified); err == nil {
			*in = modified
		}
	})

	return c.JSON(http.StatusOK, output)
}
