package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/ledger"
)

// LedgerHandler exposes the C1 Ledger store's transaction CRUD, spending
// summary and cashflow reads (spec §4.1) — the HTTP surface table of
// spec §6.1 is "non-exhaustive"; these routes are the ledger's own CRUD
// surface underneath the agent/analytics endpoints already listed there.
type LedgerHandler struct {
	store *ledger.Store
}

func NewLedgerHandler(store *ledger.Store) *LedgerHandler {
	return &LedgerHandler{store: store}
}

type createTransactionRequest struct {
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	Date          time.Time       `json:"date"`
	Merchant      string          `json:"merchant"`
	PaymentMethod string          `json:"payment_method"`
	ReceiptURL    string          `json:"receipt_url"`
	IsRecurring   bool            `json:"is_recurring"`
}

// CreateTransaction handles POST /transactions.
func (h *LedgerHandler) CreateTransaction(c echo.Context) error {
	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	typ := ledger.TypeExpense
	if req.Type == string(ledger.TypeIncome) {
		typ = ledger.TypeIncome
	}
	t, err := h.store.CreateTransaction(&ledger.Transaction{
		UserID:        req.UserID,
		Amount:        req.Amount,
		Type:          typ,
		Category:      req.Category,
		Description:   req.Description,
		Notes:         req.Notes,
		Date:          req.Date,
		Merchant:      req.Merchant,
		PaymentMethod: req.PaymentMethod,
		ReceiptURL:    req.ReceiptURL,
		IsRecurring:   req.IsRecurring,
	})
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// ListTransactions handles GET /transactions.
func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	f := ledger.Filter{
		UserID:   c.QueryParam("user_id"),
		Category: c.QueryParam("category"),
		Type:     ledger.TransactionType(c.QueryParam("type")),
	}
	if f.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Offset = n
		}
	}
	if v := c.QueryParam("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DateFrom = &t
		}
	}
	if v := c.QueryParam("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DateTo = &t
		}
	}
	txns, err := h.store.QueryTransactions(f)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, txns)
}

// GetTransaction handles GET /transactions/:id.
func (h *LedgerHandler) GetTransaction(c echo.Context) error {
	userID := c.QueryParam("user_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID == "" {
		return NewValidationError(c, "user_id and a numeric id are required", nil)
	}
	t, err := h.store.GetTransaction(userID, id)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

type updateTransactionRequest struct {
	UserID      string `json:"user_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

// UpdateTransaction handles PATCH /transactions/:id.
func (h *LedgerHandler) UpdateTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "a numeric id is required", nil)
	}
	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	t, err := h.store.UpdateTransaction(req.UserID, id, req.Category, req.Description, req.Notes)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteTransaction handles DELETE /transactions/:id.
func (h *LedgerHandler) DeleteTransaction(c echo.Context) error {
	userID := c.QueryParam("user_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID == "" {
		return NewValidationError(c, "user_id and a numeric id are required", nil)
	}
	if err := h.store.DeleteTransaction(userID, id); err != nil {
		return RespondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SpendingSummary handles GET /transactions/summary.
func (h *LedgerHandler) SpendingSummary(c echo.Context) error {
	userID := c.QueryParam("user_id")
	start, end, err := parseRange(c)
	if err != nil || userID == "" {
		return NewValidationError(c, "user_id, start and end are required (YYYY-MM-DD)", nil)
	}
	summary, err := h.store.GetSpendingSummary(userID, start, end)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Cashflow handles GET /transactions/cashflow.
func (h *LedgerHandler) Cashflow(c echo.Context) error {
	userID := c.QueryParam("user_id")
	start, end, err := parseRange(c)
	if err != nil || userID == "" {
		return NewValidationError(c, "user_id, start and end are required (YYYY-MM-DD)", nil)
	}
	points, err := h.store.GetCashflow(userID, start, end)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, points)
}

func parseRange(c echo.Context) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.QueryParam("start"))
	if err != nil {
		return
	}
	end, err = time.Parse("2006-01-02", c.QueryParam("end"))
	return
}
