package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/planning"
)

// PlanningHandler exposes the C1 Planning store's budget, goal,
// scheduled-payment and merchant-rule CRUD (spec §4.1/§4.4); the
// `/merchant-rules` route is explicitly named in spec §6.1, the rest
// are the planning store's own surface underneath it.
type PlanningHandler struct {
	store *planning.Store
}

func NewPlanningHandler(store *planning.Store) *PlanningHandler {
	return &PlanningHandler{store: store}
}

type createBudgetRequest struct {
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	StartDate time.Time       `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
	Icon      string          `json:"icon"`
}

// CreateBudget handles POST /budgets.
func (h *PlanningHandler) CreateBudget(c echo.Context) error {
	var req createBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" || req.Category == "" {
		return NewValidationError(c, "user_id and category are required", nil)
	}
	period := planning.PeriodMonthly
	switch req.Period {
	case string(planning.PeriodWeekly):
		period = planning.PeriodWeekly
	case string(planning.PeriodYearly):
		period = planning.PeriodYearly
	}
	start := req.StartDate
	if start.IsZero() {
		start = time.Now().UTC()
	}
	b, err := h.store.CreateBudget(&planning.Budget{
		UserID:    req.UserID,
		Name:      req.Name,
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    period,
		StartDate: start,
		EndDate:   req.EndDate,
		Icon:      req.Icon,
	})
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// ListBudgets handles GET /budgets.
func (h *PlanningHandler) ListBudgets(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	budgets, err := h.store.ListBudgets(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, budgets)
}

// DeleteBudget handles DELETE /budgets/:id.
func (h *PlanningHandler) DeleteBudget(c echo.Context) error {
	userID := c.QueryParam("user_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID == "" {
		return NewValidationError(c, "user_id and a numeric id are required", nil)
	}
	if err := h.store.DeleteBudget(userID, id); err != nil {
		return RespondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type createGoalRequest struct {
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     *time.Time      `json:"deadline"`
	Icon         string          `json:"icon"`
	Notes        string          `json:"notes"`
}

// CreateGoal handles POST /goals.
func (h *PlanningHandler) CreateGoal(c echo.Context) error {
	var req createGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" || req.Name == "" {
		return NewValidationError(c, "user_id and name are required", nil)
	}
	g, err := h.store.CreateGoal(&planning.Goal{
		UserID:       req.UserID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		Status:       planning.GoalActive,
		Icon:         req.Icon,
		Notes:        req.Notes,
	})
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

// ListGoals handles GET /goals.
func (h *PlanningHandler) ListGoals(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	goals, err := h.store.ListGoals(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, goals)
}

type addFundsRequest struct {
	UserID string          `json:"user_id"`
	Delta  decimal.Decimal `json:"delta"`
}

// AddFunds handles POST /goals/:id/add-funds.
func (h *PlanningHandler) AddFunds(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "a numeric id is required", nil)
	}
	var req addFundsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	g, err := h.store.AddFunds(req.UserID, id, req.Delta)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

type createScheduledPaymentRequest struct {
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Frequency    string          `json:"frequency"`
	DueDate      time.Time       `json:"due_date"`
	IsAutopay    bool            `json:"is_autopay"`
	ReminderDays int             `json:"reminder_days"`
	PaymentType  string          `json:"payment_type"`
}

// CreateScheduledPayment handles POST /scheduled-payments.
func (h *PlanningHandler) CreateScheduledPayment(c echo.Context) error {
	var req createScheduledPaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" || req.Name == "" {
		return NewValidationError(c, "user_id and name are required", nil)
	}
	freq := planning.FrequencyMonthly
	switch req.Frequency {
	case string(planning.FrequencyDaily):
		freq = planning.FrequencyDaily
	case string(planning.FrequencyWeekly):
		freq = planning.FrequencyWeekly
	case string(planning.FrequencyYearly):
		freq = planning.FrequencyYearly
	}
	payType := planning.PaymentTypeRegular
	switch req.PaymentType {
	case string(planning.PaymentTypeLoan):
		payType = planning.PaymentTypeLoan
	case string(planning.PaymentTypeEMI):
		payType = planning.PaymentTypeEMI
	}
	p, err := h.store.CreateScheduledPayment(&planning.ScheduledPayment{
		UserID:       req.UserID,
		Name:         req.Name,
		Amount:       req.Amount,
		Category:     req.Category,
		Frequency:    freq,
		DueDate:      req.DueDate,
		NextDueDate:  req.DueDate,
		IsAutopay:    req.IsAutopay,
		Status:       planning.PaymentActive,
		ReminderDays: req.ReminderDays,
		PaymentType:  payType,
	})
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// ListScheduledPayments handles GET /scheduled-payments.
func (h *PlanningHandler) ListScheduledPayments(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	payments, err := h.store.ListScheduledPayments(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

type markPaidRequest struct {
	UserID string `json:"user_id"`
}

// MarkPaid handles POST /scheduled-payments/:id/mark-paid.
func (h *PlanningHandler) MarkPaid(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "a numeric id is required", nil)
	}
	var req markPaidRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	p, err := h.store.MarkPaid(req.UserID, id, time.Now().UTC())
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type createMerchantRuleRequest struct {
	UserID   string `json:"user_id"`
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	IsAuto   bool   `json:"is_auto"`
}

// CreateMerchantRule handles POST /merchant-rules.
func (h *PlanningHandler) CreateMerchantRule(c echo.Context) error {
	var req createMerchantRuleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	if req.UserID == "" || req.Keyword == "" || req.Category == "" {
		return NewValidationError(c, "user_id, keyword and category are required", nil)
	}
	r, err := h.store.CreateMerchantRule(&planning.MerchantRule{
		UserID:   req.UserID,
		Keyword:  req.Keyword,
		Category: req.Category,
		IsAuto:   req.IsAuto,
	})
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// ListMerchantRules handles GET /merchant-rules.
func (h *PlanningHandler) ListMerchantRules(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	rules, err := h.store.ListMerchantRules(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, rules)
}

// DeleteMerchantRule handles DELETE /merchant-rules/:id.
func (h *PlanningHandler) DeleteMerchantRule(c echo.Context) error {
	userID := c.QueryParam("user_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID == "" {
		return NewValidationError(c, "user_id and a numeric id are required", nil)
	}
	if err := h.store.DeleteMerchantRule(userID, id); err != nil {
		return RespondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
