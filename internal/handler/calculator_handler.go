package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/calculator"
)

// CalculatorHandler exposes the C5 pure financial calculators (spec
// §4.4/§6.1) — no persistence, no auth beyond the HTTP shell's.
type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler { return &CalculatorHandler{} }

type sipRequest struct {
	MonthlyInvestment decimal.Decimal `json:"monthly_investment"`
	AnnualRatePct     decimal.Decimal `json:"annual_rate_pct"`
	DurationMonths    int             `json:"duration_months"`
}

// SIP handles POST /calculator/sip.
func (h *CalculatorHandler) SIP(c echo.Context) error {
	var req sipRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	return c.JSON(http.StatusOK, calculator.SIP(req.MonthlyInvestment, req.AnnualRatePct, req.DurationMonths))
}

type emiRequest struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	TenureMonths  int             `json:"tenure_months"`
}

// EMI handles POST /calculator/emi.
func (h *CalculatorHandler) EMI(c echo.Context) error {
	var req emiRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	return c.JSON(http.StatusOK, calculator.EMI(req.Principal, req.AnnualRatePct, req.TenureMonths))
}

type fdRequest struct {
	Principal          decimal.Decimal `json:"principal"`
	AnnualRatePct       decimal.Decimal `json:"annual_rate_pct"`
	Years               decimal.Decimal `json:"years"`
	CompoundingPerYear  int             `json:"compounding_per_year"`
}

// FD handles POST /calculator/fd.
func (h *CalculatorHandler) FD(c echo.Context) error {
	var req fdRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	return c.JSON(http.StatusOK, calculator.FD(req.Principal, req.AnnualRatePct, req.Years, req.CompoundingPerYear))
}

type rdRequest struct {
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	AnnualRatePct      decimal.Decimal `json:"annual_rate_pct"`
	TenureMonths       int             `json:"tenure_months"`
}

// RD handles POST /calculator/rd.
func (h *CalculatorHandler) RD(c echo.Context) error {
	var req rdRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	return c.JSON(http.StatusOK, calculator.RD(req.MonthlyInstallment, req.AnnualRatePct, req.TenureMonths))
}

type lumpsumRequest struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	Years         decimal.Decimal `json:"years"`
}

// Lumpsum handles POST /calculator/lumpsum.
func (h *CalculatorHandler) Lumpsum(c echo.Context) error {
	var req lumpsumRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	return c.JSON(http.StatusOK, calculator.Lumpsum(req.Principal, req.AnnualRatePct, req.Years))
}

type cagrRequest struct {
	InitialValue decimal.Decimal `json:"initial_value"`
	FinalValue   decimal.Decimal `json:"final_value"`
	Years        decimal.Decimal `json:"years"`
}

// CAGR handles POST /calculator/cagr.
func (h *CalculatorHandler) CAGR(c echo.Context) error {
	var req cagrRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	return c.JSON(http.StatusOK, echo.Map{"cagr_pct": calculator.CAGR(req.InitialValue, req.FinalValue, req.Years)})
}

type goalSIPRequest struct {
	TargetAmount   decimal.Decimal `json:"target_amount"`
	AnnualRatePct  decimal.Decimal `json:"annual_rate_pct"`
	DurationMonths int             `json:"duration_months"`
}

// GoalSIP handles POST /calculator/goal-sip.
func (h *CalculatorHandler) GoalSIP(c echo.Context) error {
	var req goalSIPRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	return c.JSON(http.StatusOK, calculator.GoalSIP(req.TargetAmount, req.AnnualRatePct, req.DurationMonths))
}

type compoundInterestRequest struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	Years         decimal.Decimal `json:"years"`
	TimesPerYear  int             `json:"times_per_year"`
}

// CompoundInterest handles POST /calculator/compound-interest.
func (h *CalculatorHandler) CompoundInterest(c echo.Context) error {
	var req compoundInterestRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	return c.JSON(http.StatusOK, calculator.CompoundInterest(req.Principal, req.AnnualRatePct, req.Years, req.TimesPerYear))
}
