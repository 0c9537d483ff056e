package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/analytics"
	"github.com/wealthin/agent-backend/internal/docs"
	"github.com/wealthin/agent-backend/internal/ledger"
	"github.com/wealthin/agent-backend/internal/planning"
)

// ledgerAnalyticsAdapter adapts ledger.Store to analytics.LedgerReader.
type ledgerAnalyticsAdapter struct {
	store *ledger.Store
}

func (a *ledgerAnalyticsAdapter) MonthlyTotals(userID, sinceMonth string) (map[string]analytics.MonthlyTotal, error) {
	totals, err := a.store.MonthlyTotals(userID, sinceMonth)
	if err != nil {
		return nil, err
	}
	out := make(map[string]analytics.MonthlyTotal, len(totals))
	for month, t := range totals {
		out[month] = analytics.MonthlyTotal{Income: t.Income, Expense: t.Expense}
	}
	return out, nil
}

func (a *ledgerAnalyticsAdapter) AllForUser(userID string) ([]analytics.Transaction, error) {
	txs, err := a.store.AllForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]analytics.Transaction, len(txs))
	for i, t := range txs {
		typ := analytics.TypeExpense
		if t.Type == ledger.TypeIncome {
			typ = analytics.TypeIncome
		}
		out[i] = analytics.Transaction{
			Amount:      t.Amount,
			Type:        typ,
			Category:    t.Category,
			Description: t.Description,
			Merchant:    t.Merchant,
			Date:        t.Date,
		}
	}
	return out, nil
}

// AnalyticsHandler composes C1's ledger/planning/docs stores with C4's
// Analytics to serve spec §6.1's health-score/refresh/monthly/dashboard/
// insights routes.
type AnalyticsHandler struct {
	ledger   *ledger.Store
	planning *planning.Store
	docs     *docs.Store
	reader   analytics.LedgerReader
}

func NewAnalyticsHandler(ledgerStore *ledger.Store, planningStore *planning.Store, docsStore *docs.Store) *AnalyticsHandler {
	return &AnalyticsHandler{
		ledger:   ledgerStore,
		planning: planningStore,
		docs:     docsStore,
		reader:   &ledgerAnalyticsAdapter{store: ledgerStore},
	}
}

func (h *AnalyticsHandler) healthMetrics(userID string) (analytics.HealthMetrics, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := now.AddDate(0, -12, 0)

	summary, err := h.ledger.GetSpendingSummary(userID, monthStart, now)
	if err != nil {
		return analytics.HealthMetrics{}, err
	}
	yearSummary, err := h.ledger.GetSpendingSummary(userID, yearStart, now)
	if err != nil {
		return analytics.HealthMetrics{}, err
	}

	goals, err := h.planning.ListGoals(userID)
	if err != nil {
		return analytics.HealthMetrics{}, err
	}
	liquid := decimal.Zero
	for _, g := range goals {
		liquid = liquid.Add(g.CurrentAmount)
	}

	monthlyExpense := summary.TotalExpenses
	emergencyMonths := decimal.Zero
	if monthlyExpense.IsPositive() {
		emergencyMonths = liquid.Div(monthlyExpense)
	}

	payments, err := h.planning.ListScheduledPayments(userID)
	if err != nil {
		return analytics.HealthMetrics{}, err
	}
	debtMonthly := decimal.Zero
	for _, p := range payments {
		if p.PaymentType == planning.PaymentTypeLoan || p.PaymentType == planning.PaymentTypeEMI {
			debtMonthly = debtMonthly.Add(p.Amount)
		}
	}
	dti := decimal.Zero
	if summary.TotalIncome.IsPositive() {
		dti = debtMonthly.Div(summary.TotalIncome).Mul(decimal.NewFromInt(100))
	}

	investCoverage := decimal.Zero
	if yearSummary.TotalExpenses.IsPositive() {
		investCoverage = liquid.Div(yearSummary.TotalExpenses)
	}

	return analytics.HealthMetrics{
		SavingsRatePct:      summary.SavingsRate,
		DebtToIncomePct:     dti,
		EmergencyFundMonths: emergencyMonths,
		InvestmentCoverage:  investCoverage,
	}, nil
}

// HealthScore handles GET /analytics/health-score/:user_id.
func (h *AnalyticsHandler) HealthScore(c echo.Context) error {
	userID := c.Param("user_id")
	metrics, err := h.healthMetrics(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	return c.JSON(http.StatusOK, analytics.ComputeHealthScore(metrics))
}

// Refresh handles POST /analytics/refresh/:user_id: rebuilds the daily
// trend cache and, if the 7-day cooldown allows it, records a new
// analysis snapshot and evaluates milestones (spec §4.11).
func (h *AnalyticsHandler) Refresh(c echo.Context) error {
	userID := c.Param("user_id")

	if err := h.ledger.RebuildDailyTrends(userID); err != nil {
		return RespondErr(c, err)
	}

	cooldown, err := h.docs.CheckCooldown(userID, time.Now().UTC())
	if err != nil {
		return RespondErr(c, err)
	}
	if !cooldown.CanAnalyze {
		return c.JSON(http.StatusOK, echo.Map{"cooldown": cooldown})
	}

	healthMetrics, err := h.healthMetrics(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	score := analytics.ComputeHealthScore(healthMetrics)

	txs, err := h.ledger.AllForUser(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	budgets, err := h.planning.ListBudgets(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	goals, err := h.planning.ListGoals(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	underBudget := 0
	for _, b := range budgets {
		if b.Spent.LessThanOrEqual(b.Amount) {
			underBudget++
		}
	}
	completedGoals := 0
	for _, g := range goals {
		if g.Status == planning.GoalCompleted {
			completedGoals++
		}
	}
	overall, _ := score.Overall.Float64()
	savingsRate, _ := healthMetrics.SavingsRatePct.Float64()

	snapshotMetrics := docs.Metrics{
		TransactionCount:  len(txs),
		BudgetCount:       len(budgets),
		SavingsRate:       savingsRate,
		HealthScore:       overall,
		UnderBudgetMonths: underBudget,
		GoalsCompleted:    completedGoals,
	}

	rawMetrics, err := json.Marshal(score)
	if err != nil {
		return RespondErr(c, err)
	}

	month := time.Now().UTC().Format("2006-01")
	snapshot, milestones, err := h.docs.CreateSnapshot(userID, month, snapshotMetrics, rawMetrics)
	if err != nil {
		return RespondErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"health_score":    score,
		"snapshot":        snapshot,
		"new_milestones":  milestones,
	})
}

// Monthly handles GET /analytics/monthly/:user_id.
func (h *AnalyticsHandler) Monthly(c echo.Context) error {
	userID := c.Param("user_id")
	trend, err := analytics.MonthlyTrends(h.reader, userID, 6)
	if err != nil {
		return RespondErr(c, err)
	}
	prediction := analytics.PredictNextMonth(trend)
	return c.JSON(http.StatusOK, echo.Map{"trend": trend, "predicted_next_month_expense": prediction})
}

// Dashboard handles GET /dashboard/:user_id: a composite read across the
// ledger, planning and docs stores (spec §6.1).
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	userID := c.Param("user_id")
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary, err := h.ledger.GetSpendingSummary(userID, monthStart, now)
	if err != nil {
		return RespondErr(c, err)
	}
	budgets, err := h.planning.ListBudgets(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	goals, err := h.planning.ListGoals(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	payments, err := h.planning.ListScheduledPayments(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	xp, err := h.docs.GetUserXP(userID)
	if err != nil {
		return RespondErr(c, err)
	}
	healthMetrics, err := h.healthMetrics(userID)
	if err != nil {
		return RespondErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"spending_summary":   summary,
		"budgets":            budgets,
		"goals":              goals,
		"scheduled_payments": payments,
		"xp":                 xp,
		"health_score":       analytics.ComputeHealthScore(healthMetrics),
	})
}

// DailyInsight handles GET /insights/daily/:user_id: a single-paragraph
// insight card derived from the month-to-date spending summary.
func (h *AnalyticsHandler) DailyInsight(c echo.Context) error {
	userID := c.Param("user_id")
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary, err := h.ledger.GetSpendingSummary(userID, monthStart, now)
	if err != nil {
		return RespondErr(c, err)
	}

	topCategory, topAmount := "", decimal.Zero
	for cat, amt := range summary.ByCategory {
		if amt.GreaterThan(topAmount) {
			topCategory, topAmount = cat, amt
		}
	}

	insight := fmt.Sprintf(
		"So far this month you've spent %s against %s income (a %s%% savings rate), with %s as your top category at %s.",
		summary.TotalExpenses.String(), summary.TotalIncome.String(), summary.SavingsRate.String(), topCategory, topAmount.String(),
	)
	if topCategory == "" {
		insight = fmt.Sprintf("So far this month you've spent %s against %s income (a %s%% savings rate).",
			summary.TotalExpenses.String(), summary.TotalIncome.String(), summary.SavingsRate.String())
	}

	return c.JSON(http.StatusOK, echo.Map{"insight": insight})
}
