package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/analytics"
)

type fakeLedger struct {
	totals map[string]analytics.MonthlyTotal
	all    []analytics.Transaction
}

func (f *fakeLedger) MonthlyTotals(userID string, sinceMonth string) (map[string]analytics.MonthlyTotal, error) {
	return f.totals, nil
}
func (f *fakeLedger) AllForUser(userID string) ([]analytics.Transaction, error) { return f.all, nil }

func TestMonthlyTrends_SortsAscendingAndComputesSavings(t *testing.T) {
	ledger := &fakeLedger{totals: map[string]analytics.MonthlyTotal{
		"2026-02": {Income: decimal.NewFromInt(50000), Expense: decimal.NewFromInt(30000)},
		"2026-01": {Income: decimal.NewFromInt(40000), Expense: decimal.NewFromInt(35000)},
	}}
	trend, err := analytics.MonthlyTrends(ledger, "u1", 6)
	require.NoError(t, err)
	require.Len(t, trend, 2)
	require.Equal(t, "2026-01", trend[0].Month)
	require.True(t, trend[1].Savings.Equal(decimal.NewFromInt(20000)))
}

func TestPredictNextMonth_ThreeMonthAverage(t *testing.T) {
	trend := []analytics.MonthlyTrendPoint{
		{Month: "2026-01", Expense: decimal.NewFromInt(10000)},
		{Month: "2026-02", Expense: decimal.NewFromInt(20000)},
		{Month: "2026-03", Expense: decimal.NewFromInt(30000)},
	}
	pred := analytics.PredictNextMonth(trend)
	require.True(t, pred.Equal(decimal.NewFromInt(20000)))
}

func TestComputeHealthScore_GradeBands(t *testing.T) {
	score := analytics.ComputeHealthScore(analytics.HealthMetrics{
		SavingsRatePct:      decimal.NewFromInt(30),
		DebtToIncomePct:     decimal.Zero,
		EmergencyFundMonths: decimal.NewFromInt(6),
		InvestmentCoverage:  decimal.NewFromInt(1),
	})
	require.Equal(t, "A", score.Grade)
	require.True(t, score.Overall.Equal(decimal.NewFromInt(100)))
}

// Scenario 5: six ₹199 transactions on the 5th of six consecutive months
// for merchant "netflix" -> subscription, monthly, confidence >= 0.8.
func TestSubscriptionDetection_ScenarioFive(t *testing.T) {
	var txs []analytics.Transaction
	months := []struct{ y, m, d int }{
		{2026, 1, 5}, {2026, 2, 5}, {2026, 3, 5}, {2026, 4, 5}, {2026, 5, 5}, {2026, 6, 5},
	}
	for _, md := range months {
		txs = append(txs, analytics.Transaction{
			Amount:      decimal.NewFromInt(199),
			Type:        analytics.TypeExpense,
			Description: "NETFLIX",
			Merchant:    "netflix",
			Date:        time.Date(md.y, time.Month(md.m), md.d, 0, 0, 0, 0, time.UTC),
		})
	}
	candidates := analytics.SubscriptionDetection(txs, 12)
	require.Len(t, candidates, 1)
	c := candidates[0]
	require.Equal(t, analytics.LabelSubscription, c.Label)
	require.Equal(t, analytics.FrequencyMonthly, c.Frequency)
	require.True(t, c.Confidence.GreaterThanOrEqual(decimal.NewFromFloat(0.8)), "confidence = %s", c.Confidence)
}
