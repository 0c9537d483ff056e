package calculator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/calculator"
)

func decAbsDiff(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Abs()
}

// Scenario 1: monthly_investment=10000, expected_rate=12, duration=120.
func TestSIP_ExactScenario(t *testing.T) {
	res := calculator.SIP(decimal.NewFromInt(10000), decimal.NewFromInt(12), 120)
	require.True(t, decAbsDiff(res.FutureValue, decimal.NewFromInt(2323391)).LessThanOrEqual(decimal.NewFromInt(2)),
		"future_value = %s", res.FutureValue)
	require.True(t, res.TotalInvested.Equal(decimal.NewFromInt(1200000)))
	require.True(t, decAbsDiff(res.WealthGained, decimal.NewFromInt(1123391)).LessThanOrEqual(decimal.NewFromInt(2)))
}

// Scenario 2: principal=1,000,000, rate=9, tenure=240.
func TestEMI_ExactScenario(t *testing.T) {
	res := calculator.EMI(decimal.NewFromInt(1000000), decimal.NewFromInt(9), 240)
	require.True(t, decAbsDiff(res.EMI, decimal.NewFromFloat(8997.26)).LessThanOrEqual(decimal.NewFromFloat(0.5)),
		"emi = %s", res.EMI)
	require.True(t, decAbsDiff(res.TotalPayment, decimal.NewFromInt(2159344)).LessThanOrEqual(decimal.NewFromInt(50)))
	require.True(t, decAbsDiff(res.TotalInterest, decimal.NewFromInt(1159344)).LessThanOrEqual(decimal.NewFromInt(50)))
}

func TestEMI_ZeroRateAmortizesLinearly(t *testing.T) {
	res := calculator.EMI(decimal.NewFromInt(120000), decimal.Zero, 12)
	require.True(t, res.EMI.Equal(decimal.NewFromInt(10000)))
	require.True(t, res.TotalInterest.Equal(decimal.Zero))
}

func TestCAGR_DoublingInFiveYears(t *testing.T) {
	cagr := calculator.CAGR(decimal.NewFromInt(100000), decimal.NewFromInt(200000), decimal.NewFromInt(5))
	require.True(t, decAbsDiff(cagr, decimal.NewFromFloat(14.87)).LessThanOrEqual(decimal.NewFromFloat(0.1)))
}

func TestSavingsRate_PositiveAndNegative(t *testing.T) {
	require.True(t, calculator.SavingsRate(decimal.NewFromInt(100000), decimal.NewFromInt(70000)).Equal(decimal.NewFromInt(30)))
	require.True(t, calculator.SavingsRate(decimal.NewFromInt(50000), decimal.NewFromInt(60000)).Equal(decimal.NewFromInt(-20)))
}

func TestTax_NewRegimeZeroBelowThreshold(t *testing.T) {
	res := calculator.Tax(decimal.NewFromInt(250000), decimal.Zero, calculator.RegimeNew)
	require.True(t, res.TotalTax.Equal(decimal.Zero))
}

func TestTax_OldRegimeAppliesSlabsAndCess(t *testing.T) {
	res := calculator.Tax(decimal.NewFromInt(1200000), decimal.NewFromInt(50000), calculator.RegimeOld)
	require.True(t, res.TaxAmount.GreaterThan(decimal.Zero))
	require.True(t, res.Cess.Equal(res.TaxAmount.Mul(decimal.NewFromInt(4)).Div(decimal.NewFromInt(100)).Round(2)))
	require.True(t, res.TotalTax.Equal(res.TaxAmount.Add(res.Cess)))
}

func TestGoalSIP_InvertsSIPFormula(t *testing.T) {
	goal := calculator.GoalSIP(decimal.NewFromInt(2323391), decimal.NewFromInt(12), 120)
	sip := calculator.SIP(goal.RequiredMonthlyInvestment, decimal.NewFromInt(12), 120)
	require.True(t, decAbsDiff(sip.FutureValue, decimal.NewFromInt(2323391)).LessThanOrEqual(decimal.NewFromInt(50)))
}

func TestEmergencyFund_DefaultsToSixMonths(t *testing.T) {
	res := calculator.EmergencyFund(decimal.NewFromInt(20000), decimal.Zero, decimal.NewFromInt(50000))
	require.True(t, res.RecommendedFund.Equal(decimal.NewFromInt(120000)))
	require.True(t, res.Shortfall.Equal(decimal.NewFromInt(70000)))
}
