package analytics

import "github.com/shopspring/decimal"

// HealthMetrics are the four input ratios spec §4.9 names; callers derive
// them from the ledger/planning stores before calling HealthScore.
type HealthMetrics struct {
	SavingsRatePct      decimal.Decimal // (income-expense)/income * 100
	DebtToIncomePct      decimal.Decimal // total EMI/debt payments / income * 100
	EmergencyFundMonths decimal.Decimal // liquid savings / monthly expenses
	InvestmentCoverage  decimal.Decimal // invested assets / annual expenses, as a ratio (1.0 = one year covered)
}

// HealthScore is the weighted composite described in spec §4.9.
type HealthScore struct {
	SavingsScore    decimal.Decimal `json:"savings_score"`
	DebtScore       decimal.Decimal `json:"debt_score"`
	LiquidityScore  decimal.Decimal `json:"liquidity_score"`
	InvestmentScore decimal.Decimal `json:"investment_score"`
	Overall         decimal.Decimal `json:"overall"`
	Grade           string          `json:"grade"`
}

// weights for the four sub-scores; the spec leaves these to the
// implementation, fixing only the sub-score decomposition and grade bands.
const (
	weightSavings    = 0.30
	weightDebt       = 0.25
	weightLiquidity  = 0.25
	weightInvestment = 0.20
)

func clamp0to100(v float64) decimal.Decimal {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return decimal.NewFromFloat(v).Round(2)
}

// ComputeHealthScore turns the four input ratios into four [0,100]
// sub-scores and a weighted-mean overall score with a grade band.
func ComputeHealthScore(m HealthMetrics) HealthScore {
	savingsRate, _ := m.SavingsRatePct.Float64()
	dti, _ := m.DebtToIncomePct.Float64()
	emergencyMonths, _ := m.EmergencyFundMonths.Float64()
	investCoverage, _ := m.InvestmentCoverage.Float64()

	// Savings: 0% savings rate -> 0, >=30% -> 100, linear between.
	savingsScore := clamp0to100(savingsRate / 30 * 100)

	// Debt: 0% DTI -> 100, >=50% DTI -> 0, linear between.
	debtScore := clamp0to100(100 - dti/50*100)

	// Liquidity: 0 months -> 0, >=6 months -> 100, linear between.
	liquidityScore := clamp0to100(emergencyMonths / 6 * 100)

	// Investment: 0 years covered -> 0, >=1 year covered -> 100, linear.
	investmentScore := clamp0to100(investCoverage / 1.0 * 100)

	ss, _ := savingsScore.Float64()
	ds, _ := debtScore.Float64()
	ls, _ := liquidityScore.Float64()
	is, _ := investmentScore.Float64()

	overall := ss*weightSavings + ds*weightDebt + ls*weightLiquidity + is*weightInvestment

	return HealthScore{
		SavingsScore:    savingsScore,
		DebtScore:       debtScore,
		LiquidityScore:  liquidityScore,
		InvestmentScore: investmentScore,
		Overall:         decimal.NewFromFloat(overall).Round(2),
		Grade:           gradeBand(overall),
	}
}

// gradeBand implements spec §4.9's fixed bands.
func gradeBand(overall float64) string {
	switch {
	case overall >= 85:
		return "A"
	case overall >= 70:
		return "B"
	case overall >= 55:
		return "C"
	case overall >= 40:
		return "D"
	default:
		return "F"
	}
}
