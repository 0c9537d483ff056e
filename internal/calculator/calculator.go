// Package calculator implements the pure retail-finance calculators from
// spec §4.7/§4.5 (the calculate_sip|fd|emi|rd|lumpsum|cagr|goal_sip|
// compound_interest|emergency_fund|savings_rate|tax tool family). Every
// function here is deterministic and side-effect free; none ever needs
// confirmation, matching the "pure calculators" tool family in §4.5.
package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)
var twelve = decimal.NewFromInt(12)

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SIPResult is the output of SIP (systematic investment plan).
type SIPResult struct {
	FutureValue    decimal.Decimal `json:"future_value"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	WealthGained   decimal.Decimal `json:"wealth_gained"`
}

// SIP computes FV = P * ((1+r)^n - 1)/r * (1+r), r = annualRate/1200, per
// the exact scenario in spec §8.1.
func SIP(monthlyInvestment decimal.Decimal, annualRatePct decimal.Decimal, durationMonths int) SIPResult {
	p, _ := monthlyInvestment.Float64()
	rPct, _ := annualRatePct.Float64()
	r := rPct / 1200
	n := float64(durationMonths)

	var fv float64
	if r == 0 {
		fv = p * n
	} else {
		fv = p * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
	}

	invested := monthlyInvestment.Mul(decimal.NewFromInt(int64(durationMonths)))
	future := round2(decimal.NewFromFloat(fv))
	return SIPResult{
		FutureValue:   future,
		TotalInvested: round2(invested),
		WealthGained:  round2(future.Sub(invested)),
	}
}

// EMIResult is the output of EMI.
type EMIResult struct {
	EMI          decimal.Decimal `json:"emi"`
	TotalPayment decimal.Decimal `json:"total_payment"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// EMI computes the standard reducing-balance EMI; when rate is zero the
// loan amortizes linearly. Mirrors spec §4.7 step 4 and the exact scenario
// in §8.2.
func EMI(principal decimal.Decimal, annualRatePct decimal.Decimal, tenureMonths int) EMIResult {
	p, _ := principal.Float64()
	rPct, _ := annualRatePct.Float64()
	n := float64(tenureMonths)

	var emi float64
	if rPct == 0 {
		emi = p / n
	} else {
		r := rPct / 1200
		factor := math.Pow(1+r, n)
		emi = p * r * factor / (factor - 1)
	}

	emiD := round2(decimal.NewFromFloat(emi))
	total := round2(emiD.Mul(decimal.NewFromInt(int64(tenureMonths))))
	return EMIResult{
		EMI:           emiD,
		TotalPayment:  total,
		TotalInterest: round2(total.Sub(principal)),
	}
}

// FDResult is the output of FD (fixed deposit), compounded quarterly by
// convention for Indian FDs.
type FDResult struct {
	MaturityValue decimal.Decimal `json:"maturity_value"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	InterestEarned decimal.Decimal `json:"interest_earned"`
}

// FD computes compound-interest maturity on a lump sum, compounded n times
// a year (compoundingPerYear, default 4 for quarterly when 0 is passed).
func FD(principal decimal.Decimal, annualRatePct decimal.Decimal, years decimal.Decimal, compoundingPerYear int) FDResult {
	if compoundingPerYear <= 0 {
		compoundingPerYear = 4
	}
	p, _ := principal.Float64()
	rPct, _ := annualRatePct.Float64()
	y, _ := years.Float64()
	n := float64(compoundingPerYear)

	maturity := p * math.Pow(1+(rPct/100)/n, n*y)
	maturityD := round2(decimal.NewFromFloat(maturity))
	return FDResult{
		MaturityValue:  maturityD,
		TotalInvested:  round2(principal),
		InterestEarned: round2(maturityD.Sub(principal)),
	}
}

// RDResult is the output of RD (recurring deposit).
type RDResult struct {
	MaturityValue  decimal.Decimal `json:"maturity_value"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	InterestEarned decimal.Decimal `json:"interest_earned"`
}

// RD computes recurring-deposit maturity value: each of n monthly
// installments compounds quarterly for its remaining tenure, the standard
// Indian-bank RD formula.
func RD(monthlyInstallment decimal.Decimal, annualRatePct decimal.Decimal, tenureMonths int) RDResult {
	p, _ := monthlyInstallment.Float64()
	rPct, _ := annualRatePct.Float64()
	r := rPct / 400 // quarterly rate

	var maturity float64
	for i := 1; i <= tenureMonths; i++ {
		remainingQuarters := float64(tenureMonths-i+1) / 3
		maturity += p * math.Pow(1+r, remainingQuarters)
	}

	invested := monthlyInstallment.Mul(decimal.NewFromInt(int64(tenureMonths)))
	maturityD := round2(decimal.NewFromFloat(maturity))
	return RDResult{
		MaturityValue:  maturityD,
		TotalInvested:  round2(invested),
		InterestEarned: round2(maturityD.Sub(invested)),
	}
}

// LumpsumResult is the output of a lumpsum (one-time) investment projection.
type LumpsumResult struct {
	FutureValue  decimal.Decimal `json:"future_value"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	WealthGained decimal.Decimal `json:"wealth_gained"`
}

// Lumpsum computes FV = P * (1+r)^n, annual compounding.
func Lumpsum(principal decimal.Decimal, annualRatePct decimal.Decimal, years decimal.Decimal) LumpsumResult {
	p, _ := principal.Float64()
	rPct, _ := annualRatePct.Float64()
	y, _ := years.Float64()
	fv := p * math.Pow(1+rPct/100, y)
	fvD := round2(decimal.NewFromFloat(fv))
	return LumpsumResult{
		FutureValue:   fvD,
		TotalInvested: round2(principal),
		WealthGained:  round2(fvD.Sub(principal)),
	}
}

// CAGR computes the compound annual growth rate as a percentage:
// ((final/initial)^(1/years) - 1) * 100.
func CAGR(initialValue, finalValue decimal.Decimal, years decimal.Decimal) decimal.Decimal {
	if initialValue.LessThanOrEqual(decimal.Zero) || years.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	iv, _ := initialValue.Float64()
	fv, _ := finalValue.Float64()
	y, _ := years.Float64()
	cagr := (math.Pow(fv/iv, 1/y) - 1) * 100
	return round2(decimal.NewFromFloat(cagr))
}

// GoalSIPResult is the output of the "how much must I invest monthly to
// reach a goal" calculator.
type GoalSIPResult struct {
	RequiredMonthlyInvestment decimal.Decimal `json:"required_monthly_investment"`
	TotalInvested             decimal.Decimal `json:"total_invested"`
}

// GoalSIP inverts the SIP future-value formula to solve for the monthly
// contribution required to reach targetAmount in durationMonths at
// annualRatePct.
func GoalSIP(targetAmount decimal.Decimal, annualRatePct decimal.Decimal, durationMonths int) GoalSIPResult {
	target, _ := targetAmount.Float64()
	rPct, _ := annualRatePct.Float64()
	r := rPct / 1200
	n := float64(durationMonths)

	var monthly float64
	if r == 0 {
		monthly = target / n
	} else {
		monthly = target / (((math.Pow(1+r, n) - 1) / r) * (1 + r))
	}
	monthlyD := round2(decimal.NewFromFloat(monthly))
	return GoalSIPResult{
		RequiredMonthlyInvestment: monthlyD,
		TotalInvested:             round2(monthlyD.Mul(decimal.NewFromInt(int64(durationMonths)))),
	}
}

// CompoundInterestResult is the output of CompoundInterest.
type CompoundInterestResult struct {
	MaturityValue  decimal.Decimal `json:"maturity_value"`
	InterestEarned decimal.Decimal `json:"interest_earned"`
}

// CompoundInterest computes A = P(1+r/n)^(nt) for an arbitrary compounding
// frequency (timesPerYear).
func CompoundInterest(principal decimal.Decimal, annualRatePct decimal.Decimal, years decimal.Decimal, timesPerYear int) CompoundInterestResult {
	if timesPerYear <= 0 {
		timesPerYear = 1
	}
	p, _ := principal.Float64()
	rPct, _ := annualRatePct.Float64()
	y, _ := years.Float64()
	n := float64(timesPerYear)
	a := p * math.Pow(1+(rPct/100)/n, n*y)
	aD := round2(decimal.NewFromFloat(a))
	return CompoundInterestResult{
		MaturityValue:  aD,
		InterestEarned: round2(aD.Sub(principal)),
	}
}

// EmergencyFundResult is the output of the emergency-fund calculator.
type EmergencyFundResult struct {
	RecommendedFund decimal.Decimal `json:"recommended_fund"`
	MonthsCovered   decimal.Decimal `json:"months_covered"`
	Shortfall       decimal.Decimal `json:"shortfall"`
}

// EmergencyFund recommends monthlyExpenses * monthsTarget (default 6 when
// monthsTarget <= 0) and reports the shortfall against currentSavings.
func EmergencyFund(monthlyExpenses decimal.Decimal, monthsTarget decimal.Decimal, currentSavings decimal.Decimal) EmergencyFundResult {
	if monthsTarget.LessThanOrEqual(decimal.Zero) {
		monthsTarget = decimal.NewFromInt(6)
	}
	recommended := round2(monthlyExpenses.Mul(monthsTarget))
	var monthsCovered decimal.Decimal
	if monthlyExpenses.GreaterThan(decimal.Zero) {
		monthsCovered = currentSavings.Div(monthlyExpenses).Round(2)
	}
	shortfall := recommended.Sub(currentSavings)
	if shortfall.LessThan(decimal.Zero) {
		shortfall = decimal.Zero
	}
	return EmergencyFundResult{
		RecommendedFund: recommended,
		MonthsCovered:   monthsCovered,
		Shortfall:       round2(shortfall),
	}
}

// SavingsRate returns (income - expenses) / income * 100, clamped to
// [-100, 100] is not applied; a negative rate is meaningful (dissaving).
func SavingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	rate := income.Sub(expenses).Div(income).Mul(hundred)
	return rate.Round(2)
}

// TaxRegime selects which Indian income-tax slab table applies.
type TaxRegime string

const (
	RegimeOld TaxRegime = "old"
	RegimeNew TaxRegime = "new"
)

type slab struct {
	upTo decimal.Decimal // exclusive upper bound; zero-value means no cap
	rate decimal.Decimal // percent
}

// oldRegimeSlabs is FY2024-25 old-regime slabs for a taxpayer below 60,
// after the standard deduction (applied by caller).
var oldRegimeSlabs = []slab{
	{decimal.NewFromInt(250000), decimal.Zero},
	{decimal.NewFromInt(500000), decimal.NewFromInt(5)},
	{decimal.NewFromInt(1000000), decimal.NewFromInt(20)},
	{decimal.Zero, decimal.NewFromInt(30)},
}

// newRegimeSlabs is FY2024-25 new-regime slabs.
var newRegimeSlabs = []slab{
	{decimal.NewFromInt(300000), decimal.Zero},
	{decimal.NewFromInt(600000), decimal.NewFromInt(5)},
	{decimal.NewFromInt(900000), decimal.NewFromInt(10)},
	{decimal.NewFromInt(1200000), decimal.NewFromInt(15)},
	{decimal.NewFromInt(1500000), decimal.NewFromInt(20)},
	{decimal.Zero, decimal.NewFromInt(30)},
}

// TaxResult is the output of Tax.
type TaxResult struct {
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Cess          decimal.Decimal `json:"cess"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Regime        TaxRegime       `json:"regime"`
}

// Tax computes Indian income tax by slab for the given regime, plus a
// flat 4% health-and-education cess on the slab tax.
func Tax(grossIncome decimal.Decimal, deductions decimal.Decimal, regime TaxRegime) TaxResult {
	taxable := grossIncome.Sub(deductions)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	slabs := oldRegimeSlabs
	if regime == RegimeNew {
		slabs = newRegimeSlabs
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, s := range slabs {
		upper := s.upTo
		if upper.IsZero() {
			// last open-ended slab
			band := taxable.Sub(lower)
			if band.GreaterThan(decimal.Zero) {
				tax = tax.Add(band.Mul(s.rate).Div(hundred))
			}
			break
		}
		if taxable.LessThanOrEqual(lower) {
			break
		}
		band := decimal.Min(taxable, upper).Sub(lower)
		if band.GreaterThan(decimal.Zero) {
			tax = tax.Add(band.Mul(s.rate).Div(hundred))
		}
		lower = upper
	}

	tax = round2(tax)
	cess := round2(tax.Mul(decimal.NewFromInt(4)).Div(hundred))
	total := round2(tax.Add(cess))

	effective := decimal.Zero
	if grossIncome.GreaterThan(decimal.Zero) {
		effective = total.Div(grossIncome).Mul(hundred).Round(2)
	}

	return TaxResult{
		TaxableIncome: round2(taxable),
		TaxAmount:     tax,
		Cess:          cess,
		TotalTax:      total,
		EffectiveRate: effective,
		Regime:        regime,
	}
}
