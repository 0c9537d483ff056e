package mudra

import (
	"math"

	"github.com/shopspring/decimal"
)

func round2(d decimal.Decimal) decimal.Decimal  { return d.Round(2) }
func f64(d decimal.Decimal) float64             { v, _ := d.Float64(); return v }
func fromF(v float64) decimal.Decimal           { return decimal.NewFromFloat(v) }

// CalculateDPR runs the full 12-step MudraEngine algorithm from spec §4.7.
func CalculateDPR(in MudraDPRInput) MudraDPROutput {
	// Step 1: project cost.
	totalFixed := decimal.Zero
	for _, a := range in.FixedAssets {
		totalFixed = totalFixed.Add(a.Amount)
	}
	monthlyOpex := in.RentMonthly.Add(in.WagesMonthly).Add(in.UtilitiesMonthly).Add(in.OtherMonthly).
		Add(in.RawMaterialPerUnit.Mul(in.UnitsFullCapacity).Mul(util1(in)))
	workingCapital := monthlyOpex.Mul(in.WorkingCapitalMonths)
	subtotal := totalFixed.Add(workingCapital)
	pct5 := decimal.NewFromFloat(0.05)
	preliminary := subtotal.Mul(pct5)
	contingency := subtotal.Mul(pct5)
	total := subtotal.Add(preliminary).Add(contingency)

	// Step 2: classify.
	classification := classify(total)

	// Step 3: means of finance.
	promoterPct := in.PromoterPct
	if promoterPct.IsZero() {
		promoterPct = decimal.NewFromInt(10)
	}
	promoter := total.Mul(promoterPct).Div(decimal.NewFromInt(100))
	loan := total.Sub(promoter)

	// Step 4: EMI.
	emi := computeEMI(loan, in.InterestRatePct, in.TenureMonths)

	// Step 5: loan schedule, 5 yearly rows.
	schedule := loanSchedule(loan, in.InterestRatePct, emi, in.TenureMonths)

	// Step 6: depreciation.
	annualDep, depByAsset := depreciation(in.FixedAssets)

	// Step 7: P&L years 1..5.
	years := 5
	utilByYear := make([]decimal.Decimal, years)
	for y := 0; y < years; y++ {
		if y < len(in.UtilizationByYear) {
			utilByYear[y] = in.UtilizationByYear[y]
		} else {
			utilByYear[y] = util1(in)
		}
	}

	pnl := make([]ProfitAndLossYear, years)
	for y := 1; y <= years; y++ {
		inflationFactor := math.Pow(1+f64(in.InflationPct)/100, float64(y-1))
		units := in.UnitsFullCapacity.Mul(decimal.NewFromInt(12)).Mul(utilByYear[y-1])
		revenue := units.Mul(in.SellingPrice)
		costs := units.Mul(in.RawMaterialPerUnit).Mul(fromF(inflationFactor)).
			Add(in.RentMonthly.Add(in.WagesMonthly).Add(in.UtilitiesMonthly).Add(in.OtherMonthly).
				Mul(decimal.NewFromInt(12)).Mul(fromF(inflationFactor)))
		ebitda := revenue.Sub(costs)

		var interestY decimal.Decimal
		if y-1 < len(schedule) {
			interestY = schedule[y-1].InterestPaid
		}
		pbt := ebitda.Sub(annualDep).Sub(interestY)
		tax := decimal.Zero
		if pbt.GreaterThan(decimal.Zero) {
			tax = pbt.Mul(in.TaxRatePct).Div(decimal.NewFromInt(100))
		}
		pat := pbt.Sub(tax)

		pnl[y-1] = ProfitAndLossYear{
			Year: y, Units: units.Round(0), Revenue: round2(revenue), Costs: round2(costs),
			EBITDA: round2(ebitda), Depreciation: round2(annualDep), Interest: round2(interestY),
			PBT: round2(pbt), Tax: round2(tax), PAT: round2(pat),
		}
	}

	// Step 8: BS years 1..5.
	bs := make([]BalanceSheetYear, years)
	accumulatedDep := decimal.Zero
	cumulativePAT := decimal.Zero
	for y := 1; y <= years; y++ {
		accumulatedDep = accumulatedDep.Add(annualDep)
		cumulativePAT = cumulativePAT.Add(pnl[y-1].PAT)
		currentAssets := workingCapital
		if cumulativePAT.GreaterThan(decimal.Zero) {
			currentAssets = currentAssets.Add(cumulativePAT)
		}
		var loanOutstanding decimal.Decimal
		if y-1 < len(schedule) {
			loanOutstanding = schedule[y-1].ClosingBalance
		}
		bs[y-1] = BalanceSheetYear{
			Year:             y,
			GrossFixedAssets: round2(totalFixed),
			AccumulatedDep:   round2(accumulatedDep),
			NetFixedAssets:   round2(totalFixed.Sub(accumulatedDep)),
			CurrentAssets:    round2(currentAssets),
			LoanOutstanding:  round2(loanOutstanding),
			PromoterEquity:   round2(promoter),
			RetainedEarnings: round2(cumulativePAT),
		}
	}

	// Step 9: DSCR per year.
	dscrByYear := make([]decimal.Decimal, years)
	dscrSum, dscrCount := 0.0, 0
	for y := 1; y <= years; y++ {
		var principalY decimal.Decimal
		if y-1 < len(schedule) {
			principalY = schedule[y-1].PrincipalPaid
		}
		interestY := pnl[y-1].Interest
		denom := principalY.Add(interestY)
		if denom.GreaterThan(decimal.Zero) {
			numer := pnl[y-1].PAT.Add(pnl[y-1].Depreciation).Add(interestY)
			d := numer.Div(denom)
			dscrByYear[y-1] = d.Round(2)
			dscrSum += f64(d)
			dscrCount++
		}
	}
	avgDSCR := decimal.Zero
	if dscrCount > 0 {
		avgDSCR = fromF(dscrSum / float64(dscrCount)).Round(2)
	}

	// Step 10: IRR via Newton-Raphson.
	irr := computeIRR(total, pnl)

	// Step 11: break-even (year 1).
	fixedY1 := in.RentMonthly.Add(in.WagesMonthly).Add(in.UtilitiesMonthly).Add(in.OtherMonthly).
		Mul(decimal.NewFromInt(12)).Add(annualDep).Add(firstInterest(schedule))
	contribution := in.SellingPrice.Sub(in.RawMaterialPerUnit)
	breakEven := BreakEven{}
	if contribution.LessThanOrEqual(decimal.Zero) {
		breakEven.Achievable = false
	} else {
		beUnits := fixedY1.Div(contribution)
		monthlyCapacityY1 := in.UnitsFullCapacity.Mul(util1(in))
		months := 0
		if monthlyCapacityY1.GreaterThan(decimal.Zero) {
			months = int(math.Ceil(f64(beUnits) / f64(monthlyCapacityY1)))
		}
		breakEven = BreakEven{
			Achievable: true,
			Units:      beUnits.Round(0),
			Revenue:    round2(beUnits.Mul(in.SellingPrice)),
			Months:     months,
		}
	}

	// Step 12: bankability.
	isBankable := avgDSCR.GreaterThanOrEqual(decimal.NewFromFloat(1.5))
	band := dscrBand(avgDSCR)

	_ = depByAsset // retained for potential per-asset reporting; not surfaced in output today

	return MudraDPROutput{
		TotalProjectCost:     round2(total),
		Classification:       classification,
		PromoterContribution: round2(promoter),
		LoanAmount:           round2(loan),
		EMI:                  round2(emi),
		LoanSchedule:         schedule,
		AnnualDepreciation:   round2(annualDep),
		ProfitAndLoss:        pnl,
		BalanceSheet:         bs,
		DSCRByYear:           dscrByYear,
		AverageDSCR:          avgDSCR,
		DSCRBand:             band,
		IRRPct:               irr,
		BreakEven:            breakEven,
		IsBankable:           isBankable,
		Recommendation:       recommendation(band, isBankable),
	}
}

// WhatIf applies a shallow field-level override to the input, then
// re-runs the whole pipeline (spec §4.7 "What-if").
func WhatIf(in MudraDPRInput, override func(*MudraDPRInput)) MudraDPROutput {
	modified := in
	modified.FixedAssets = append([]FixedAsset(nil), in.FixedAssets...)
	modified.UtilizationByYear = append([]decimal.Decimal(nil), in.UtilizationByYear...)
	override(&modified)
	return CalculateDPR(modified)
}

func util1(in MudraDPRInput) decimal.Decimal {
	if in.UtilizationYear1.IsZero() {
		return decimal.NewFromFloat(1.0)
	}
	return in.UtilizationYear1
}

func classify(total decimal.Decimal) Classification {
	switch {
	case total.LessThanOrEqual(decimal.NewFromInt(50000)):
		return Shishu
	case total.LessThanOrEqual(decimal.NewFromInt(500000)):
		return Kishore
	default:
		return Tarun
	}
}

func computeEMI(loan decimal.Decimal, annualRatePct decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths <= 0 {
		return decimal.Zero
	}
	if annualRatePct.IsZero() {
		return loan.Div(decimal.NewFromInt(int64(tenureMonths)))
	}
	p := f64(loan)
	r := f64(annualRatePct) / 1200
	n := float64(tenureMonths)
	factor := math.Pow(1+r, n)
	emi := p * r * factor / (factor - 1)
	return fromF(emi)
}

func loanSchedule(loan, annualRatePct, emi decimal.Decimal, tenureMonths int) []LoanScheduleYear {
	balance := f64(loan)
	rate := f64(annualRatePct) / 1200
	emiF := f64(emi)

	years := 5
	out := make([]LoanScheduleYear, years)
	month := 0
	for y := 0; y < years; y++ {
		opening := balance
		yearInterest, yearPrincipal := 0.0, 0.0
		for m := 0; m < 12 && month < tenureMonths; m++ {
			interestM := balance * rate
			principalM := math.Min(emiF-interestM, balance)
			if principalM < 0 {
				principalM = 0
			}
			balance -= principalM
			yearInterest += interestM
			yearPrincipal += principalM
			month++
		}
		out[y] = LoanScheduleYear{
			Year:           y + 1,
			OpeningBalance: round2(fromF(opening)),
			PrincipalPaid:  round2(fromF(yearPrincipal)),
			InterestPaid:   round2(fromF(yearInterest)),
			ClosingBalance: round2(fromF(math.Max(balance, 0))),
		}
	}
	return out
}

func depreciation(assets []FixedAsset) (decimal.Decimal, map[string]decimal.Decimal) {
	total := decimal.Zero
	byAsset := make(map[string]decimal.Decimal, len(assets))
	for _, a := range assets {
		life := a.LifeYears
		if life <= 0 {
			life = defaultAssetLifeYears
		}
		annual := a.Amount.Div(decimal.NewFromInt(int64(life)))
		byAsset[a.Name] = round2(annual)
		total = total.Add(annual)
	}
	return round2(total), byAsset
}

func firstInterest(schedule []LoanScheduleYear) decimal.Decimal {
	if len(schedule) == 0 {
		return decimal.Zero
	}
	return schedule[0].InterestPaid
}

// computeIRR solves NPV(r) = -total + sum((PAT_y + Dep_y)/(1+r)^y) = 0 via
// Newton-Raphson, per spec §4.7 step 10 (guess 0.1, 200 iterations,
// tolerance 1e-7), returned as a percent.
func computeIRR(total decimal.Decimal, pnl []ProfitAndLossYear) decimal.Decimal {
	cashflows := make([]float64, len(pnl))
	for i, p := range pnl {
		cashflows[i] = f64(p.PAT) + f64(p.Depreciation)
	}
	totalF := f64(total)

	npv := func(r float64) float64 {
		v := -totalF
		for y, cf := range cashflows {
			v += cf / math.Pow(1+r, float64(y+1))
		}
		return v
	}
	dnpv := func(r float64) float64 {
		v := 0.0
		for y, cf := range cashflows {
			n := float64(y + 1)
			v += -n * cf / math.Pow(1+r, n+1)
		}
		return v
	}

	r := 0.1
	for i := 0; i < 200; i++ {
		d := dnpv(r)
		if d == 0 {
			break
		}
		next := r - npv(r)/d
		if math.Abs(next-r) < 1e-7 {
			r = next
			break
		}
		r = next
	}
	return fromF(r * 100).Round(2)
}

func dscrBand(avg decimal.Decimal) DSCRBand {
	switch {
	case avg.GreaterThanOrEqual(decimal.NewFromFloat(2.0)):
		return DSCRExcellent
	case avg.GreaterThanOrEqual(decimal.NewFromFloat(1.5)):
		return DSCRGood
	case avg.GreaterThanOrEqual(decimal.NewFromFloat(1.25)):
		return DSCRMarginal
	case avg.GreaterThanOrEqual(decimal.NewFromFloat(1.0)):
		return DSCRWeak
	default:
		return DSCRPoor
	}
}

func recommendation(band DSCRBand, bankable bool) string {
	switch band {
	case DSCRExcellent:
		return "Strong repayment capacity; highly recommended for sanction."
	case DSCRGood:
		return "Comfortable repayment capacity; recommended for sanction."
	case DSCRMarginal:
		return "Repayment capacity is adequate but thin; consider added collateral or a longer tenure."
	case DSCRWeak:
		return "Repayment capacity is weak; revisit project assumptions before sanction."
	default:
		if bankable {
			return "Borderline case; manual underwriting review advised."
		}
		return "Repayment capacity is insufficient; not recommended for sanction as structured."
	}
}
