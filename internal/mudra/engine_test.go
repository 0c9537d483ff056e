package mudra_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/mudra"
)

func baseInput() mudra.MudraDPRInput {
	return mudra.MudraDPRInput{
		FixedAssets: []mudra.FixedAsset{
			{Name: "Machine", Amount: decimal.NewFromInt(200000), LifeYears: 10},
		},
		RentMonthly:          decimal.NewFromInt(5000),
		WagesMonthly:         decimal.NewFromInt(15000),
		UtilitiesMonthly:     decimal.NewFromInt(2000),
		OtherMonthly:         decimal.NewFromInt(1000),
		RawMaterialPerUnit:   decimal.NewFromInt(10),
		UnitsFullCapacity:    decimal.NewFromInt(1000),
		UtilizationYear1:     decimal.NewFromFloat(0.6),
		WorkingCapitalMonths: decimal.NewFromInt(3),
		PromoterPct:          decimal.NewFromInt(10),
		InterestRatePct:      decimal.NewFromInt(9),
		TenureMonths:         60,
		SellingPrice:         decimal.NewFromInt(25),
		InflationPct:         decimal.NewFromInt(5),
		TaxRatePct:           decimal.NewFromInt(25),
	}
}

// R3: deterministic, no stochastic inputs.
func TestCalculateDPR_Deterministic(t *testing.T) {
	in := baseInput()
	a := mudra.CalculateDPR(in)
	b := mudra.CalculateDPR(in)
	require.Equal(t, a, b)
}

func TestCalculateDPR_FiveYearProjections(t *testing.T) {
	out := mudra.CalculateDPR(baseInput())
	require.Len(t, out.LoanSchedule, 5)
	require.Len(t, out.ProfitAndLoss, 5)
	require.Len(t, out.BalanceSheet, 5)
	require.Len(t, out.DSCRByYear, 5)
}

func TestCalculateDPR_BreakEvenUnachievableWhenContributionNonPositive(t *testing.T) {
	in := baseInput()
	in.SellingPrice = decimal.NewFromInt(5) // below raw material cost of 10
	out := mudra.CalculateDPR(in)
	require.False(t, out.BreakEven.Achievable)
}

func TestWhatIf_OverridesAndRecalculates(t *testing.T) {
	in := baseInput()
	base := mudra.CalculateDPR(in)
	whatIf := mudra.WhatIf(in, func(m *mudra.MudraDPRInput) {
		m.SellingPrice = m.SellingPrice.Mul(decimal.NewFromInt(2))
	})
	require.False(t, whatIf.ProfitAndLoss[0].Revenue.Equal(base.ProfitAndLoss[0].Revenue))
}

// Scenario 3 (scaled classification check): a small enough project costs
// out to Shishu; a mid-size one to Kishore; a larger one to Tarun.
func TestCalculateDPR_ClassificationTiers(t *testing.T) {
	shishu := mudra.MudraDPRInput{
		FixedAssets:          []mudra.FixedAsset{{Name: "Tools", Amount: decimal.NewFromInt(30000), LifeYears: 5}},
		WorkingCapitalMonths: decimal.NewFromInt(1),
		UnitsFullCapacity:    decimal.NewFromInt(10),
		UtilizationYear1:     decimal.NewFromFloat(0.5),
		PromoterPct:          decimal.NewFromInt(20),
		InterestRatePct:      decimal.NewFromInt(9),
		TenureMonths:         24,
		SellingPrice:         decimal.NewFromInt(50),
		RawMaterialPerUnit:   decimal.NewFromInt(5),
	}
	out := mudra.CalculateDPR(shishu)
	require.Equal(t, mudra.Shishu, out.Classification)

	kishore := shishu
	kishore.FixedAssets = []mudra.FixedAsset{{Name: "Machine", Amount: decimal.NewFromInt(200000), LifeYears: 10}}
	outKishore := mudra.CalculateDPR(kishore)
	require.Equal(t, mudra.Kishore, outKishore.Classification)

	tarun := shishu
	tarun.FixedAssets = []mudra.FixedAsset{{Name: "Plant", Amount: decimal.NewFromInt(600000), LifeYears: 10}}
	outTarun := mudra.CalculateDPR(tarun)
	require.Equal(t, mudra.Tarun, outTarun.Classification)
}
