// Package mudra implements the C6 MudraEngine from spec §4.7: the
// 12-step MUDRA loan-scheme Detailed Project Report calculation
// (classification, means of finance, EMI, loan schedule, depreciation,
// P&L/BS projections, DSCR, IRR, break-even, bankability) plus the
// what-if override mechanism.
package mudra

import "github.com/shopspring/decimal"

// FixedAsset is one line item of project_cost.fixed_assets.
type FixedAsset struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	LifeYears int             `json:"life_years,omitempty"` // default 10 if zero
}

// MudraDPRInput is the full input record for CalculateDPR (spec §4.7).
type MudraDPRInput struct {
	FixedAssets          []FixedAsset    `json:"fixed_assets"`
	RentMonthly          decimal.Decimal `json:"rent_monthly"`
	WagesMonthly         decimal.Decimal `json:"wages_monthly"`
	UtilitiesMonthly     decimal.Decimal `json:"utilities_monthly"`
	OtherMonthly         decimal.Decimal `json:"other_monthly"`
	RawMaterialPerUnit   decimal.Decimal `json:"raw_material_per_unit"`
	UnitsFullCapacity    decimal.Decimal `json:"units_full_capacity"` // monthly capacity in units
	UtilizationYear1     decimal.Decimal `json:"utilization_year1"`  // fraction, e.g. 0.6
	WorkingCapitalMonths decimal.Decimal `json:"working_capital_months"`
	PromoterPct          decimal.Decimal `json:"promoter_pct"`
	InterestRatePct      decimal.Decimal `json:"interest_rate_pct"`
	TenureMonths         int             `json:"tenure_months"`
	SellingPrice         decimal.Decimal `json:"selling_price"`
	InflationPct         decimal.Decimal `json:"inflation_pct"`
	UtilizationByYear    []decimal.Decimal `json:"utilization_by_year"` // util_y for y=1..5; falls back to UtilizationYear1 repeated
	TaxRatePct           decimal.Decimal `json:"tax_rate_pct"`
}

// Classification is the Mudra scheme tier by project cost (spec §4.7 step 2).
type Classification string

const (
	Shishu  Classification = "Shishu"
	Kishore Classification = "Kishore"
	Tarun   Classification = "Tarun"
)

// LoanScheduleYear is one of the 5 yearly rows (spec §4.7 step 5).
type LoanScheduleYear struct {
	Year             int             `json:"year"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
}

// ProfitAndLossYear is one of the 5 P&L projection rows (spec §4.7 step 7).
type ProfitAndLossYear struct {
	Year         int             `json:"year"`
	Units        decimal.Decimal `json:"units"`
	Revenue      decimal.Decimal `json:"revenue"`
	Costs        decimal.Decimal `json:"costs"`
	EBITDA       decimal.Decimal `json:"ebitda"`
	Depreciation decimal.Decimal `json:"depreciation"`
	Interest     decimal.Decimal `json:"interest"`
	PBT          decimal.Decimal `json:"pbt"`
	Tax          decimal.Decimal `json:"tax"`
	PAT          decimal.Decimal `json:"pat"`
}

// BalanceSheetYear is one of the 5 BS projection rows (spec §4.7 step 8).
type BalanceSheetYear struct {
	Year              int             `json:"year"`
	GrossFixedAssets  decimal.Decimal `json:"gross_fixed_assets"`
	AccumulatedDep    decimal.Decimal `json:"accumulated_depreciation"`
	NetFixedAssets    decimal.Decimal `json:"net_fixed_assets"`
	CurrentAssets     decimal.Decimal `json:"current_assets"`
	LoanOutstanding   decimal.Decimal `json:"loan_outstanding"`
	PromoterEquity    decimal.Decimal `json:"promoter_equity"`
	RetainedEarnings  decimal.Decimal `json:"retained_earnings"`
}

// DSCRBand classifies average DSCR per spec §4.7 step 9.
type DSCRBand string

const (
	DSCRExcellent DSCRBand = "Excellent"
	DSCRGood      DSCRBand = "Good"
	DSCRMarginal  DSCRBand = "Marginal"
	DSCRWeak      DSCRBand = "Weak"
	DSCRPoor      DSCRBand = "Poor"
)

// BreakEven is the output of spec §4.7 step 11.
type BreakEven struct {
	Achievable   bool            `json:"achievable"`
	Units        decimal.Decimal `json:"units,omitempty"`
	Revenue      decimal.Decimal `json:"revenue,omitempty"`
	Months       int             `json:"months,omitempty"`
}

// MudraDPROutput is the full result of CalculateDPR.
type MudraDPROutput struct {
	TotalProjectCost   decimal.Decimal      `json:"total_project_cost"`
	Classification     Classification       `json:"classification"`
	PromoterContribution decimal.Decimal    `json:"promoter_contribution"`
	LoanAmount         decimal.Decimal      `json:"loan_amount"`
	EMI                decimal.Decimal      `json:"emi"`
	LoanSchedule       []LoanScheduleYear   `json:"loan_schedule"`
	AnnualDepreciation decimal.Decimal      `json:"annual_depreciation"`
	ProfitAndLoss      []ProfitAndLossYear  `json:"profit_and_loss"`
	BalanceSheet       []BalanceSheetYear   `json:"balance_sheet"`
	DSCRByYear         []decimal.Decimal    `json:"dscr_by_year"`
	AverageDSCR        decimal.Decimal      `json:"average_dscr"`
	DSCRBand           DSCRBand             `json:"dscr_band"`
	IRRPct             decimal.Decimal      `json:"irr_pct"`
	BreakEven          BreakEven            `json:"break_even"`
	IsBankable         bool                 `json:"is_bankable"`
	Recommendation     string               `json:"recommendation"`
}

// defaultAssetLifeYears is used when a FixedAsset omits LifeYears (spec §9:
// "confirm with product" — the specification leaves this unresolved, so
// the original source's own default of 10 years is carried forward).
const defaultAssetLifeYears = 10
