package tools

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/calculator"
)

// decodeArgs is the shared args->struct step every pure-calculator handler
// uses; malformed model-supplied JSON becomes a failed Result instead of
// a panic or a silently zero-valued struct.
func decodeArgs(args json.RawMessage, dst any) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, dst)
}

func schema(properties string, required ...string) json.RawMessage {
	req, _ := json.Marshal(required)
	return json.RawMessage(`{"type":"object","properties":` + properties + `,"required":` + string(req) + `}`)
}

// RegisterCalculators wires the calculate_* tool family (spec §4.5): pure,
// deterministic, never needs_confirmation.
func RegisterCalculators(r *Registry) {
	r.Register(Tool{
		Name: "calculate_sip", Family: FamilyCalculator,
		Description: "Project the future value of a monthly SIP investment.",
		Schema: schema(`{"monthly_investment":{"type":"number"},"annual_rate_pct":{"type":"number"},"duration_months":{"type":"integer"}}`,
			"monthly_investment", "annual_rate_pct", "duration_months"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				MonthlyInvestment float64 `json:"monthly_investment"`
				AnnualRatePct     float64 `json:"annual_rate_pct"`
				DurationMonths    int     `json:"duration_months"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_sip", err.Error())
			}
			res := calculator.SIP(decimal.NewFromFloat(in.MonthlyInvestment), decimal.NewFromFloat(in.AnnualRatePct), in.DurationMonths)
			return ok("calculate_sip", res, "SIP projection computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_emi", Family: FamilyCalculator,
		Description: "Compute the monthly EMI for a loan.",
		Schema: schema(`{"principal":{"type":"number"},"annual_rate_pct":{"type":"number"},"tenure_months":{"type":"integer"}}`,
			"principal", "annual_rate_pct", "tenure_months"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				Principal     float64 `json:"principal"`
				AnnualRatePct float64 `json:"annual_rate_pct"`
				TenureMonths  int     `json:"tenure_months"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_emi", err.Error())
			}
			res := calculator.EMI(decimal.NewFromFloat(in.Principal), decimal.NewFromFloat(in.AnnualRatePct), in.TenureMonths)
			return ok("calculate_emi", res, "EMI computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_fd", Family: FamilyCalculator,
		Description: "Project the maturity value of a fixed deposit.",
		Schema: schema(`{"principal":{"type":"number"},"annual_rate_pct":{"type":"number"},"years":{"type":"number"},"compounding_per_year":{"type":"integer"}}`,
			"principal", "annual_rate_pct", "years"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				Principal          float64 `json:"principal"`
				AnnualRatePct      float64 `json:"annual_rate_pct"`
				Years              float64 `json:"years"`
				CompoundingPerYear int     `json:"compounding_per_year"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_fd", err.Error())
			}
			res := calculator.FD(decimal.NewFromFloat(in.Principal), decimal.NewFromFloat(in.AnnualRatePct), decimal.NewFromFloat(in.Years), in.CompoundingPerYear)
			return ok("calculate_fd", res, "FD maturity computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_rd", Family: FamilyCalculator,
		Description: "Project the maturity value of a recurring deposit.",
		Schema: schema(`{"monthly_installment":{"type":"number"},"annual_rate_pct":{"type":"number"},"tenure_months":{"type":"integer"}}`,
			"monthly_installment", "annual_rate_pct", "tenure_months"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				MonthlyInstallment float64 `json:"monthly_installment"`
				AnnualRatePct      float64 `json:"annual_rate_pct"`
				TenureMonths       int     `json:"tenure_months"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_rd", err.Error())
			}
			res := calculator.RD(decimal.NewFromFloat(in.MonthlyInstallment), decimal.NewFromFloat(in.AnnualRatePct), in.TenureMonths)
			return ok("calculate_rd", res, "RD maturity computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_lumpsum", Family: FamilyCalculator,
		Description: "Project the future value of a one-time lumpsum investment.",
		Schema: schema(`{"principal":{"type":"number"},"annual_rate_pct":{"type":"number"},"years":{"type":"number"}}`,
			"principal", "annual_rate_pct", "years"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				Principal     float64 `json:"principal"`
				AnnualRatePct float64 `json:"annual_rate_pct"`
				Years         float64 `json:"years"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_lumpsum", err.Error())
			}
			res := calculator.Lumpsum(decimal.NewFromFloat(in.Principal), decimal.NewFromFloat(in.AnnualRatePct), decimal.NewFromFloat(in.Years))
			return ok("calculate_lumpsum", res, "Lumpsum projection computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_cagr", Family: FamilyCalculator,
		Description: "Compute the compound annual growth rate between two values.",
		Schema: schema(`{"initial_value":{"type":"number"},"final_value":{"type":"number"},"years":{"type":"number"}}`,
			"initial_value", "final_value", "years"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				InitialValue float64 `json:"initial_value"`
				FinalValue   float64 `json:"final_value"`
				Years        float64 `json:"years"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_cagr", err.Error())
			}
			res := calculator.CAGR(decimal.NewFromFloat(in.InitialValue), decimal.NewFromFloat(in.FinalValue), decimal.NewFromFloat(in.Years))
			return ok("calculate_cagr", map[string]decimal.Decimal{"cagr_pct": res}, "CAGR computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_goal_sip", Family: FamilyCalculator,
		Description: "Compute the monthly SIP required to reach a target amount.",
		Schema: schema(`{"target_amount":{"type":"number"},"annual_rate_pct":{"type":"number"},"duration_months":{"type":"integer"}}`,
			"target_amount", "annual_rate_pct", "duration_months"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				TargetAmount   float64 `json:"target_amount"`
				AnnualRatePct  float64 `json:"annual_rate_pct"`
				DurationMonths int     `json:"duration_months"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_goal_sip", err.Error())
			}
			res := calculator.GoalSIP(decimal.NewFromFloat(in.TargetAmount), decimal.NewFromFloat(in.AnnualRatePct), in.DurationMonths)
			return ok("calculate_goal_sip", res, "Goal SIP computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_compound_interest", Family: FamilyCalculator,
		Description: "Compute compound interest maturity for an arbitrary compounding frequency.",
		Schema: schema(`{"principal":{"type":"number"},"annual_rate_pct":{"type":"number"},"years":{"type":"number"},"times_per_year":{"type":"integer"}}`,
			"principal", "annual_rate_pct", "years"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				Principal     float64 `json:"principal"`
				AnnualRatePct float64 `json:"annual_rate_pct"`
				Years         float64 `json:"years"`
				TimesPerYear  int     `json:"times_per_year"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_compound_interest", err.Error())
			}
			res := calculator.CompoundInterest(decimal.NewFromFloat(in.Principal), decimal.NewFromFloat(in.AnnualRatePct), decimal.NewFromFloat(in.Years), in.TimesPerYear)
			return ok("calculate_compound_interest", res, "Compound interest computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_emergency_fund", Family: FamilyCalculator,
		Description: "Recommend an emergency fund size and report shortfall against current savings.",
		Schema: schema(`{"monthly_expenses":{"type":"number"},"months_target":{"type":"number"},"current_savings":{"type":"number"}}`,
			"monthly_expenses", "current_savings"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				MonthlyExpenses float64 `json:"monthly_expenses"`
				MonthsTarget    float64 `json:"months_target"`
				CurrentSavings  float64 `json:"current_savings"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_emergency_fund", err.Error())
			}
			res := calculator.EmergencyFund(decimal.NewFromFloat(in.MonthlyExpenses), decimal.NewFromFloat(in.MonthsTarget), decimal.NewFromFloat(in.CurrentSavings))
			return ok("calculate_emergency_fund", res, "Emergency fund recommendation computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_savings_rate", Family: FamilyCalculator,
		Description: "Compute savings rate as a percentage of income.",
		Schema: schema(`{"income":{"type":"number"},"expenses":{"type":"number"}}`,
			"income", "expenses"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				Income   float64 `json:"income"`
				Expenses float64 `json:"expenses"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_savings_rate", err.Error())
			}
			res := calculator.SavingsRate(decimal.NewFromFloat(in.Income), decimal.NewFromFloat(in.Expenses))
			return ok("calculate_savings_rate", map[string]decimal.Decimal{"savings_rate_pct": res}, "Savings rate computed")
		},
	})

	r.Register(Tool{
		Name: "calculate_tax", Family: FamilyCalculator,
		Description: "Compute Indian income tax by slab for the old or new regime.",
		Schema: schema(`{"gross_income":{"type":"number"},"deductions":{"type":"number"},"regime":{"type":"string","enum":["old","new"]}}`,
			"gross_income", "regime"),
		Handle: func(_ context.Context, _ string, args json.RawMessage) Result {
			var in struct {
				GrossIncome float64 `json:"gross_income"`
				Deductions  float64 `json:"deductions"`
				Regime      string  `json:"regime"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("calculate_tax", err.Error())
			}
			regime := calculator.RegimeOld
			if in.Regime == string(calculator.RegimeNew) {
				regime = calculator.RegimeNew
			}
			res := calculator.Tax(decimal.NewFromFloat(in.GrossIncome), decimal.NewFromFloat(in.Deductions), regime)
			return ok("calculate_tax", res, "Tax computed")
		},
	})
}
