package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/calculator"
	"github.com/wealthin/agent-backend/internal/tools"
)

func TestRegisterCalculators_SIPNeverNeedsConfirmation(t *testing.T) {
	r := tools.NewRegistry()
	tools.RegisterCalculators(r)

	res := r.Dispatch(context.Background(), "user-1", "calculate_sip",
		[]byte(`{"monthly_investment":10000,"annual_rate_pct":12,"duration_months":120}`))
	require.True(t, res.Success)
	require.False(t, res.NeedsConfirmation)
}

func TestRegisterCalculators_TaxDefaultsToOldRegime(t *testing.T) {
	r := tools.NewRegistry()
	tools.RegisterCalculators(r)

	res := r.Dispatch(context.Background(), "user-1", "calculate_tax",
		[]byte(`{"gross_income":900000,"deductions":50000}`))
	require.True(t, res.Success)
	require.Equal(t, calculator.RegimeOld, res.Data.(calculator.TaxResult).Regime)
}

func TestRegisterCalculators_MalformedArgsFail(t *testing.T) {
	r := tools.NewRegistry()
	tools.RegisterCalculators(r)

	res := r.Dispatch(context.Background(), "user-1", "calculate_emi", []byte(`not json`))
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)
}

func TestRegistry_Specs_FiltersByFamily(t *testing.T) {
	r := tools.NewRegistry()
	tools.RegisterCalculators(r)
	tools.RegisterGovTools(r)

	calcOnly := r.Specs(tools.FamilyCalculator)
	for _, s := range calcOnly {
		require.NotContains(t, s.Name, "gov_verify")
	}
	require.NotEmpty(t, calcOnly)
}

func TestRegistry_Dispatch_UnknownToolFails(t *testing.T) {
	r := tools.NewRegistry()
	res := r.Dispatch(context.Background(), "user-1", "does_not_exist", nil)
	require.False(t, res.Success)
}
