package planning_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/planning"
	"github.com/wealthin/agent-backend/internal/planning/memory"
)

type stubExpenseRecorder struct {
	calls []recordedExpense
}

type recordedExpense struct {
	userID, category, description string
	amount                        decimal.Decimal
}

func (s *stubExpenseRecorder) RecordExpense(userID, category, description string, amount decimal.Decimal, date time.Time) error {
	s.calls = append(s.calls, recordedExpense{userID, category, description, amount})
	return nil
}

// I3: AddFunds flips status to completed exactly when current >= target,
// and back to active if funds are later withdrawn.
func TestAddFunds_SatisfiesI3(t *testing.T) {
	repo := memory.NewRepository()
	store := planning.NewStore(repo, nil)

	g, err := store.CreateGoal(&planning.Goal{UserID: "u1", Name: "Emergency fund", TargetAmount: decimal.RequireFromString("10000")})
	require.NoError(t, err)
	require.Equal(t, planning.GoalActive, g.Status)

	g, err = store.AddFunds("u1", g.ID, decimal.RequireFromString("6000"))
	require.NoError(t, err)
	require.Equal(t, planning.GoalActive, g.Status)

	g, err = store.AddFunds("u1", g.ID, decimal.RequireFromString("4000"))
	require.NoError(t, err)
	require.Equal(t, planning.GoalCompleted, g.Status)

	g, err = store.AddFunds("u1", g.ID, decimal.RequireFromString("-5000"))
	require.NoError(t, err)
	require.Equal(t, planning.GoalActive, g.Status)
}

// Mirrors spec §8's EMI scenario: principal=1,000,000, rate=9%,
// tenure_months=240, emi≈8,997.26. MarkPaid applies one month's split.
func TestMarkPaid_SplitsInterestAndPrincipal(t *testing.T) {
	repo := memory.NewRepository()
	recorder := &stubExpenseRecorder{}
	store := planning.NewStore(repo, recorder)

	p, err := store.CreateScheduledPayment(&planning.ScheduledPayment{
		UserID:               "u1",
		Name:                 "Home loan",
		Amount:               decimal.RequireFromString("8997.26"),
		Category:             "EMI & Loans",
		Frequency:            planning.FrequencyMonthly,
		DueDate:              time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		PaymentType:          planning.PaymentTypeEMI,
		InterestRate:         decimal.RequireFromString("9"),
		PrincipalOutstanding: decimal.RequireFromString("1000000"),
	})
	require.NoError(t, err)

	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	p, err = store.MarkPaid("u1", p.ID, now)
	require.NoError(t, err)

	expectedInterest := decimal.RequireFromString("1000000").Mul(decimal.RequireFromString("9")).Div(decimal.NewFromInt(1200))
	require.True(t, p.TotalInterestPaid.Equal(expectedInterest))
	expectedPrincipal := decimal.RequireFromString("8997.26").Sub(expectedInterest)
	require.True(t, p.TotalPrincipalPaid.Equal(expectedPrincipal))
	require.True(t, p.PrincipalOutstanding.Equal(decimal.RequireFromString("1000000").Sub(expectedPrincipal)))

	// Month-end due date (Jan 31) clamps to Feb 28 in a non-leap year.
	require.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), p.NextDueDate)

	require.Len(t, recorder.calls, 1)
	require.Equal(t, "EMI & Loans", recorder.calls[0].category)
	require.True(t, recorder.calls[0].amount.Equal(decimal.RequireFromString("8997.26")))
}

func TestMarkPaid_CompletesWhenPrincipalReachesZero(t *testing.T) {
	repo := memory.NewRepository()
	store := planning.NewStore(repo, nil)

	p, err := store.CreateScheduledPayment(&planning.ScheduledPayment{
		UserID:               "u1",
		Name:                 "Small loan",
		Amount:               decimal.RequireFromString("1010"),
		Frequency:            planning.FrequencyMonthly,
		DueDate:              time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PaymentType:          planning.PaymentTypeLoan,
		InterestRate:         decimal.RequireFromString("12"),
		PrincipalOutstanding: decimal.RequireFromString("1000"),
	})
	require.NoError(t, err)

	p, err = store.MarkPaid("u1", p.ID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, p.PrincipalOutstanding.IsZero())
	require.Equal(t, planning.PaymentCompleted, p.Status)
}

// Regular (non-loan) payments skip the principal/interest split entirely.
func TestMarkPaid_RegularPaymentAdvancesDueDateOnly(t *testing.T) {
	repo := memory.NewRepository()
	store := planning.NewStore(repo, nil)

	p, err := store.CreateScheduledPayment(&planning.ScheduledPayment{
		UserID:      "u1",
		Name:        "Netflix",
		Amount:      decimal.RequireFromString("500"),
		Frequency:   planning.FrequencyMonthly,
		DueDate:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		PaymentType: planning.PaymentTypeRegular,
	})
	require.NoError(t, err)

	p, err = store.MarkPaid("u1", p.ID, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), p.NextDueDate)
	require.True(t, p.PrincipalOutstanding.IsZero())
}

func TestCreateInvoice_ComputesGSTAndTotalsFromLineItems(t *testing.T) {
	repo := memory.NewRepository()
	store := planning.NewStore(repo, nil)

	inv, err := store.CreateInvoice(&planning.Invoice{UserID: "u1", CustomerID: 1, Number: "INV-001"}, []*planning.InvoiceItem{
		{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1000), GSTRate: decimal.NewFromInt(18)},
		{Description: "Hosting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500), GSTRate: decimal.NewFromInt(18)},
	})
	require.NoError(t, err)
	require.True(t, inv.Subtotal.Equal(decimal.RequireFromString("10500")))
	require.True(t, inv.GSTAmount.Equal(decimal.RequireFromString("1890")))
	require.True(t, inv.Total.Equal(decimal.RequireFromString("12390")))
	require.Equal(t, planning.InvoiceDraft, inv.Status)
}

func TestCreateBillSplit_EqualMethodSharesSumExactly(t *testing.T) {
	repo := memory.NewRepository()
	store := planning.NewStore(repo, nil)

	b, err := store.CreateBillSplit(
		&planning.BillSplit{UserID: "u1", Title: "Dinner", TotalAmount: decimal.RequireFromString("100.00"), Method: planning.SplitEqual},
		nil,
		[]string{"A", "B", "C"},
		[]decimal.Decimal{{}, {}, {}},
	)
	require.NoError(t, err)

	_, _, splits, err := store.GetBillSplit("u1", b.ID)
	require.NoError(t, err)
	require.Len(t, splits, 3)
	var sum decimal.Decimal
	for _, sp := range splits {
		sum = sum.Add(sp.AmountOwed)
	}
	require.True(t, sum.Equal(decimal.RequireFromString("100.00")))
}

func TestIncrementSpent_AppliesToMatchingCategoryBudgets(t *testing.T) {
	repo := memory.NewRepository()
	store := planning.NewStore(repo, nil)

	b, err := store.CreateBudget(&planning.Budget{UserID: "u1", Name: "Food", Category: "food", Amount: decimal.RequireFromString("5000"), Period: planning.PeriodMonthly, StartDate: time.Now()})
	require.NoError(t, err)

	require.NoError(t, store.IncrementSpent("u1", "food", decimal.RequireFromString("120.50")))
	require.NoError(t, store.IncrementSpent("u1", "food", decimal.RequireFromString("30.00")))

	got, err := repo.GetBudget("u1", b.ID)
	require.NoError(t, err)
	require.True(t, got.Spent.Equal(decimal.RequireFromString("150.50")))
}
