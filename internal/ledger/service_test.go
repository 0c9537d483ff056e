package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/ledger"
	"github.com/wealthin/agent-backend/internal/ledger/memory"
)

type stubBudgetTracker struct {
	spent map[string]decimal.Decimal // category -> total
}

func newStubBudgetTracker() *stubBudgetTracker {
	return &stubBudgetTracker{spent: make(map[string]decimal.Decimal)}
}

func (s *stubBudgetTracker) IncrementSpent(userID, category string, amount decimal.Decimal) error {
	s.spent[category] = s.spent[category].Add(amount)
	return nil
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// P1: sum of spent deltas equals sum of expense amounts for that category.
func TestCreateTransaction_AppliesBudgetInvariantI1(t *testing.T) {
	repo := memory.NewRepository()
	tracker := newStubBudgetTracker()
	store := ledger.NewStore(repo, tracker)

	amounts := []string{"100.00", "250.50", "10.00"}
	var total decimal.Decimal
	for _, a := range amounts {
		amt := decimal.RequireFromString(a)
		total = total.Add(amt)
		_, err := store.CreateTransaction(&ledger.Transaction{
			UserID:   "u1",
			Amount:   amt,
			Type:     ledger.TypeExpense,
			Category: "food",
			Date:     date("2026-01-05"),
		})
		require.NoError(t, err)
	}
	require.True(t, total.Equal(tracker.spent["food"]))
}

func TestCreateTransaction_RejectsNonPositiveAmount(t *testing.T) {
	store := ledger.NewStore(memory.NewRepository(), nil)
	_, err := store.CreateTransaction(&ledger.Transaction{
		UserID: "u1", Amount: decimal.Zero, Type: ledger.TypeExpense, Date: date("2026-01-01"),
	})
	require.Error(t, err)
}

// I2 / P2: after a rebuild, cached totals equal the sum of that day's transactions.
func TestRebuildDailyTrends_SatisfiesI2(t *testing.T) {
	repo := memory.NewRepository()
	store := ledger.NewStore(repo, nil)

	mustCreate := func(typ ledger.TransactionType, amount string, d string) {
		_, err := store.CreateTransaction(&ledger.Transaction{
			UserID: "u1", Amount: decimal.RequireFromString(amount), Type: typ,
			Category: "x", Date: date(d),
		})
		require.NoError(t, err)
	}
	mustCreate(ledger.TypeExpense, "50.00", "2026-02-01")
	mustCreate(ledger.TypeExpense, "25.00", "2026-02-01")
	mustCreate(ledger.TypeIncome, "1000.00", "2026-02-01")
	mustCreate(ledger.TypeExpense, "10.00", "2026-02-02")

	require.NoError(t, store.RebuildDailyTrends("u1"))

	trends, err := repo.GetDailyTrends("u1", nil, nil)
	require.NoError(t, err)
	require.Len(t, trends, 2)

	byDate := map[string]*ledger.DailyTrend{}
	for _, tr := range trends {
		byDate[tr.Date.Format("2006-01-02")] = tr
	}
	require.True(t, byDate["2026-02-01"].TotalSpent.Equal(decimal.RequireFromString("75.00")))
	require.True(t, byDate["2026-02-01"].TotalIncome.Equal(decimal.RequireFromString("1000.00")))
	require.True(t, byDate["2026-02-02"].TotalSpent.Equal(decimal.RequireFromString("10.00")))
}

// R2: rebuilding twice in a row leaves the cache unchanged.
func TestRebuildDailyTrends_Idempotent(t *testing.T) {
	repo := memory.NewRepository()
	store := ledger.NewStore(repo, nil)
	_, err := store.CreateTransaction(&ledger.Transaction{
		UserID: "u1", Amount: decimal.RequireFromString("5.00"), Type: ledger.TypeExpense,
		Category: "x", Date: date("2026-03-01"),
	})
	require.NoError(t, err)

	require.NoError(t, store.RebuildDailyTrends("u1"))
	first, _ := repo.GetDailyTrends("u1", nil, nil)
	require.NoError(t, store.RebuildDailyTrends("u1"))
	second, _ := repo.GetDailyTrends("u1", nil, nil)

	require.Equal(t, len(first), len(second))
	require.True(t, first[0].TotalSpent.Equal(second[0].TotalSpent))
}

func TestGetCashflow_SeedsRunningBalanceFromPriorTransactions(t *testing.T) {
	repo := memory.NewRepository()
	store := ledger.NewStore(repo, nil)
	must := func(typ ledger.TransactionType, amount string, d string) {
		_, err := store.CreateTransaction(&ledger.Transaction{
			UserID: "u1", Amount: decimal.RequireFromString(amount), Type: typ, Category: "x", Date: date(d),
		})
		require.NoError(t, err)
	}
	must(ledger.TypeIncome, "1000.00", "2026-01-01")
	must(ledger.TypeExpense, "200.00", "2026-01-02")
	must(ledger.TypeExpense, "100.00", "2026-01-10")

	points, err := store.GetCashflow("u1", date("2026-01-10"), date("2026-01-10"))
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.True(t, points[0].RunningBalance.Equal(decimal.RequireFromString("700.00")))
}

func TestGetSpendingSummary_ComputesSavingsRate(t *testing.T) {
	repo := memory.NewRepository()
	store := ledger.NewStore(repo, nil)
	must := func(typ ledger.TransactionType, amount string, category string) {
		_, err := store.CreateTransaction(&ledger.Transaction{
			UserID: "u1", Amount: decimal.RequireFromString(amount), Type: typ, Category: category, Date: date("2026-04-01"),
		})
		require.NoError(t, err)
	}
	must(ledger.TypeIncome, "1000.00", "salary")
	must(ledger.TypeExpense, "400.00", "food")

	summary, err := store.GetSpendingSummary("u1", date("2026-04-01"), date("2026-04-30"))
	require.NoError(t, err)
	require.True(t, summary.Net.Equal(decimal.RequireFromString("600.00")))
	require.True(t, summary.SavingsRate.Equal(decimal.RequireFromString("60.00")))
	require.True(t, summary.ByCategory["food"].Equal(decimal.RequireFromString("400.00")))
}
