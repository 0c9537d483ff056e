package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/apperr"
)

// BudgetSpentTracker is the narrow interface the Ledger store depends on to
// satisfy invariant I1 (spec §3: "for every expense, the corresponding
// Budget row ... has its spent incremented by amount at insert time").
// Planning implements this; Ledger never imports the planning package
// directly, matching the teacher's pattern of interfaces declared by the
// consumer rather than the provider.
type BudgetSpentTracker interface {
	IncrementSpent(userID, category string, amount decimal.Decimal) error
}

// Store is the Ledger store (C1) described in spec §4.1.
type Store struct {
	repo   Repository
	budget BudgetSpentTracker // may be nil: budget tracking is optional
}

// NewStore wires a Ledger store over a Repository. budget may be nil if
// the caller does not need I1 applied (e.g. a standalone ledger import
// tool); production wiring always supplies the Planning store's tracker.
func NewStore(repo Repository, budget BudgetSpentTracker) *Store {
	return &Store{repo: repo, budget: budget}
}

// CreateTransaction assigns an id, stamps created_at, validates the
// amount, and — for expenses — applies invariant I1 as a same-process
// side effect (spec §3, §4.1).
func (s *Store) CreateTransaction(t *Transaction) (*Transaction, error) {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.Validation("amount must be positive")
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return nil, apperr.Validation("type must be income or expense")
	}
	if t.UserID == "" {
		return nil, apperr.Validation("user_id is required")
	}
	t.CreatedAt = time.Now().UTC()

	created, err := s.repo.Create(t)
	if err != nil {
		return nil, apperr.Internal("create transaction", err)
	}

	if created.Type == TypeExpense && s.budget != nil && created.Category != "" {
		// I1: budget.spent mirrors the expense sum at insert time. Deletion
		// does not decrement it (documented drift, spec §9); the
		// authoritative truth remains the ledger and is repaired by
		// RebuildBudgetSpent (wealthctl reconcile-budgets), never here.
		if err := s.budget.IncrementSpent(created.UserID, created.Category, created.Amount); err != nil {
			return created, apperr.Internal("apply budget invariant I1", err)
		}
	}
	return created, nil
}

// QueryTransactions returns rows newest-first by (date desc, time desc,
// created_at desc), per spec §4.1.
func (s *Store) QueryTransactions(f Filter) ([]*Transaction, error) {
	rows, err := s.repo.Query(f)
	if err != nil {
		return nil, apperr.Internal("query transactions", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		ti, tj := "", ""
		if rows[i].Time != nil {
			ti = *rows[i].Time
		}
		if rows[j].Time != nil {
			tj = *rows[j].Time
		}
		if ti != tj {
			return ti > tj
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (s *Store) GetTransaction(userID string, id int64) (*Transaction, error) {
	t, err := s.repo.GetByID(userID, id)
	if err != nil {
		return nil, apperr.NotFound("transaction not found")
	}
	return t, nil
}

// UpdateTransaction mutates only the fields spec §3 allows to change
// after creation: category, description, notes.
func (s *Store) UpdateTransaction(userID string, id int64, category, description, notes string) (*Transaction, error) {
	t, err := s.repo.Update(userID, id, category, description, notes)
	if err != nil {
		return nil, apperr.NotFound("transaction not found")
	}
	return t, nil
}

// DeleteTransaction removes a transaction. Per spec §9, this
// intentionally does not decrement Budget.spent; see RebuildBudgetSpent
// in the planning package, run by wealthctl reconcile-budgets, for the repair.
func (s *Store) DeleteTransaction(userID string, id int64) error {
	if err := s.repo.Delete(userID, id); err != nil {
		return apperr.NotFound("transaction not found")
	}
	return nil
}

const dateLayout = "2006-01-02"

// GetSpendingSummary returns {total_income, total_expenses, net,
// savings_rate, by_category} for [start, end] (spec §4.1).
func (s *Store) GetSpendingSummary(userID string, start, end time.Time) (*SpendingSummary, error) {
	from, to := start.Format(dateLayout), end.Format(dateLayout)
	income, err := s.repo.SumByTypeAndRange(userID, TypeIncome, &from, &to)
	if err != nil {
		return nil, apperr.Internal("sum income", err)
	}
	expense, err := s.repo.SumByTypeAndRange(userID, TypeExpense, &from, &to)
	if err != nil {
		return nil, apperr.Internal("sum expenses", err)
	}
	byCategory, err := s.repo.SumByCategoryAndRange(userID, TypeExpense, &from, &to)
	if err != nil {
		return nil, apperr.Internal("sum by category", err)
	}
	net := income.Sub(expense)
	rate := decimal.Zero
	if income.GreaterThan(decimal.Zero) {
		rate = net.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return &SpendingSummary{
		TotalIncome:   income,
		TotalExpenses: expense,
		Net:           net,
		SavingsRate:   rate,
		ByCategory:    byCategory,
	}, nil
}

// GetCashflow returns a day-indexed series over [start, end] with a
// running balance seeded by the sum of all transactions strictly before
// start (spec §4.1).
func (s *Store) GetCashflow(userID string, start, end time.Time) ([]*CashflowPoint, error) {
	seedIncome, seedExpense, err := s.repo.SumBefore(userID, start.Format(dateLayout))
	if err != nil {
		return nil, apperr.Internal("seed cashflow balance", err)
	}
	balance := seedIncome.Sub(seedExpense)

	from, to := start.Format(dateLayout), end.Format(dateLayout)
	grouped, err := s.repo.GroupByDateAndType(userID, &from, &to)
	if err != nil {
		return nil, apperr.Internal("group by date", err)
	}

	var points []*CashflowPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		day := grouped[key]
		income := day[TypeIncome]
		expense := day[TypeExpense]
		balance = balance.Add(income).Sub(expense)
		points = append(points, &CashflowPoint{
			Date:           d,
			Income:         income,
			Expense:        expense,
			RunningBalance: balance,
		})
	}
	return points, nil
}

// RebuildDailyTrends deletes and recomputes DailyTrend rows for userID so
// that, after the call, invariant I2 holds: for every (user_id, date) the
// cached totals equal the sum of transactions of that day (spec §4.9).
func (s *Store) RebuildDailyTrends(userID string) error {
	if err := s.repo.DeleteDailyTrends(userID); err != nil {
		return apperr.Internal("clear daily trends", err)
	}
	grouped, err := s.repo.GroupByDateAndType(userID, nil, nil)
	if err != nil {
		return apperr.Internal("group transactions for rebuild", err)
	}
	dates := make([]string, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		parsed, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		totals := grouped[d]
		if err := s.repo.InsertDailyTrend(&DailyTrend{
			UserID:      userID,
			Date:        parsed,
			TotalSpent:  totals[TypeExpense],
			TotalIncome: totals[TypeIncome],
		}); err != nil {
			return apperr.Internal("insert daily trend", err)
		}
	}
	return nil
}

// MonthlyTotals exposes the ledger's direct month aggregation, used by
// analytics.MonthlyTrends which must read the ledger directly rather than
// the (possibly stale) daily-trend cache — see spec §9's open question on
// the LIMIT months*3 bug: this computes the actual calendar window
// instead of row-limiting.
func (s *Store) MonthlyTotals(userID string, sinceMonth string) (map[string]MonthlyTotal, error) {
	totals, err := s.repo.MonthlyTotals(userID, sinceMonth)
	if err != nil {
		return nil, apperr.Internal("monthly totals", err)
	}
	return totals, nil
}

// AllForUser returns every transaction for userID, used by analytics that
// need the full history (subscription detection, health score).
func (s *Store) AllForUser(userID string) ([]*Transaction, error) {
	rows, err := s.repo.AllForUser(userID)
	if err != nil {
		return nil, apperr.Internal("list all transactions", err)
	}
	return rows, nil
}

// RecordExpense inserts a synthetic expense transaction on behalf of
// another store (the Planning store's ScheduledPayment.MarkPaid, spec
// §4.2 step 3). It satisfies planning.ExpenseRecorder.
func (s *Store) RecordExpense(userID, category, description string, amount decimal.Decimal, date time.Time) error {
	_, err := s.CreateTransaction(&Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        TypeExpense,
		Category:    category,
		Description: description,
		Date:        date,
	})
	return err
}
