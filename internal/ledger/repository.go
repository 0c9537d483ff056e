package ledger

import "github.com/shopspring/decimal"

// Repository is the persistence contract for the Ledger store (spec §4.1).
// A concrete implementation (postgres, in-memory) owns the single-writer
// lock for this store; callers never see a half-written row.
type Repository interface {
	Create(t *Transaction) (*Transaction, error)
	Query(f Filter) ([]*Transaction, error)
	GetByID(userID string, id int64) (*Transaction, error)
	Update(userID string, id int64, category, description, notes string) (*Transaction, error)
	Delete(userID string, id int64) error

	// Daily trend cache.
	DeleteDailyTrends(userID string) error
	InsertDailyTrend(t *DailyTrend) error
	GetDailyTrends(userID string, from, to *string) ([]*DailyTrend, error)

	// Aggregation primitives used by summaries/cashflow/analytics so the
	// whole table never needs to be pulled into process memory.
	SumByTypeAndRange(userID string, typ TransactionType, from, to *string) (decimal.Decimal, error)
	SumByCategoryAndRange(userID string, typ TransactionType, from, to *string) (map[string]decimal.Decimal, error)
	SumBefore(userID string, before string) (income decimal.Decimal, expense decimal.Decimal, err error)
	GroupByDateAndType(userID string, from, to *string) (map[string]map[TransactionType]decimal.Decimal, error)
	MonthlyTotals(userID string, sinceMonth string) (map[string]MonthlyTotal, error)
	AllForUser(userID string) ([]*Transaction, error)
}

// MonthlyTotal is one row of the month->(income,expense) aggregation used
// by analytics.MonthlyTrends.
type MonthlyTotal struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}
