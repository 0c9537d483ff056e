// Package analytics implements the C4 Analytics component from spec
// §4.9: monthly trend derivation, next-month prediction, the health
// score, and subscription/recurring-habit detection. RebuildDailyTrends
// itself lives in internal/ledger (it mutates the ledger's own cache);
// this package covers the read-side analytics built on top of it.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors ledger.TransactionType so this package stays
// decoupled from the ledger package's full surface; the composition root
// adapts ledger.Transaction into this shape.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is the narrow view of a ledger row analytics needs.
type Transaction struct {
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
	Merchant    string
	Date        time.Time
}

// MonthlyTotal mirrors ledger.MonthlyTotal.
type MonthlyTotal struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// LedgerReader is the narrow dependency analytics needs from the Ledger
// store, declared here per the consumer-owned-interface convention used
// throughout the module.
type LedgerReader interface {
	MonthlyTotals(userID string, sinceMonth string) (map[string]MonthlyTotal, error)
	AllForUser(userID string) ([]Transaction, error)
}

// MonthlyTrendPoint is one row of MonthlyTrends' output.
type MonthlyTrendPoint struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Savings decimal.Decimal `json:"savings"`
}
