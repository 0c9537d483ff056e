// Package ledger implements the C1 Ledger store from spec §3: the
// transaction table and the derived daily-trend cache, plus the
// spending-summary and cashflow read models built on top of them.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors spec §3: every transaction is either income or
// an expense.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is the Ledger store's core row. ID, UserID and CreatedAt are
// immutable once assigned by CreateTransaction; Category, Description and
// Notes are the only fields a later update may touch (spec §3).
type Transaction struct {
	ID            int64           `json:"id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes,omitempty"`
	Date          time.Time       `json:"date"` // day precision, user's local day
	Time          *string         `json:"time,omitempty"`
	Merchant      string          `json:"merchant,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	IsRecurring   bool            `json:"is_recurring"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DailyTrend is the derived cache keyed by (user_id, date); spec I2.
type DailyTrend struct {
	UserID      string          `json:"user_id"`
	Date        time.Time       `json:"date"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	TotalIncome decimal.Decimal `json:"total_income"`
}

// Filter is the query shape accepted by QueryTransactions (spec §4.1).
type Filter struct {
	UserID    string
	Category  string
	Type      TransactionType
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

// SpendingSummary is the result of GetSpendingSummary.
type SpendingSummary struct {
	TotalIncome   decimal.Decimal            `json:"total_income"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	Net           decimal.Decimal            `json:"net"`
	SavingsRate   decimal.Decimal            `json:"savings_rate"` // percent, 0 if no income
	ByCategory    map[string]decimal.Decimal `json:"by_category"`
}

// CashflowPoint is one day of the day-indexed cashflow series.
type CashflowPoint struct {
	Date           time.Time       `json:"date"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}
