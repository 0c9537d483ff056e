// Package extract implements the C2 Extractors described in spec §4.3:
// PDF bank-statement parsing (table strategy, line strategy, optional
// cloud document-intelligence collaborator), the PhonePe special case,
// the receipt/vision extractor, and cross-result deduplication.
package extract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/apperr"
)

// TransactionType mirrors ledger.TransactionType without importing the
// ledger package; the caller maps this onto a ledger.Transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is one extracted candidate row, not yet persisted.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Type        TransactionType `json:"type"`
	Source      string          `json:"source"` // "table" | "line" | "docintel" | "phonepe" | "receipt"
}

// MaxPages is the page budget from spec §4.3.
const MaxPages = 5

// ErrTooManyPages is the typed error for documents over MaxPages.
var ErrTooManyPages = apperr.PageLimitExceeded("document exceeds page limit")

// ReceiptResult is the normalized output of the receipt/vision extractor.
type ReceiptResult struct {
	MerchantName  string          `json:"merchant_name"`
	Date          *time.Time      `json:"date,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	Items         []ReceiptItem   `json:"items,omitempty"`
	Category      string          `json:"category,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	RawText       string          `json:"raw_text,omitempty"`
}

// ReceiptItem is one line item on a scanned receipt.
type ReceiptItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}
