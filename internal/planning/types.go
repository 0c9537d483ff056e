// Package planning implements the C1 Planning store from spec §3: budgets,
// goals, scheduled payments (including loan/EMI), merchant rules, and the
// "straightforward relational records" (vendors, invoices, bill splits,
// business profile) the spec names without detailing further.
package planning

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Budget mirrors spec §3. Spent is a cache mirroring ledger expenses for
// (user_id, category) — see invariant I1 and the RebuildBudgetSpent
// reconciliation routine in service.go.
type Budget struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Spent     decimal.Decimal `json:"spent"`
	Period    Period          `json:"period"`
	StartDate time.Time       `json:"start_date"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	Icon      string          `json:"icon,omitempty"`
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

// Goal mirrors spec §3's invariant I3: status = completed iff
// current_amount >= target_amount after any AddFunds call.
type Goal struct {
	ID            int64           `json:"id"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Status        GoalStatus      `json:"status"`
	Icon          string          `json:"icon,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

type PaymentStatus string

const (
	PaymentActive    PaymentStatus = "active"
	PaymentPaused    PaymentStatus = "paused"
	PaymentCompleted PaymentStatus = "completed"
)

type PaymentType string

const (
	PaymentTypeRegular PaymentType = "regular"
	PaymentTypeLoan    PaymentType = "loan"
	PaymentTypeEMI     PaymentType = "emi"
)

// ScheduledPayment mirrors spec §3. The loan/EMI fields are only
// meaningful when PaymentType is loan or emi; see MarkPaid (spec §4.2).
type ScheduledPayment struct {
	ID          int64         `json:"id"`
	UserID      string        `json:"user_id"`
	Name        string        `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string        `json:"category"`
	Frequency   Frequency     `json:"frequency"`
	DueDate     time.Time     `json:"due_date"`
	NextDueDate time.Time     `json:"next_due_date"`
	IsAutopay   bool          `json:"is_autopay"`
	Status      PaymentStatus `json:"status"`
	ReminderDays int          `json:"reminder_days"`
	LastPaidDate *time.Time   `json:"last_paid_date,omitempty"`
	PaymentType PaymentType   `json:"payment_type"`

	// Loan/EMI-only fields.
	InterestRate         decimal.Decimal `json:"interest_rate,omitempty"`
	TotalTenure          int             `json:"total_tenure,omitempty"`
	PrincipalOutstanding decimal.Decimal `json:"principal_outstanding,omitempty"`
	TotalInterestPaid    decimal.Decimal `json:"total_interest_paid,omitempty"`
	TotalPrincipalPaid   decimal.Decimal `json:"total_principal_paid,omitempty"`
}

// MerchantRule maps a normalized keyword to a category (spec §4.4).
type MerchantRule struct {
	ID       int64  `json:"id"`
	UserID   string `json:"user_id"`
	Keyword  string `json:"keyword"` // UNIQUE, normalized upper-case
	Category string `json:"category"`
	IsAuto   bool   `json:"is_auto"`
}

// Vendor is a business's supplier, invoiced via VendorPayment records.
type Vendor struct {
	ID      int64  `json:"id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

type VendorPaymentStatus string

const (
	VendorPaymentPending VendorPaymentStatus = "pending"
	VendorPaymentPaid    VendorPaymentStatus = "paid"
)

// VendorPayment is a bill owed to a Vendor; PaymentHistory rows accumulate
// against it until AmountPaid reaches Amount.
type VendorPayment struct {
	ID         int64               `json:"id"`
	UserID     string              `json:"user_id"`
	VendorID   int64               `json:"vendor_id"`
	Amount     decimal.Decimal     `json:"amount"`
	AmountPaid decimal.Decimal     `json:"amount_paid"`
	DueDate    time.Time           `json:"due_date"`
	Status     VendorPaymentStatus `json:"status"`
}

// PaymentHistory records one partial or full settlement against a
// VendorPayment.
type PaymentHistory struct {
	ID              int64           `json:"id"`
	VendorPaymentID int64           `json:"vendor_payment_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAt          time.Time       `json:"paid_at"`
}

// Customer is a business's billing counterparty on an Invoice.
type Customer struct {
	ID      int64  `json:"id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Invoice is a GST-aware bill raised against a Customer. Subtotal, GST and
// Total are computed server-side from InvoiceItems at creation time (see
// service.go's CreateInvoice) rather than trusted from the caller.
type Invoice struct {
	ID         int64           `json:"id"`
	UserID     string          `json:"user_id"`
	CustomerID int64           `json:"customer_id"`
	Number     string          `json:"number"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    time.Time       `json:"due_date"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	GSTAmount  decimal.Decimal `json:"gst_amount"`
	Total      decimal.Decimal `json:"total"`
	Status     InvoiceStatus   `json:"status"`
	Notes      string          `json:"notes,omitempty"`
}

// InvoiceItem is a single line of an Invoice; GSTRate is a percentage
// (e.g. 18 for 18%).
type InvoiceItem struct {
	ID          int64           `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// BusinessProfile holds a user's business name, GST/PAN identifiers and
// address. It is stored and returned as-is; invoices and the MudraEngine do
// not read it.
type BusinessProfile struct {
	UserID       string `json:"user_id"`
	BusinessName string `json:"business_name"`
	GSTIN        string `json:"gstin,omitempty"`
	PAN          string `json:"pan,omitempty"`
	Address      string `json:"address,omitempty"`
}

type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitPercentage SplitMethod = "percentage"
	SplitExact      SplitMethod = "exact"
)

// BillSplit is a shared-expense bill divided among participants (spec's
// "straightforward relational record" group); SplitItems carry the
// per-participant owed/paid state machine.
type BillSplit struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Method      SplitMethod     `json:"method"`
	Date        time.Time       `json:"date"`
}

// BillItem is one line item of a BillSplit's underlying bill.
type BillItem struct {
	ID          int64           `json:"id"`
	BillSplitID int64           `json:"bill_split_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type SplitItemStatus string

const (
	SplitItemOwed SplitItemStatus = "owed"
	SplitItemPaid SplitItemStatus = "paid"
)

// SplitItem is one participant's share of a BillSplit.
type SplitItem struct {
	ID              int64           `json:"id"`
	BillSplitID     int64           `json:"bill_split_id"`
	ParticipantName string          `json:"participant_name"`
	AmountOwed      decimal.Decimal `json:"amount_owed"`
	Status          SplitItemStatus `json:"status"`
}
