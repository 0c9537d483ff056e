package planning

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/apperr"
)

// ExpenseRecorder is the narrow interface Planning depends on to insert the
// synthetic expense transaction MarkPaid produces (spec §4.2 step 3).
// Implemented by ledger.Store; Planning never imports ledger's full
// surface, only this method, to keep the dependency one-directional.
type ExpenseRecorder interface {
	RecordExpense(userID, category, description string, amount decimal.Decimal, date time.Time) error
}

type Store struct {
	repo    Repository
	ledger  ExpenseRecorder // may be nil: MarkPaid skips the synthetic transaction
}

func NewStore(repo Repository, ledger ExpenseRecorder) *Store {
	return &Store{repo: repo, ledger: ledger}
}

// --- Budget ---

func (s *Store) CreateBudget(b *Budget) (*Budget, error) {
	if b.Amount.Sign() <= 0 {
		return nil, apperr.Validation("budget amount must be positive")
	}
	if b.Category == "" {
		return nil, apperr.Validation("budget category is required")
	}
	if b.Spent.IsZero() {
		b.Spent = decimal.Zero
	}
	return s.repo.CreateBudget(b)
}

func (s *Store) ListBudgets(userID string) ([]*Budget, error) { return s.repo.ListBudgets(userID) }

func (s *Store) DeleteBudget(userID string, id int64) error { return s.repo.DeleteBudget(userID, id) }

// IncrementSpent satisfies ledger.BudgetSpentTracker (invariant I1): every
// budget matching (user_id, category) has its spent bumped by amount.
func (s *Store) IncrementSpent(userID, category string, amount decimal.Decimal) error {
	return s.repo.IncrementBudgetSpent(userID, category, amount)
}

// RebuildBudgetSpent recomputes every budget's spent field from the given
// category totals, discarding drift accumulated from deletes (spec §9
// documents that Ledger never decrements spent on delete; this is the
// reconciliation escape hatch).
func (s *Store) RebuildBudgetSpent(userID string, totals map[string]decimal.Decimal) error {
	budgets, err := s.repo.ListBudgets(userID)
	if err != nil {
		return err
	}
	for _, b := range budgets {
		if err := s.repo.SetBudgetSpent(userID, b.ID, totals[b.Category]); err != nil {
			return err
		}
	}
	return nil
}

// --- Goal ---

func (s *Store) CreateGoal(g *Goal) (*Goal, error) {
	if g.TargetAmount.Sign() <= 0 {
		return nil, apperr.Validation("goal target amount must be positive")
	}
	if g.Status == "" {
		g.Status = GoalActive
	}
	return s.repo.CreateGoal(g)
}

func (s *Store) ListGoals(userID string) ([]*Goal, error) { return s.repo.ListGoals(userID) }

// AddFunds applies invariant I3: status becomes completed the moment
// current_amount reaches or exceeds target_amount, and reopens to active
// if funds are later withdrawn below target (delta may be negative).
func (s *Store) AddFunds(userID string, id int64, delta decimal.Decimal) (*Goal, error) {
	g, err := s.repo.GetGoal(userID, id)
	if err != nil {
		return nil, apperr.NotFound("goal not found")
	}
	g.CurrentAmount = g.CurrentAmount.Add(delta)
	if g.CurrentAmount.Sign() < 0 {
		g.CurrentAmount = decimal.Zero
	}
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalCompleted
	} else if g.Status == GoalCompleted {
		g.Status = GoalActive
	}
	return s.repo.UpdateGoal(g)
}

// --- ScheduledPayment ---

func (s *Store) CreateScheduledPayment(p *ScheduledPayment) (*ScheduledPayment, error) {
	if p.Amount.Sign() <= 0 {
		return nil, apperr.Validation("payment amount must be positive")
	}
	if p.Status == "" {
		p.Status = PaymentActive
	}
	if p.NextDueDate.IsZero() {
		p.NextDueDate = p.DueDate
	}
	return s.repo.CreateScheduledPayment(p)
}

func (s *Store) ListScheduledPayments(userID string) ([]*ScheduledPayment, error) {
	return s.repo.ListScheduledPayments(userID)
}

// addPeriod implements spec §4.2 step 1: calendar arithmetic with
// month-end clamping (e.g. Jan 31 + monthly -> Feb 28/29, not Mar 3).
func addPeriod(t time.Time, freq Frequency) time.Time {
	switch freq {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyYearly:
		return clampToMonth(t, t.Month(), t.Year()+1, t.Day())
	default: // monthly
		y, m, d := t.Year(), t.Month(), t.Day()
		m++
		if m > 12 {
			m = 1
			y++
		}
		return clampToMonth(t, m, y, d)
	}
}

func clampToMonth(t time.Time, month time.Month, year, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// MarkPaid implements spec §4.2 in full: advances next_due_date, applies
// the EMI principal/interest split when payment_type is loan/emi, and
// records a synthetic expense transaction via the Ledger store.
func (s *Store) MarkPaid(userID string, paymentID int64, now time.Time) (*ScheduledPayment, error) {
	p, err := s.repo.GetScheduledPayment(userID, paymentID)
	if err != nil {
		return nil, apperr.NotFound("scheduled payment not found")
	}

	description := fmt.Sprintf("%s payment", p.Name)
	isLoan := p.PaymentType == PaymentTypeLoan || p.PaymentType == PaymentTypeEMI

	if isLoan && p.InterestRate.Sign() > 0 {
		interestComponent := p.PrincipalOutstanding.Mul(p.InterestRate).Div(decimal.NewFromInt(1200))
		principalComponent := p.Amount.Sub(interestComponent)
		if principalComponent.Sign() < 0 {
			principalComponent = decimal.Zero
		}
		p.PrincipalOutstanding = p.PrincipalOutstanding.Sub(principalComponent)
		if p.PrincipalOutstanding.Sign() < 0 {
			p.PrincipalOutstanding = decimal.Zero
		}
		p.TotalInterestPaid = p.TotalInterestPaid.Add(interestComponent)
		p.TotalPrincipalPaid = p.TotalPrincipalPaid.Add(principalComponent)
		if p.PrincipalOutstanding.IsZero() {
			p.Status = PaymentCompleted
		}
		description = fmt.Sprintf("EMI: %s (principal %s, interest %s)", p.Name,
			principalComponent.StringFixed(2), interestComponent.StringFixed(2))
	}

	p.NextDueDate = addPeriod(p.NextDueDate, p.Frequency)
	p.LastPaidDate = &now

	if s.ledger != nil {
		if err := s.ledger.RecordExpense(userID, p.Category, description, p.Amount, now); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateScheduledPayment(p)
}

// --- MerchantRule ---

func (s *Store) CreateMerchantRule(r *MerchantRule) (*MerchantRule, error) {
	if r.Keyword == "" || r.Category == "" {
		return nil, apperr.Validation("merchant rule requires keyword and category")
	}
	return s.repo.CreateMerchantRule(r)
}

func (s *Store) ListMerchantRules(userID string) ([]*MerchantRule, error) {
	return s.repo.ListMerchantRules(userID)
}

func (s *Store) DeleteMerchantRule(userID string, id int64) error {
	return s.repo.DeleteMerchantRule(userID, id)
}

// --- Vendor / Customer / Invoice ---

func (s *Store) CreateVendor(v *Vendor) (*Vendor, error) { return s.repo.CreateVendor(v) }

// RecordVendorPayment appends a PaymentHistory row against vendorPaymentID
// and marks the VendorPayment paid once AmountPaid reaches Amount.
func (s *Store) RecordVendorPayment(userID string, vendorPaymentID int64, amount decimal.Decimal, paidAt time.Time) (*PaymentHistory, error) {
	vp, err := s.repo.GetVendorPayment(userID, vendorPaymentID)
	if err != nil {
		return nil, apperr.NotFound("vendor payment not found")
	}
	vp.AmountPaid = vp.AmountPaid.Add(amount)
	if vp.AmountPaid.GreaterThanOrEqual(vp.Amount) {
		vp.Status = VendorPaymentPaid
	}
	if _, err := s.repo.UpdateVendorPayment(vp); err != nil {
		return nil, err
	}
	return s.repo.CreatePaymentHistory(&PaymentHistory{VendorPaymentID: vendorPaymentID, Amount: amount, PaidAt: paidAt})
}

func (s *Store) CreateCustomer(c *Customer) (*Customer, error) { return s.repo.CreateCustomer(c) }

// GST rates on an InvoiceItem are percentages (e.g. 18 for 18%). Subtotal,
// GSTAmount and Total are derived here, never trusted from the caller.
func (s *Store) CreateInvoice(inv *Invoice, items []*InvoiceItem) (*Invoice, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("invoice requires at least one line item")
	}
	subtotal, gst := decimal.Zero, decimal.Zero
	for _, it := range items {
		line := it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(line)
		gst = gst.Add(line.Mul(it.GSTRate).Div(decimal.NewFromInt(100)))
	}
	inv.Subtotal = subtotal
	inv.GSTAmount = gst
	inv.Total = subtotal.Add(gst)
	if inv.Status == "" {
		inv.Status = InvoiceDraft
	}
	return s.repo.CreateInvoice(inv, items)
}

func (s *Store) ListInvoices(userID string) ([]*Invoice, error) { return s.repo.ListInvoices(userID) }

func (s *Store) MarkInvoicePaid(userID string, id int64) (*Invoice, error) {
	return s.repo.UpdateInvoiceStatus(userID, id, InvoicePaid)
}

func (s *Store) GetBusinessProfile(userID string) (*BusinessProfile, error) {
	return s.repo.GetBusinessProfile(userID)
}

func (s *Store) UpsertBusinessProfile(p *BusinessProfile) (*BusinessProfile, error) {
	return s.repo.UpsertBusinessProfile(p)
}

// --- BillSplit ---

// CreateBillSplit derives each participant's owed share from Method:
// equal divides TotalAmount evenly (remainder goes to the last
// participant so shares always sum exactly), percentage multiplies the
// caller-supplied percentages, exact takes caller-supplied amounts as-is.
func (s *Store) CreateBillSplit(b *BillSplit, items []*BillItem, participants []string, shares []decimal.Decimal) (*BillSplit, error) {
	if len(participants) == 0 {
		return nil, apperr.Validation("bill split requires at least one participant")
	}
	if len(shares) != len(participants) {
		return nil, apperr.Validation("shares must match participants")
	}

	splits := make([]*SplitItem, len(participants))
	switch b.Method {
	case SplitPercentage:
		for i, name := range participants {
			owed := b.TotalAmount.Mul(shares[i]).Div(decimal.NewFromInt(100)).Round(2)
			splits[i] = &SplitItem{ParticipantName: name, AmountOwed: owed, Status: SplitItemOwed}
		}
	case SplitExact:
		for i, name := range participants {
			splits[i] = &SplitItem{ParticipantName: name, AmountOwed: shares[i], Status: SplitItemOwed}
		}
	default: // equal
		n := decimal.NewFromInt(int64(len(participants)))
		share := b.TotalAmount.DivRound(n, 2)
		var allocated decimal.Decimal
		for i, name := range participants {
			amt := share
			if i == len(participants)-1 {
				amt = b.TotalAmount.Sub(allocated)
			} else {
				allocated = allocated.Add(share)
			}
			splits[i] = &SplitItem{ParticipantName: name, AmountOwed: amt, Status: SplitItemOwed}
		}
	}
	return s.repo.CreateBillSplit(b, items, splits)
}

func (s *Store) ListBillSplits(userID string) ([]*BillSplit, error) { return s.repo.ListBillSplits(userID) }

func (s *Store) GetBillSplit(userID string, id int64) (*BillSplit, []*BillItem, []*SplitItem, error) {
	return s.repo.GetBillSplit(userID, id)
}

func (s *Store) MarkSplitItemPaid(userID string, splitID, splitItemID int64) (*SplitItem, error) {
	return s.repo.MarkSplitItemPaid(userID, splitID, splitItemID)
}
