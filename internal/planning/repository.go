package planning

import "github.com/shopspring/decimal"

// Repository persists the Planning store's entities. Grounded on the
// teacher's per-domain repository interfaces (one method group per
// aggregate, a single implementation backs all of them since they share
// one schema and one connection pool).
type Repository interface {
	CreateBudget(b *Budget) (*Budget, error)
	ListBudgets(userID string) ([]*Budget, error)
	GetBudget(userID string, id int64) (*Budget, error)
	UpdateBudget(b *Budget) (*Budget, error)
	DeleteBudget(userID string, id int64) error
	IncrementBudgetSpent(userID, category string, delta decimal.Decimal) error
	SetBudgetSpent(userID string, id int64, spent decimal.Decimal) error

	CreateGoal(g *Goal) (*Goal, error)
	ListGoals(userID string) ([]*Goal, error)
	GetGoal(userID string, id int64) (*Goal, error)
	UpdateGoal(g *Goal) (*Goal, error)
	DeleteGoal(userID string, id int64) error

	CreateScheduledPayment(p *ScheduledPayment) (*ScheduledPayment, error)
	ListScheduledPayments(userID string) ([]*ScheduledPayment, error)
	GetScheduledPayment(userID string, id int64) (*ScheduledPayment, error)
	UpdateScheduledPayment(p *ScheduledPayment) (*ScheduledPayment, error)
	DeleteScheduledPayment(userID string, id int64) error

	CreateMerchantRule(r *MerchantRule) (*MerchantRule, error)
	ListMerchantRules(userID string) ([]*MerchantRule, error)
	DeleteMerchantRule(userID string, id int64) error

	CreateVendor(v *Vendor) (*Vendor, error)
	ListVendors(userID string) ([]*Vendor, error)
	GetVendor(userID string, id int64) (*Vendor, error)
	CreateVendorPayment(p *VendorPayment) (*VendorPayment, error)
	GetVendorPayment(userID string, id int64) (*VendorPayment, error)
	UpdateVendorPayment(p *VendorPayment) (*VendorPayment, error)
	ListVendorPayments(userID string, vendorID int64) ([]*VendorPayment, error)
	CreatePaymentHistory(h *PaymentHistory) (*PaymentHistory, error)

	CreateCustomer(c *Customer) (*Customer, error)
	ListCustomers(userID string) ([]*Customer, error)
	GetCustomer(userID string, id int64) (*Customer, error)

	CreateInvoice(inv *Invoice, items []*InvoiceItem) (*Invoice, error)
	ListInvoices(userID string) ([]*Invoice, error)
	GetInvoice(userID string, id int64) (*Invoice, []*InvoiceItem, error)
	UpdateInvoiceStatus(userID string, id int64, status InvoiceStatus) (*Invoice, error)

	GetBusinessProfile(userID string) (*BusinessProfile, error)
	UpsertBusinessProfile(p *BusinessProfile) (*BusinessProfile, error)

	CreateBillSplit(b *BillSplit, items []*BillItem, splits []*SplitItem) (*BillSplit, error)
	GetBillSplit(userID string, id int64) (*BillSplit, []*BillItem, []*SplitItem, error)
	ListBillSplits(userID string) ([]*BillSplit, error)
	MarkSplitItemPaid(userID string, splitID, splitItemID int64) (*SplitItem, error)
}
