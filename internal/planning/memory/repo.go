// Package memory implements planning.Repository in-process, following the
// same pattern as ledger/memory: plain maps guarded by one mutex.
package memory

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/planning"
)

var ErrNotFound = planning.ErrNotFound

type Repository struct {
	mu sync.Mutex

	nextID int64

	budgets           map[int64]*planning.Budget
	goals             map[int64]*planning.Goal
	scheduledPayments map[int64]*planning.ScheduledPayment
	merchantRules     map[int64]*planning.MerchantRule
	vendors           map[int64]*planning.Vendor
	vendorPayments    map[int64]*planning.VendorPayment
	paymentHistory    map[int64]*planning.PaymentHistory
	customers         map[int64]*planning.Customer
	invoices          map[int64]*planning.Invoice
	invoiceItems      map[int64][]*planning.InvoiceItem
	businessProfiles  map[string]*planning.BusinessProfile
	billSplits        map[int64]*planning.BillSplit
	billItems         map[int64][]*planning.BillItem
	splitItems        map[int64][]*planning.SplitItem
}

func NewRepository() *Repository {
	return &Repository{
		budgets:           make(map[int64]*planning.Budget),
		goals:             make(map[int64]*planning.Goal),
		scheduledPayments: make(map[int64]*planning.ScheduledPayment),
		merchantRules:     make(map[int64]*planning.MerchantRule),
		vendors:           make(map[int64]*planning.Vendor),
		vendorPayments:    make(map[int64]*planning.VendorPayment),
		paymentHistory:    make(map[int64]*planning.PaymentHistory),
		customers:         make(map[int64]*planning.Customer),
		invoices:          make(map[int64]*planning.Invoice),
		invoiceItems:      make(map[int64][]*planning.InvoiceItem),
		businessProfiles:  make(map[string]*planning.BusinessProfile),
		billSplits:        make(map[int64]*planning.BillSplit),
		billItems:         make(map[int64][]*planning.BillItem),
		splitItems:        make(map[int64][]*planning.SplitItem),
	}
}

func (r *Repository) id() int64 {
	r.nextID++
	return r.nextID
}

// --- Budget ---

func (r *Repository) CreateBudget(b *planning.Budget) (*planning.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *b
	out.ID = r.id()
	r.budgets[out.ID] = &out
	cp := out
	return &cp, nil
}

func (r *Repository) ListBudgets(userID string) ([]*planning.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) GetBudget(userID string, id int64) (*planning.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[id]
	if !ok || b.UserID != userID {
		return nil, planning.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *Repository) UpdateBudget(b *planning.Budget) (*planning.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.budgets[b.ID]
	if !ok || existing.UserID != b.UserID {
		return nil, planning.ErrNotFound
	}
	cp := *b
	r.budgets[b.ID] = &cp
	out := cp
	return &out, nil
}

func (r *Repository) DeleteBudget(userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[id]
	if !ok || b.UserID != userID {
		return planning.ErrNotFound
	}
	delete(r.budgets, id)
	return nil
}

func (r *Repository) IncrementBudgetSpent(userID, category string, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.budgets {
		if b.UserID == userID && b.Category == category {
			b.Spent = b.Spent.Add(delta)
		}
	}
	return nil
}

func (r *Repository) SetBudgetSpent(userID string, id int64, spent decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.budgets[id]
	if !ok || b.UserID != userID {
		return planning.ErrNotFound
	}
	b.Spent = spent
	return nil
}

// --- Goal ---

func (r *Repository) CreateGoal(g *planning.Goal) (*planning.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *g
	out.ID = r.id()
	r.goals[out.ID] = &out
	cp := out
	return &cp, nil
}

func (r *Repository) ListGoals(userID string) ([]*planning.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) GetGoal(userID string, id int64) (*planning.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, planning.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *Repository) UpdateGoal(g *planning.Goal) (*planning.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.goals[g.ID]
	if !ok || existing.UserID != g.UserID {
		return nil, planning.ErrNotFound
	}
	cp := *g
	r.goals[g.ID] = &cp
	out := cp
	return &out, nil
}

func (r *Repository) DeleteGoal(userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return planning.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

// --- ScheduledPayment ---

func (r *Repository) CreateScheduledPayment(p *planning.ScheduledPayment) (*planning.ScheduledPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *p
	out.ID = r.id()
	r.scheduledPayments[out.ID] = &out
	cp := out
	return &cp, nil
}

func (r *Repository) ListScheduledPayments(userID string) ([]*planning.ScheduledPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.ScheduledPayment
	for _, p := range r.scheduledPayments {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) GetScheduledPayment(userID string, id int64) (*planning.ScheduledPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.scheduledPayments[id]
	if !ok || p.UserID != userID {
		return nil, planning.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *Repository) UpdateScheduledPayment(p *planning.ScheduledPayment) (*planning.ScheduledPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.scheduledPayments[p.ID]
	if !ok || existing.UserID != p.UserID {
		return nil, planning.ErrNotFound
	}
	cp := *p
	r.scheduledPayments[p.ID] = &cp
	out := cp
	return &out, nil
}

func (r *Repository) DeleteScheduledPayment(userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.scheduledPayments[id]
	if !ok || p.UserID != userID {
		return planning.ErrNotFound
	}
	delete(r.scheduledPayments, id)
	return nil
}

// --- MerchantRule ---

func (r *Repository) CreateMerchantRule(rule *planning.MerchantRule) (*planning.MerchantRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *rule
	out.ID = r.id()
	r.merchantRules[out.ID] = &out
	cp := out
	return &cp, nil
}

func (r *Repository) ListMerchantRules(userID string) ([]*planning.MerchantRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.MerchantRule
	for _, rule := range r.merchantRules {
		if rule.UserID == userID {
			cp := *rule
			out = append(out, &cp)
		}
	}
	// Longest keyword first, matching the priority chain in spec §4.4.
	sort.Slice(out, func(i, j int) bool { return len(out[i].Keyword) > len(out[j].Keyword) })
	return out, nil
}

func (r *Repository) DeleteMerchantRule(userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.merchantRules[id]
	if !ok || rule.UserID != userID {
		return planning.ErrNotFound
	}
	delete(r.merchantRules, id)
	return nil
}

// --- Vendor / payments ---

func (r *Repository) CreateVendor(v *planning.Vendor) (*planning.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *v
	out.ID = r.id()
	r.vendors[out.ID] = &out
	cp := out
	return &cp, nil
}

func (r *Repository) ListVendors(userID string) ([]*planning.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.Vendor
	for _, v := range r.vendors {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) GetVendor(userID string, id int64) (*planning.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok || v.UserID != userID {
		return nil, planning.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *Repository) CreateVendorPayment(p *planning.VendorPayment) (*planning.VendorPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *p
	if out.ID == 0 {
		out.ID = r.id()
	}
	r.vendorPayments[out.ID] = &out
	cp := out
	return &cp, nil
}

func (r *Repository) GetVendorPayment(userID string, id int64) (*planning.VendorPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.vendorPayments[id]
	if !ok || p.UserID != userID {
		return nil, planning.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *Repository) UpdateVendorPayment(p *planning.VendorPayment) (*planning.VendorPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.vendorPayments[p.ID]
	if !ok || existing.UserID != p.UserID {
		return nil, planning.ErrNotFound
	}
	cp := *p
	r.vendorPayments[p.ID] = &cp
	out := cp
	return &out, nil
}

func (r *Repository) ListVendorPayments(userID string, vendorID int64) ([]*planning.VendorPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.VendorPayment
	for _, p := range r.vendorPayments {
		if p.UserID == userID && p.VendorID == vendorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) CreatePaymentHistory(h *planning.PaymentHistory) (*planning.PaymentHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *h
	out.ID = r.id()
	r.paymentHistory[out.ID] = &out
	cp := out
	return &cp, nil
}

// --- Customer / Invoice ---

func (r *Repository) CreateCustomer(c *planning.Customer) (*planning.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *c
	out.ID = r.id()
	r.customers[out.ID] = &out
	cp := out
	return &cp, nil
}

func (r *Repository) ListCustomers(userID string) ([]*planning.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.Customer
	for _, c := range r.customers {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) GetCustomer(userID string, id int64) (*planning.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok || c.UserID != userID {
		return nil, planning.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *Repository) CreateInvoice(inv *planning.Invoice, items []*planning.InvoiceItem) (*planning.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *inv
	out.ID = r.id()
	r.invoices[out.ID] = &out
	stored := make([]*planning.InvoiceItem, len(items))
	for i, it := range items {
		cp := *it
		cp.InvoiceID = out.ID
		stored[i] = &cp
	}
	r.invoiceItems[out.ID] = stored
	cp := out
	return &cp, nil
}

func (r *Repository) ListInvoices(userID string) ([]*planning.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) GetInvoice(userID string, id int64) (*planning.Invoice, []*planning.InvoiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil, planning.ErrNotFound
	}
	cp := *inv
	items := r.invoiceItems[id]
	out := make([]*planning.InvoiceItem, len(items))
	for i, it := range items {
		c := *it
		out[i] = &c
	}
	return &cp, out, nil
}

func (r *Repository) UpdateInvoiceStatus(userID string, id int64, status planning.InvoiceStatus) (*planning.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, planning.ErrNotFound
	}
	inv.Status = status
	cp := *inv
	return &cp, nil
}

func (r *Repository) GetBusinessProfile(userID string) (*planning.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.businessProfiles[userID]
	if !ok {
		return nil, planning.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *Repository) UpsertBusinessProfile(p *planning.BusinessProfile) (*planning.BusinessProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.businessProfiles[p.UserID] = &cp
	out := cp
	return &out, nil
}

// --- BillSplit ---

func (r *Repository) CreateBillSplit(b *planning.BillSplit, items []*planning.BillItem, splits []*planning.SplitItem) (*planning.BillSplit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *b
	out.ID = r.id()
	r.billSplits[out.ID] = &out

	storedItems := make([]*planning.BillItem, len(items))
	for i, it := range items {
		cp := *it
		cp.BillSplitID = out.ID
		storedItems[i] = &cp
	}
	r.billItems[out.ID] = storedItems

	storedSplits := make([]*planning.SplitItem, len(splits))
	for i, sp := range splits {
		cp := *sp
		cp.ID = r.id()
		cp.BillSplitID = out.ID
		storedSplits[i] = &cp
	}
	r.splitItems[out.ID] = storedSplits

	cp := out
	return &cp, nil
}

func (r *Repository) GetBillSplit(userID string, id int64) (*planning.BillSplit, []*planning.BillItem, []*planning.SplitItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.billSplits[id]
	if !ok || b.UserID != userID {
		return nil, nil, nil, planning.ErrNotFound
	}
	cp := *b
	items := append([]*planning.BillItem(nil), r.billItems[id]...)
	splits := append([]*planning.SplitItem(nil), r.splitItems[id]...)
	return &cp, items, splits, nil
}

func (r *Repository) ListBillSplits(userID string) ([]*planning.BillSplit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*planning.BillSplit
	for _, b := range r.billSplits {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) MarkSplitItemPaid(userID string, splitID, splitItemID int64) (*planning.SplitItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.billSplits[splitID]
	if !ok || b.UserID != userID {
		return nil, planning.ErrNotFound
	}
	for _, sp := range r.splitItems[splitID] {
		if sp.ID == splitItemID {
			sp.Status = planning.SplitItemPaid
			cp := *sp
			return &cp, nil
		}
	}
	return nil, planning.ErrNotFound
}
