// Package memory implements ledger.Repository in-process, for tests and
// for any deployment that does not need Postgres durability. Grounded on
// the teacher's testutil.MockUserRepository pattern: a struct holding
// plain Go maps/slices guarded by a mutex, no query planner involved.
package memory

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/ledger"
)

type Repository struct {
	mu           sync.Mutex
	nextID       int64
	transactions map[int64]*ledger.Transaction
	dailyTrends  map[string]map[string]*ledger.DailyTrend // userID -> date -> trend
}

func NewRepository() *Repository {
	return &Repository{
		transactions: make(map[int64]*ledger.Transaction),
		dailyTrends:  make(map[string]map[string]*ledger.DailyTrend),
	}
}

const dateLayout = "2006-01-02"

func (r *Repository) Create(t *ledger.Transaction) (*ledger.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	out := *t
	out.ID = r.nextID
	r.transactions[out.ID] = &out
	copy := out
	return &copy, nil
}

func (r *Repository) Query(f ledger.Filter) ([]*ledger.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ledger.Transaction
	for _, t := range r.transactions {
		if t.UserID != f.UserID {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.DateFrom != nil && t.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && t.Date.After(*f.DateTo) {
			continue
		}
		copy := *t
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if f.Offset > 0 && f.Offset < len(out) {
		out = out[f.Offset:]
	} else if f.Offset >= len(out) {
		out = nil
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *Repository) GetByID(userID string, id int64) (*ledger.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return nil, ledger.ErrNotFound
	}
	copy := *t
	return &copy, nil
}

func (r *Repository) Update(userID string, id int64, category, description, notes string) (*ledger.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return nil, ledger.ErrNotFound
	}
	t.Category, t.Description, t.Notes = category, description, notes
	copy := *t
	return &copy, nil
}

func (r *Repository) Delete(userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return ledger.ErrNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *Repository) DeleteDailyTrends(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dailyTrends, userID)
	return nil
}

func (r *Repository) InsertDailyTrend(t *ledger.DailyTrend) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dailyTrends[t.UserID] == nil {
		r.dailyTrends[t.UserID] = make(map[string]*ledger.DailyTrend)
	}
	copy := *t
	r.dailyTrends[t.UserID][t.Date.Format(dateLayout)] = &copy
	return nil
}

func (r *Repository) GetDailyTrends(userID string, from, to *string) ([]*ledger.DailyTrend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ledger.DailyTrend
	for key, t := range r.dailyTrends[userID] {
		if from != nil && key < *from {
			continue
		}
		if to != nil && key > *to {
			continue
		}
		copy := *t
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *Repository) inRange(t *ledger.Transaction, from, to *string) bool {
	key := t.Date.Format(dateLayout)
	if from != nil && key < *from {
		return false
	}
	if to != nil && key > *to {
		return false
	}
	return true
}

func (r *Repository) SumByTypeAndRange(userID string, typ ledger.TransactionType, from, to *string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, t := range r.transactions {
		if t.UserID == userID && t.Type == typ && r.inRange(t, from, to) {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (r *Repository) SumByCategoryAndRange(userID string, typ ledger.TransactionType, from, to *string) (map[string]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]decimal.Decimal)
	for _, t := range r.transactions {
		if t.UserID == userID && t.Type == typ && r.inRange(t, from, to) {
			out[t.Category] = out[t.Category].Add(t.Amount)
		}
	}
	return out, nil
}

func (r *Repository) SumBefore(userID string, before string) (decimal.Decimal, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range r.transactions {
		if t.UserID != userID || t.Date.Format(dateLayout) >= before {
			continue
		}
		if t.Type == ledger.TypeIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense, nil
}

func (r *Repository) GroupByDateAndType(userID string, from, to *string) (map[string]map[ledger.TransactionType]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]map[ledger.TransactionType]decimal.Decimal)
	for _, t := range r.transactions {
		if t.UserID != userID || !r.inRange(t, from, to) {
			continue
		}
		key := t.Date.Format(dateLayout)
		if out[key] == nil {
			out[key] = make(map[ledger.TransactionType]decimal.Decimal)
		}
		out[key][t.Type] = out[key][t.Type].Add(t.Amount)
	}
	return out, nil
}

func (r *Repository) MonthlyTotals(userID string, sinceMonth string) (map[string]ledger.MonthlyTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]ledger.MonthlyTotal)
	for _, t := range r.transactions {
		if t.UserID != userID {
			continue
		}
		month := t.Date.Format("2006-01")
		if month < sinceMonth {
			continue
		}
		mt := out[month]
		if t.Type == ledger.TypeIncome {
			mt.Income = mt.Income.Add(t.Amount)
		} else {
			mt.Expense = mt.Expense.Add(t.Amount)
		}
		out[month] = mt
	}
	return out, nil
}

func (r *Repository) AllForUser(userID string) ([]*ledger.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ledger.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			copy := *t
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
