// Package postgres implements planning.Repository against the planning
// schema, following the same hand-written-SQL-over-pgx/v5 style as
// internal/ledger/postgres (see that package's doc comment for why no
// sqlc-generated layer is used here).
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/pgutil"
	"github.com/wealthin/agent-backend/internal/planning"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const schema = "planning"

func mapErr(err error) error {
	if err == pgx.ErrNoRows {
		return planning.ErrNotFound
	}
	return err
}

// --- Budget ---

func (r *Repository) CreateBudget(b *planning.Budget) (*planning.Budget, error) {
	ctx := context.Background()
	amount, err := pgutil.DecimalToNumeric(b.Amount)
	if err != nil {
		return nil, err
	}
	spent, err := pgutil.DecimalToNumeric(b.Spent)
	if err != nil {
		return nil, err
	}
	var endDate pgtype.Date
	if b.EndDate != nil {
		endDate = pgutil.Date(*b.EndDate)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+schema+`.budgets (user_id, name, category, amount, spent, period, start_date, end_date, icon)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
		b.UserID, b.Name, b.Category, amount, spent, string(b.Period), pgutil.Date(b.StartDate), endDate, b.Icon)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *b
	out.ID = id
	return &out, nil
}

func (r *Repository) scanBudget(row pgx.Row) (*planning.Budget, error) {
	var b planning.Budget
	var period string
	var amount, spent pgtype.Numeric
	var start, end pgtype.Date
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Category, &amount, &spent, &period, &start, &end, &b.Icon); err != nil {
		return nil, mapErr(err)
	}
	b.Period = planning.Period(period)
	b.Amount = pgutil.NumericToDecimal(amount)
	b.Spent = pgutil.NumericToDecimal(spent)
	b.StartDate = start.Time
	if end.Valid {
		t := end.Time
		b.EndDate = &t
	}
	return &b, nil
}

const budgetCols = "id, user_id, name, category, amount, spent, period, start_date, end_date, icon"

func (r *Repository) ListBudgets(userID string) ([]*planning.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+budgetCols+` FROM `+schema+`.budgets WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.Budget
	for rows.Next() {
		b, err := r.scanBudget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) GetBudget(userID string, id int64) (*planning.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+budgetCols+` FROM `+schema+`.budgets WHERE id=$1 AND user_id=$2`, id, userID)
	return r.scanBudget(row)
}

func (r *Repository) UpdateBudget(b *planning.Budget) (*planning.Budget, error) {
	ctx := context.Background()
	amount, err := pgutil.DecimalToNumeric(b.Amount)
	if err != nil {
		return nil, err
	}
	var endDate pgtype.Date
	if b.EndDate != nil {
		endDate = pgutil.Date(*b.EndDate)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE `+schema+`.budgets SET name=$1, category=$2, amount=$3, period=$4, end_date=$5, icon=$6
		WHERE id=$7 AND user_id=$8`,
		b.Name, b.Category, amount, string(b.Period), endDate, b.Icon, b.ID, b.UserID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, planning.ErrNotFound
	}
	return r.GetBudget(b.UserID, b.ID)
}

func (r *Repository) DeleteBudget(userID string, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+schema+`.budgets WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return planning.ErrNotFound
	}
	return nil
}

func (r *Repository) IncrementBudgetSpent(userID, category string, delta decimal.Decimal) error {
	ctx := context.Background()
	d, err := pgutil.DecimalToNumeric(delta)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `UPDATE `+schema+`.budgets SET spent = spent + $1 WHERE user_id=$2 AND category=$3`, d, userID, category)
	return err
}

func (r *Repository) SetBudgetSpent(userID string, id int64, spent decimal.Decimal) error {
	ctx := context.Background()
	d, err := pgutil.DecimalToNumeric(spent)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE `+schema+`.budgets SET spent=$1 WHERE id=$2 AND user_id=$3`, d, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return planning.ErrNotFound
	}
	return nil
}

// --- Goal ---

const goalCols = "id, user_id, name, target_amount, current_amount, deadline, status, icon, notes"

func (r *Repository) scanGoal(row pgx.Row) (*planning.Goal, error) {
	var g planning.Goal
	var status string
	var target, current pgtype.Numeric
	var deadline pgtype.Date
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &target, &current, &deadline, &status, &g.Icon, &g.Notes); err != nil {
		return nil, mapErr(err)
	}
	g.Status = planning.GoalStatus(status)
	g.TargetAmount = pgutil.NumericToDecimal(target)
	g.CurrentAmount = pgutil.NumericToDecimal(current)
	if deadline.Valid {
		t := deadline.Time
		g.Deadline = &t
	}
	return &g, nil
}

func (r *Repository) CreateGoal(g *planning.Goal) (*planning.Goal, error) {
	ctx := context.Background()
	target, err := pgutil.DecimalToNumeric(g.TargetAmount)
	if err != nil {
		return nil, err
	}
	current, err := pgutil.DecimalToNumeric(g.CurrentAmount)
	if err != nil {
		return nil, err
	}
	var deadline pgtype.Date
	if g.Deadline != nil {
		deadline = pgutil.Date(*g.Deadline)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+schema+`.goals (user_id, name, target_amount, current_amount, deadline, status, icon, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
		g.UserID, g.Name, target, current, deadline, string(g.Status), g.Icon, g.Notes)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *g
	out.ID = id
	return &out, nil
}

func (r *Repository) ListGoals(userID string) ([]*planning.Goal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+goalCols+` FROM `+schema+`.goals WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.Goal
	for rows.Next() {
		g, err := r.scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repository) GetGoal(userID string, id int64) (*planning.Goal, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+goalCols+` FROM `+schema+`.goals WHERE id=$1 AND user_id=$2`, id, userID)
	return r.scanGoal(row)
}

func (r *Repository) UpdateGoal(g *planning.Goal) (*planning.Goal, error) {
	ctx := context.Background()
	current, err := pgutil.DecimalToNumeric(g.CurrentAmount)
	if err != nil {
		return nil, err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE `+schema+`.goals SET current_amount=$1, status=$2 WHERE id=$3 AND user_id=$4`,
		current, string(g.Status), g.ID, g.UserID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, planning.ErrNotFound
	}
	return r.GetGoal(g.UserID, g.ID)
}

func (r *Repository) DeleteGoal(userID string, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+schema+`.goals WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return planning.ErrNotFound
	}
	return nil
}

// --- ScheduledPayment ---

const paymentCols = `id, user_id, name, amount, category, frequency, due_date, next_due_date,
	is_autopay, status, reminder_days, last_paid_date, payment_type,
	interest_rate, total_tenure, principal_outstanding, total_interest_paid, total_principal_paid`

func (r *Repository) scanPayment(row pgx.Row) (*planning.ScheduledPayment, error) {
	var p planning.ScheduledPayment
	var freq, status, ptype string
	var amount, rate, outstanding, interestPaid, principalPaid pgtype.Numeric
	var due, nextDue, lastPaid pgtype.Date
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &amount, &p.Category, &freq, &due, &nextDue,
		&p.IsAutopay, &status, &p.ReminderDays, &lastPaid, &ptype,
		&rate, &p.TotalTenure, &outstanding, &interestPaid, &principalPaid); err != nil {
		return nil, mapErr(err)
	}
	p.Frequency = planning.Frequency(freq)
	p.Status = planning.PaymentStatus(status)
	p.PaymentType = planning.PaymentType(ptype)
	p.Amount = pgutil.NumericToDecimal(amount)
	p.InterestRate = pgutil.NumericToDecimal(rate)
	p.PrincipalOutstanding = pgutil.NumericToDecimal(outstanding)
	p.TotalInterestPaid = pgutil.NumericToDecimal(interestPaid)
	p.TotalPrincipalPaid = pgutil.NumericToDecimal(principalPaid)
	p.DueDate = due.Time
	p.NextDueDate = nextDue.Time
	if lastPaid.Valid {
		t := lastPaid.Time
		p.LastPaidDate = &t
	}
	return &p, nil
}

func (r *Repository) CreateScheduledPayment(p *planning.ScheduledPayment) (*planning.ScheduledPayment, error) {
	ctx := context.Background()
	amount, err := pgutil.DecimalToNumeric(p.Amount)
	if err != nil {
		return nil, err
	}
	rate, _ := pgutil.DecimalToNumeric(p.InterestRate)
	outstanding, _ := pgutil.DecimalToNumeric(p.PrincipalOutstanding)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+schema+`.scheduled_payments
			(user_id, name, amount, category, frequency, due_date, next_due_date, is_autopay,
			 status, reminder_days, payment_type, interest_rate, total_tenure, principal_outstanding,
			 total_interest_paid, total_principal_paid)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,0,0) RETURNING id`,
		p.UserID, p.Name, amount, p.Category, string(p.Frequency), pgutil.Date(p.DueDate), pgutil.Date(p.NextDueDate),
		p.IsAutopay, string(p.Status), p.ReminderDays, string(p.PaymentType), rate, p.TotalTenure, outstanding)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *p
	out.ID = id
	return &out, nil
}

func (r *Repository) ListScheduledPayments(userID string) ([]*planning.ScheduledPayment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+paymentCols+` FROM `+schema+`.scheduled_payments WHERE user_id=$1 ORDER BY next_due_date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.ScheduledPayment
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) GetScheduledPayment(userID string, id int64) (*planning.ScheduledPayment, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+paymentCols+` FROM `+schema+`.scheduled_payments WHERE id=$1 AND user_id=$2`, id, userID)
	return r.scanPayment(row)
}

func (r *Repository) UpdateScheduledPayment(p *planning.ScheduledPayment) (*planning.ScheduledPayment, error) {
	ctx := context.Background()
	outstanding, err := pgutil.DecimalToNumeric(p.PrincipalOutstanding)
	if err != nil {
		return nil, err
	}
	interestPaid, _ := pgutil.DecimalToNumeric(p.TotalInterestPaid)
	principalPaid, _ := pgutil.DecimalToNumeric(p.TotalPrincipalPaid)
	var lastPaid pgtype.Date
	if p.LastPaidDate != nil {
		lastPaid = pgutil.Date(*p.LastPaidDate)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE `+schema+`.scheduled_payments
		SET next_due_date=$1, last_paid_date=$2, status=$3, principal_outstanding=$4,
		    total_interest_paid=$5, total_principal_paid=$6
		WHERE id=$7 AND user_id=$8`,
		pgutil.Date(p.NextDueDate), lastPaid, string(p.Status), outstanding, interestPaid, principalPaid, p.ID, p.UserID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, planning.ErrNotFound
	}
	return r.GetScheduledPayment(p.UserID, p.ID)
}

func (r *Repository) DeleteScheduledPayment(userID string, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+schema+`.scheduled_payments WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return planning.ErrNotFound
	}
	return nil
}

// --- MerchantRule ---

func (r *Repository) CreateMerchantRule(rule *planning.MerchantRule) (*planning.MerchantRule, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+schema+`.merchant_rules (user_id, keyword, category, is_auto)
		VALUES ($1,$2,$3,$4) RETURNING id`, rule.UserID, rule.Keyword, rule.Category, rule.IsAuto)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *rule
	out.ID = id
	return &out, nil
}

func (r *Repository) ListMerchantRules(userID string) ([]*planning.MerchantRule, error) {
	ctx := context.Background()
	// Longest keyword first, matching the priority chain in spec §4.4.
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, keyword, category, is_auto FROM `+schema+`.merchant_rules
		WHERE user_id=$1 ORDER BY length(keyword) DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.MerchantRule
	for rows.Next() {
		var m planning.MerchantRule
		if err := rows.Scan(&m.ID, &m.UserID, &m.Keyword, &m.Category, &m.IsAuto); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteMerchantRule(userID string, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+schema+`.merchant_rules WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return planning.ErrNotFound
	}
	return nil
}

// --- Vendor / Customer / Invoice / BillSplit ---
//
// These are the spec's "straightforward relational records": single-table
// CRUD with no invariant logic of their own. Grounded on the same
// INSERT...RETURNING id / SELECT / UPDATE shape as the rest of this file.

func (r *Repository) CreateVendor(v *planning.Vendor) (*planning.Vendor, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `INSERT INTO `+schema+`.vendors (user_id, name, contact, gstin) VALUES ($1,$2,$3,$4) RETURNING id`,
		v.UserID, v.Name, v.Contact, v.GSTIN)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *v
	out.ID = id
	return &out, nil
}

func (r *Repository) ListVendors(userID string) ([]*planning.Vendor, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, name, contact, gstin FROM `+schema+`.vendors WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.Vendor
	for rows.Next() {
		var v planning.Vendor
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &v.Contact, &v.GSTIN); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *Repository) GetVendor(userID string, id int64) (*planning.Vendor, error) {
	ctx := context.Background()
	var v planning.Vendor
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, name, contact, gstin FROM `+schema+`.vendors WHERE id=$1 AND user_id=$2`, id, userID).
		Scan(&v.ID, &v.UserID, &v.Name, &v.Contact, &v.GSTIN)
	if err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func (r *Repository) CreateVendorPayment(p *planning.VendorPayment) (*planning.VendorPayment, error) {
	ctx := context.Background()
	amount, err := pgutil.DecimalToNumeric(p.Amount)
	if err != nil {
		return nil, err
	}
	paid, _ := pgutil.DecimalToNumeric(p.AmountPaid)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+schema+`.vendor_payments (user_id, vendor_id, amount, amount_paid, due_date, status)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		p.UserID, p.VendorID, amount, paid, pgutil.Date(p.DueDate), string(p.Status))
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *p
	out.ID = id
	return &out, nil
}

func (r *Repository) scanVendorPayment(row pgx.Row) (*planning.VendorPayment, error) {
	var p planning.VendorPayment
	var status string
	var amount, paid pgtype.Numeric
	var due pgtype.Date
	if err := row.Scan(&p.ID, &p.UserID, &p.VendorID, &amount, &paid, &due, &status); err != nil {
		return nil, mapErr(err)
	}
	p.Status = planning.VendorPaymentStatus(status)
	p.Amount = pgutil.NumericToDecimal(amount)
	p.AmountPaid = pgutil.NumericToDecimal(paid)
	p.DueDate = due.Time
	return &p, nil
}

const vendorPaymentCols = "id, user_id, vendor_id, amount, amount_paid, due_date, status"

func (r *Repository) GetVendorPayment(userID string, id int64) (*planning.VendorPayment, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+vendorPaymentCols+` FROM `+schema+`.vendor_payments WHERE id=$1 AND user_id=$2`, id, userID)
	return r.scanVendorPayment(row)
}

func (r *Repository) UpdateVendorPayment(p *planning.VendorPayment) (*planning.VendorPayment, error) {
	ctx := context.Background()
	paid, err := pgutil.DecimalToNumeric(p.AmountPaid)
	if err != nil {
		return nil, err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE `+schema+`.vendor_payments SET amount_paid=$1, status=$2 WHERE id=$3 AND user_id=$4`,
		paid, string(p.Status), p.ID, p.UserID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, planning.ErrNotFound
	}
	return r.GetVendorPayment(p.UserID, p.ID)
}

func (r *Repository) ListVendorPayments(userID string, vendorID int64) ([]*planning.VendorPayment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+vendorPaymentCols+` FROM `+schema+`.vendor_payments WHERE user_id=$1 AND vendor_id=$2 ORDER BY due_date`, userID, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.VendorPayment
	for rows.Next() {
		p, err := r.scanVendorPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) CreatePaymentHistory(h *planning.PaymentHistory) (*planning.PaymentHistory, error) {
	ctx := context.Background()
	amount, err := pgutil.DecimalToNumeric(h.Amount)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+schema+`.payment_history (vendor_payment_id, amount, paid_at) VALUES ($1,$2,$3) RETURNING id`,
		h.VendorPaymentID, amount, h.PaidAt)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *h
	out.ID = id
	return &out, nil
}

func (r *Repository) CreateCustomer(c *planning.Customer) (*planning.Customer, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `INSERT INTO `+schema+`.customers (user_id, name, contact, gstin) VALUES ($1,$2,$3,$4) RETURNING id`,
		c.UserID, c.Name, c.Contact, c.GSTIN)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *c
	out.ID = id
	return &out, nil
}

func (r *Repository) ListCustomers(userID string) ([]*planning.Customer, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, name, contact, gstin FROM `+schema+`.customers WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.Customer
	for rows.Next() {
		var c planning.Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Contact, &c.GSTIN); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *Repository) GetCustomer(userID string, id int64) (*planning.Customer, error) {
	ctx := context.Background()
	var c planning.Customer
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, name, contact, gstin FROM `+schema+`.customers WHERE id=$1 AND user_id=$2`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Contact, &c.GSTIN)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *Repository) CreateInvoice(inv *planning.Invoice, items []*planning.InvoiceItem) (*planning.Invoice, error) {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	subtotal, _ := pgutil.DecimalToNumeric(inv.Subtotal)
	gst, _ := pgutil.DecimalToNumeric(inv.GSTAmount)
	total, _ := pgutil.DecimalToNumeric(inv.Total)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO `+schema+`.invoices (user_id, customer_id, number, issue_date, due_date, subtotal, gst_amount, total, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
		inv.UserID, inv.CustomerID, inv.Number, pgutil.Date(inv.IssueDate), pgutil.Date(inv.DueDate),
		subtotal, gst, total, string(inv.Status), inv.Notes).Scan(&id)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		qty, _ := pgutil.DecimalToNumeric(it.Quantity)
		price, _ := pgutil.DecimalToNumeric(it.UnitPrice)
		rate, _ := pgutil.DecimalToNumeric(it.GSTRate)
		if _, err := tx.Exec(ctx, `
			INSERT INTO `+schema+`.invoice_items (invoice_id, description, quantity, unit_price, gst_rate)
			VALUES ($1,$2,$3,$4,$5)`, id, it.Description, qty, price, rate); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	out := *inv
	out.ID = id
	return &out, nil
}

func (r *Repository) scanInvoice(row pgx.Row) (*planning.Invoice, error) {
	var inv planning.Invoice
	var status string
	var subtotal, gst, total pgtype.Numeric
	var issue, due pgtype.Date
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.CustomerID, &inv.Number, &issue, &due, &subtotal, &gst, &total, &status, &inv.Notes); err != nil {
		return nil, mapErr(err)
	}
	inv.Status = planning.InvoiceStatus(status)
	inv.Subtotal = pgutil.NumericToDecimal(subtotal)
	inv.GSTAmount = pgutil.NumericToDecimal(gst)
	inv.Total = pgutil.NumericToDecimal(total)
	inv.IssueDate = issue.Time
	inv.DueDate = due.Time
	return &inv, nil
}

const invoiceCols = "id, user_id, customer_id, number, issue_date, due_date, subtotal, gst_amount, total, status, notes"

func (r *Repository) ListInvoices(userID string) ([]*planning.Invoice, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceCols+` FROM `+schema+`.invoices WHERE user_id=$1 ORDER BY issue_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.Invoice
	for rows.Next() {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *Repository) GetInvoice(userID string, id int64) (*planning.Invoice, []*planning.InvoiceItem, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceCols+` FROM `+schema+`.invoices WHERE id=$1 AND user_id=$2`, id, userID)
	inv, err := r.scanInvoice(row)
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT id, invoice_id, description, quantity, unit_price, gst_rate FROM `+schema+`.invoice_items WHERE invoice_id=$1`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var items []*planning.InvoiceItem
	for rows.Next() {
		var it planning.InvoiceItem
		var qty, price, rate pgtype.Numeric
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &qty, &price, &rate); err != nil {
			return nil, nil, err
		}
		it.Quantity = pgutil.NumericToDecimal(qty)
		it.UnitPrice = pgutil.NumericToDecimal(price)
		it.GSTRate = pgutil.NumericToDecimal(rate)
		items = append(items, &it)
	}
	return inv, items, rows.Err()
}

func (r *Repository) UpdateInvoiceStatus(userID string, id int64, status planning.InvoiceStatus) (*planning.Invoice, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `UPDATE `+schema+`.invoices SET status=$1 WHERE id=$2 AND user_id=$3`, string(status), id, userID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, planning.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceCols+` FROM `+schema+`.invoices WHERE id=$1 AND user_id=$2`, id, userID)
	return r.scanInvoice(row)
}

func (r *Repository) GetBusinessProfile(userID string) (*planning.BusinessProfile, error) {
	ctx := context.Background()
	var p planning.BusinessProfile
	err := r.pool.QueryRow(ctx, `SELECT user_id, business_name, gstin, pan, address FROM `+schema+`.business_profiles WHERE user_id=$1`, userID).
		Scan(&p.UserID, &p.BusinessName, &p.GSTIN, &p.PAN, &p.Address)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *Repository) UpsertBusinessProfile(p *planning.BusinessProfile) (*planning.BusinessProfile, error) {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO `+schema+`.business_profiles (user_id, business_name, gstin, pan, address)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE SET business_name=$2, gstin=$3, pan=$4, address=$5`,
		p.UserID, p.BusinessName, p.GSTIN, p.PAN, p.Address)
	if err != nil {
		return nil, err
	}
	out := *p
	return &out, nil
}

func (r *Repository) CreateBillSplit(b *planning.BillSplit, items []*planning.BillItem, splits []*planning.SplitItem) (*planning.BillSplit, error) {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	total, _ := pgutil.DecimalToNumeric(b.TotalAmount)
	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO `+schema+`.bill_splits (user_id, title, total_amount, method, date)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		b.UserID, b.Title, total, string(b.Method), pgutil.Date(b.Date)).Scan(&id)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		amt, _ := pgutil.DecimalToNumeric(it.Amount)
		if _, err := tx.Exec(ctx, `INSERT INTO `+schema+`.bill_items (bill_split_id, description, amount) VALUES ($1,$2,$3)`,
			id, it.Description, amt); err != nil {
			return nil, err
		}
	}
	for _, sp := range splits {
		owed, _ := pgutil.DecimalToNumeric(sp.AmountOwed)
		if _, err := tx.Exec(ctx, `
			INSERT INTO `+schema+`.split_items (bill_split_id, participant_name, amount_owed, status)
			VALUES ($1,$2,$3,$4)`, id, sp.ParticipantName, owed, string(sp.Status)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	out := *b
	out.ID = id
	return &out, nil
}

const billSplitCols = "id, user_id, title, total_amount, method, date"

func (r *Repository) scanBillSplit(row pgx.Row) (*planning.BillSplit, error) {
	var b planning.BillSplit
	var method string
	var total pgtype.Numeric
	var date pgtype.Date
	if err := row.Scan(&b.ID, &b.UserID, &b.Title, &total, &method, &date); err != nil {
		return nil, mapErr(err)
	}
	b.Method = planning.SplitMethod(method)
	b.TotalAmount = pgutil.NumericToDecimal(total)
	b.Date = date.Time
	return &b, nil
}

func (r *Repository) ListBillSplits(userID string) ([]*planning.BillSplit, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+billSplitCols+` FROM `+schema+`.bill_splits WHERE user_id=$1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*planning.BillSplit
	for rows.Next() {
		b, err := r.scanBillSplit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) GetBillSplit(userID string, id int64) (*planning.BillSplit, []*planning.BillItem, []*planning.SplitItem, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+billSplitCols+` FROM `+schema+`.bill_splits WHERE id=$1 AND user_id=$2`, id, userID)
	b, err := r.scanBillSplit(row)
	if err != nil {
		return nil, nil, nil, err
	}

	itemRows, err := r.pool.Query(ctx, `SELECT id, bill_split_id, description, amount FROM `+schema+`.bill_items WHERE bill_split_id=$1`, id)
	if err != nil {
		return nil, nil, nil, err
	}
	defer itemRows.Close()
	var items []*planning.BillItem
	for itemRows.Next() {
		var it planning.BillItem
		var amt pgtype.Numeric
		if err := itemRows.Scan(&it.ID, &it.BillSplitID, &it.Description, &amt); err != nil {
			return nil, nil, nil, err
		}
		it.Amount = pgutil.NumericToDecimal(amt)
		items = append(items, &it)
	}

	splitRows, err := r.pool.Query(ctx, `SELECT id, bill_split_id, participant_name, amount_owed, status FROM `+schema+`.split_items WHERE bill_split_id=$1`, id)
	if err != nil {
		return nil, nil, nil, err
	}
	defer splitRows.Close()
	var splits []*planning.SplitItem
	for splitRows.Next() {
		var sp planning.SplitItem
		var owed pgtype.Numeric
		var status string
		if err := splitRows.Scan(&sp.ID, &sp.BillSplitID, &sp.ParticipantName, &owed, &status); err != nil {
			return nil, nil, nil, err
		}
		sp.AmountOwed = pgutil.NumericToDecimal(owed)
		sp.Status = planning.SplitItemStatus(status)
		splits = append(splits, &sp)
	}

	return b, items, splits, itemRows.Err()
}

func (r *Repository) MarkSplitItemPaid(userID string, splitID, splitItemID int64) (*planning.SplitItem, error) {
	ctx := context.Background()
	var exists int64
	if err := r.pool.QueryRow(ctx, `SELECT id FROM `+schema+`.bill_splits WHERE id=$1 AND user_id=$2`, splitID, userID).Scan(&exists); err != nil {
		return nil, mapErr(err)
	}
	tag, err := r.pool.Exec(ctx, `UPDATE `+schema+`.split_items SET status=$1 WHERE id=$2 AND bill_split_id=$3`,
		string(planning.SplitItemPaid), splitItemID, splitID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, planning.ErrNotFound
	}
	var sp planning.SplitItem
	var owed pgtype.Numeric
	var status string
	err = r.pool.QueryRow(ctx, `SELECT id, bill_split_id, participant_name, amount_owed, status FROM `+schema+`.split_items WHERE id=$1`, splitItemID).
		Scan(&sp.ID, &sp.BillSplitID, &sp.ParticipantName, &owed, &status)
	if err != nil {
		return nil, mapErr(err)
	}
	sp.AmountOwed = pgutil.NumericToDecimal(owed)
	sp.Status = planning.SplitItemStatus(status)
	return &sp, nil
}
