// Package postgres implements ledger.Repository against a Postgres
// schema, grounded on the teacher's internal/repository/postgres style:
// one struct wrapping a *pgxpool.Pool, one method per operation, plain
// parameterized SQL (the teacher generates its queries with sqlc; that
// generated package was not part of the retrieved example, so these
// queries are hand-written against the same jackc/pgx/v5 driver instead
// of invoking a code generator we cannot run).
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/ledger"
	"github.com/wealthin/agent-backend/internal/pgutil"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const schema = "ledger"

func (r *Repository) Create(t *ledger.Transaction) (*ledger.Transaction, error) {
	ctx := context.Background()
	amount, err := pgutil.DecimalToNumeric(t.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+schema+`.transactions
			(user_id, amount, type, category, description, notes, date, time,
			 merchant, payment_method, receipt_url, is_recurring, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id`,
		t.UserID, amount, string(t.Type), t.Category, t.Description, t.Notes,
		pgutil.Date(t.Date), t.Time, t.Merchant, t.PaymentMethod, t.ReceiptURL,
		t.IsRecurring, t.CreatedAt)

	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	out := *t
	out.ID = id
	return &out, nil
}

func (r *Repository) Query(f ledger.Filter) ([]*ledger.Transaction, error) {
	ctx := context.Background()
	query := `SELECT id, user_id, amount, type, category, description, notes,
		date, time, merchant, payment_method, receipt_url, is_recurring, created_at
		FROM ` + schema + `.transactions WHERE user_id = $1`
	args := []interface{}{f.UserID}
	n := 1

	if f.Category != "" {
		n++
		query += fmt.Sprintf(" AND category = $%d", n)
		args = append(args, f.Category)
	}
	if f.Type != "" {
		n++
		query += fmt.Sprintf(" AND type = $%d", n)
		args = append(args, string(f.Type))
	}
	if f.DateFrom != nil {
		n++
		query += fmt.Sprintf(" AND date >= $%d", n)
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		n++
		query += fmt.Sprintf(" AND date <= $%d", n)
		args = append(args, *f.DateTo)
	}
	query += " ORDER BY date DESC, created_at DESC"
	if f.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *Repository) GetByID(userID string, id int64) (*ledger.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT id, user_id, amount, type, category, description, notes,
		date, time, merchant, payment_method, receipt_url, is_recurring, created_at
		FROM `+schema+`.transactions WHERE user_id = $1 AND id = $2`, userID, id)
	return scanTransaction(row)
}

func (r *Repository) Update(userID string, id int64, category, description, notes string) (*ledger.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `UPDATE `+schema+`.transactions
		SET category = $1, description = $2, notes = $3
		WHERE user_id = $4 AND id = $5
		RETURNING id, user_id, amount, type, category, description, notes,
			date, time, merchant, payment_method, receipt_url, is_recurring, created_at`,
		category, description, notes, userID, id)
	return scanTransaction(row)
}

func (r *Repository) Delete(userID string, id int64) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+schema+`.transactions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) DeleteDailyTrends(userID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM `+schema+`.daily_trends WHERE user_id = $1`, userID)
	return err
}

func (r *Repository) InsertDailyTrend(t *ledger.DailyTrend) error {
	ctx := context.Background()
	spent, err := pgutil.DecimalToNumeric(t.TotalSpent)
	if err != nil {
		return err
	}
	income, err := pgutil.DecimalToNumeric(t.TotalIncome)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO `+schema+`.daily_trends (user_id, date, total_spent, total_income)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id, date) DO UPDATE SET total_spent = $3, total_income = $4`,
		t.UserID, pgutil.Date(t.Date), spent, income)
	return err
}

func (r *Repository) GetDailyTrends(userID string, from, to *string) ([]*ledger.DailyTrend, error) {
	ctx := context.Background()
	query := `SELECT user_id, date, total_spent, total_income FROM ` + schema + `.daily_trends WHERE user_id = $1`
	args := []interface{}{userID}
	if from != nil {
		query += " AND date >= $2"
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, *to)
	}
	query += " ORDER BY date"
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ledger.DailyTrend
	for rows.Next() {
		var d ledger.DailyTrend
		var spent, income pgtypeNumeric
		if err := rows.Scan(&d.UserID, &d.Date, &spent, &income); err != nil {
			return nil, err
		}
		d.TotalSpent = pgutil.NumericToDecimal(spent)
		d.TotalIncome = pgutil.NumericToDecimal(income)
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *Repository) SumByTypeAndRange(userID string, typ ledger.TransactionType, from, to *string) (decimal.Decimal, error) {
	ctx := context.Background()
	var sum pgtypeNumeric
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM `+schema+`.transactions
		WHERE user_id = $1 AND type = $2 AND date BETWEEN $3 AND $4`,
		userID, string(typ), from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return pgutil.NumericToDecimal(sum), nil
}

func (r *Repository) SumByCategoryAndRange(userID string, typ ledger.TransactionType, from, to *string) (map[string]decimal.Decimal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT category, COALESCE(SUM(amount), 0) FROM `+schema+`.transactions
		WHERE user_id = $1 AND type = $2 AND date BETWEEN $3 AND $4
		GROUP BY category`, userID, string(typ), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var sum pgtypeNumeric
		if err := rows.Scan(&category, &sum); err != nil {
			return nil, err
		}
		out[category] = pgutil.NumericToDecimal(sum)
	}
	return out, rows.Err()
}

func (r *Repository) SumBefore(userID string, before string) (decimal.Decimal, decimal.Decimal, error) {
	ctx := context.Background()
	var income, expense pgtypeNumeric
	err := r.pool.QueryRow(ctx, `SELECT
		COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
		COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM `+schema+`.transactions WHERE user_id = $1 AND date < $2`,
		userID, before).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return pgutil.NumericToDecimal(income), pgutil.NumericToDecimal(expense), nil
}

func (r *Repository) GroupByDateAndType(userID string, from, to *string) (map[string]map[ledger.TransactionType]decimal.Decimal, error) {
	ctx := context.Background()
	query := `SELECT date, type, SUM(amount) FROM ` + schema + `.transactions WHERE user_id = $1`
	args := []interface{}{userID}
	if from != nil {
		query += " AND date >= $2"
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", len(args)+1)
		args = append(args, *to)
	}
	query += " GROUP BY date, type"
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[ledger.TransactionType]decimal.Decimal)
	for rows.Next() {
		var date time.Time
		var typ string
		var sum pgtypeNumeric
		if err := rows.Scan(&date, &typ, &sum); err != nil {
			return nil, err
		}
		key := date.Format("2006-01-02")
		if out[key] == nil {
			out[key] = make(map[ledger.TransactionType]decimal.Decimal)
		}
		out[key][ledger.TransactionType(typ)] = pgutil.NumericToDecimal(sum)
	}
	return out, rows.Err()
}

func (r *Repository) MonthlyTotals(userID string, sinceMonth string) (map[string]ledger.MonthlyTotal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT to_char(date, 'YYYY-MM') AS month, type, SUM(amount)
		FROM `+schema+`.transactions
		WHERE user_id = $1 AND to_char(date, 'YYYY-MM') >= $2
		GROUP BY month, type`, userID, sinceMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]ledger.MonthlyTotal)
	for rows.Next() {
		var month, typ string
		var sum pgtypeNumeric
		if err := rows.Scan(&month, &typ, &sum); err != nil {
			return nil, err
		}
		t := out[month]
		amount := pgutil.NumericToDecimal(sum)
		if typ == string(ledger.TypeIncome) {
			t.Income = amount
		} else {
			t.Expense = amount
		}
		out[month] = t
	}
	return out, rows.Err()
}

func (r *Repository) AllForUser(userID string) ([]*ledger.Transaction, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, amount, type, category, description, notes,
		date, time, merchant, payment_method, receipt_url, is_recurring, created_at
		FROM `+schema+`.transactions WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// scanTransactions/scanTransaction share one column layout between Query,
// AllForUser and the single-row lookups.
type pgtypeNumeric = pgtype.Numeric

func scanTransactions(rows pgx.Rows) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction
	for rows.Next() {
		t, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (*ledger.Transaction, error) {
	return scanRow(row)
}

func scanRow(row interface {
	Scan(dest ...interface{}) error
}) (*ledger.Transaction, error) {
	var t ledger.Transaction
	var amount pgtype.Numeric
	var typ string
	var timeVal pgtype.Text
	if err := row.Scan(&t.ID, &t.UserID, &amount, &typ, &t.Category, &t.Description, &t.Notes,
		&t.Date, &timeVal, &t.Merchant, &t.PaymentMethod,
		&t.ReceiptURL, &t.IsRecurring, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Amount = pgutil.NumericToDecimal(amount)
	t.Type = ledger.TransactionType(typ)
	t.Time = pgutil.TextPtr(timeVal)
	return &t, nil
}
