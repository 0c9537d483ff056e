// Package pgutil holds the small pgx/decimal conversion helpers shared by
// the ledger and planning postgres repositories, grounded on the teacher's
// decimalToPgNumeric/pgNumericToDecimal pair (originally duplicated per
// repository file) hoisted into one place since two stores now use it.
package pgutil

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// DecimalToNumeric converts a decimal.Decimal to the pgtype.Numeric a
// NUMERIC column expects.
func DecimalToNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

// NumericToDecimal converts a scanned pgtype.Numeric back to
// decimal.Decimal, treating SQL NULL as zero.
func NumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// Text converts a Go string pointer to pgtype.Text.
func Text(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// TextPtr converts pgtype.Text back to a Go string pointer.
func TextPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	v := t.String
	return &v
}

// Date converts a time.Time to pgtype.Date (day precision).
func Date(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}
