package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTrends implements spec §4.9: derived from the ledger directly
// (never from the daily-trend cache, to avoid staleness), grouped by
// calendar month over the trailing `months` window, sorted ascending.
func MonthlyTrends(ledger LedgerReader, userID string, months int) ([]MonthlyTrendPoint, error) {
	if months <= 0 {
		months = 6
	}
	since := time.Now().AddDate(0, -months+1, 0).Format("2006-01")

	totals, err := ledger.MonthlyTotals(userID, since)
	if err != nil {
		return nil, err
	}

	out := make([]MonthlyTrendPoint, 0, len(totals))
	for month, t := range totals {
		out = append(out, MonthlyTrendPoint{
			Month:   month,
			Income:  t.Income,
			Expense: t.Expense,
			Savings: t.Income.Sub(t.Expense),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// PredictNextMonth implements spec §4.9: a 3-month simple moving average
// of monthly expense totals, applied to the tail of an already-sorted
// (ascending) MonthlyTrends result.
func PredictNextMonth(trend []MonthlyTrendPoint) decimal.Decimal {
	n := len(trend)
	if n == 0 {
		return decimal.Zero
	}
	window := 3
	if n < window {
		window = n
	}
	sum := decimal.Zero
	for _, p := range trend[n-window:] {
		sum = sum.Add(p.Expense)
	}
	return sum.Div(decimal.NewFromInt(int64(window))).Round(2)
}
