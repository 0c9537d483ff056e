package pdf

import (
	"strings"

	"github.com/wealthin/agent-backend/internal/extract"
)

// headerKeywords is the column-header keyword set from spec §4.3 step 2,
// grouped by the logical column each synonym maps to.
var headerKeywords = map[string][]string{
	"date":        {"date"},
	"description": {"description", "particulars", "narration"},
	"debit":       {"debit", "withdrawal"},
	"credit":      {"credit", "deposit"},
	"amount":      {"amount"},
	"balance":     {"balance"},
	"reference":   {"reference"},
}

// findHeaderRow scans rows for the first one whose cells, case-insensitive,
// cover the header keyword set, and returns a column-index -> logical-name
// map plus the row index.
func findHeaderRow(rows [][]string) (map[int]string, int, bool) {
	for i, row := range rows {
		cols := map[int]string{}
		for ci, cell := range row {
			lower := strings.ToLower(strings.TrimSpace(cell))
			for logical, keywords := range headerKeywords {
				for _, kw := range keywords {
					if strings.Contains(lower, kw) {
						cols[ci] = logical
					}
				}
			}
		}
		// require at minimum a date column and an amount-bearing column
		hasDate, hasAmount := false, false
		for _, name := range cols {
			if name == "date" {
				hasDate = true
			}
			if name == "amount" || name == "debit" || name == "credit" {
				hasAmount = true
			}
		}
		if hasDate && hasAmount {
			return cols, i, true
		}
	}
	return nil, -1, false
}

// ParseTable implements spec §4.3 step 2: locate the header row, map
// columns, then parse every subsequent data row by joining its cells back
// into one line and delegating to ParseLine (which already knows how to
// pull the date/amount/description out of arbitrary text).
func ParseTable(rows [][]string) []*extract.Transaction {
	cols, headerIdx, ok := findHeaderRow(rows)
	if !ok {
		return nil
	}

	var out []*extract.Transaction
	for _, row := range rows[headerIdx+1:] {
		line := joinRow(row, cols)
		tx, ok := ParseLine(line)
		if !ok {
			continue
		}
		tx.Source = "table"
		out = append(out, tx)
	}
	return out
}

func joinRow(row []string, cols map[int]string) string {
	var b strings.Builder
	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, known := cols[i]; !known && len(cols) > 0 {
			// unlabeled columns still contribute text (e.g. cheque no.)
		}
		b.WriteString(cell)
		b.WriteString(" ")
	}
	return b.String()
}
