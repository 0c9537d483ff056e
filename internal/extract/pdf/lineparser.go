// Package pdf implements the PDF bank-statement strategy chain from spec
// §4.3: document-intelligence (optional), table extraction, whole-page
// text, and the PhonePe special case, plus the shared per-line parser
// all three text-based strategies reuse.
package pdf

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/extract"
)

// dateLayouts mirrors spec §4.3's token set, tried in order.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02 Jan 2006",
	"02/01/06",
	"2006-01-02",
	"Jan 02, 2006",
}

var dateToken = regexp.MustCompile(
	`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{1,2}\s+[A-Za-z]{3}\s+\d{4}|\d{4}-\d{2}-\d{2}|[A-Za-z]{3}\s+\d{1,2},\s+\d{4}`,
)

// amountToken matches Indian-locale comma-grouped numbers carrying a one- or
// two-digit decimal part, with an optional currency prefix and an optional
// trailing Cr/Dr suffix. Bare integers (date parts, order or reference
// numbers) are not amounts.
var amountToken = regexp.MustCompile(`(?i)(?:₹|rs\.?)?\s*(-?\d[\d,]*\.\d{1,2})\s*(cr|dr)?\b`)

var creditWords = []string{"cr", "credit", "deposit", "received", "refund"}

func findDate(line string) (time.Time, string, bool) {
	tok := dateToken.FindString(line)
	if tok == "" {
		return time.Time{}, "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, tok); err == nil {
			return t, tok, true
		}
	}
	return time.Time{}, tok, false
}

type amountMatch struct {
	value      decimal.Decimal
	start, end int
}

func findAmounts(line string) []amountMatch {
	matches := amountToken.FindAllStringSubmatchIndex(line, -1)
	var out []amountMatch
	for _, m := range matches {
		raw := line[m[2]:m[3]]
		cleaned := strings.ReplaceAll(raw, ",", "")
		val, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		out = append(out, amountMatch{value: decimal.NewFromFloat(val), start: m[0], end: m[1]})
	}
	return out
}

func isCreditLine(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range creditWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// ParseLine implements spec §4.3's per-line parser: the first date token
// found; all numeric amount tokens (first = amount, last distinct = a
// running balance); income iff the line contains a credit keyword; the
// description is the whitespace-collapsed text between the date and the
// first amount.
func ParseLine(line string) (*extract.Transaction, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, false
	}

	date, dateTok, ok := findDate(trimmed)
	if !ok {
		return nil, false
	}
	amounts := findAmounts(trimmed)
	if len(amounts) == 0 {
		return nil, false
	}

	txType := extract.TypeExpense
	if isCreditLine(trimmed) {
		txType = extract.TypeIncome
	}

	amount := amounts[0].value
	var balance *decimal.Decimal
	if len(amounts) > 1 {
		last := amounts[len(amounts)-1].value
		if !last.Equal(amount) {
			b := last
			balance = &b
		}
	}

	dateIdx := strings.Index(trimmed, dateTok)
	descStart := dateIdx + len(dateTok)
	descEnd := amounts[0].start
	desc := ""
	if descStart >= 0 && descEnd > descStart && descEnd <= len(trimmed) {
		desc = trimmed[descStart:descEnd]
	}
	desc = strings.Join(strings.Fields(desc), " ")

	return &extract.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Balance:     balance,
		Type:        txType,
		Source:      "line",
	}, true
}

// ParsePage runs ParseLine over every non-empty line of page text,
// implementing the "whole-page text" strategy (spec §4.3 step 3).
func ParsePage(pageText string) []*extract.Transaction {
	var out []*extract.Transaction
	for _, line := range strings.Split(pageText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if tx, ok := ParseLine(line); ok {
			out = append(out, tx)
		}
	}
	return out
}
