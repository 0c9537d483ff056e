package pdf

import (
	"regexp"
	"strings"

	"github.com/wealthin/agent-backend/internal/extract"
)

var paidToRe = regexp.MustCompile(`(?i)paid\s+to\s+([A-Za-z0-9 .&'_-]+)`)
var receivedFromRe = regexp.MustCompile(`(?i)received\s+from\s+([A-Za-z0-9 .&'_-]+)`)

// IsPhonePeStatement reports whether the document self-identifies as a
// PhonePe statement (spec §4.3's special case trigger).
func IsPhonePeStatement(fullText string) bool {
	return strings.Contains(strings.ToLower(fullText), "phonepe")
}

// ParsePhonePe pairs every "Paid to <merchant>" / "Received from <sender>"
// occurrence with the nearest amount token on the same line, per spec
// §4.3. A known fragility: when two
// transactions share a page the "nearest" amount can be ambiguous; this
// implementation resolves it to the first amount on the same line, which
// covers the one-transaction-per-line statement layout PhonePe exports.
func ParsePhonePe(pageText string) []*extract.Transaction {
	var out []*extract.Transaction
	for _, line := range strings.Split(pageText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		amounts := findAmounts(line)
		if len(amounts) == 0 {
			continue
		}
		date, _, hasDate := findDate(line)

		if m := paidToRe.FindStringSubmatch(line); m != nil {
			tx := &extract.Transaction{
				Description: phonePeName(m[1]),
				Amount:      amounts[0].value,
				Type:        extract.TypeExpense,
				Source:      "phonepe",
			}
			if hasDate {
				tx.Date = date
			}
			out = append(out, tx)
			continue
		}
		if m := receivedFromRe.FindStringSubmatch(line); m != nil {
			tx := &extract.Transaction{
				Description: phonePeName(m[1]),
				Amount:      amounts[0].value,
				Type:        extract.TypeIncome,
				Source:      "phonepe",
			}
			if hasDate {
				tx.Date = date
			}
			out = append(out, tx)
		}
	}
	return out
}

// phonePeName trims a captured merchant/sender name, cutting it where the
// first amount begins (the name pattern also admits digits and dots).
func phonePeName(captured string) string {
	if loc := amountToken.FindStringSubmatchIndex(captured); loc != nil {
		captured = captured[:loc[2]]
	}
	return strings.TrimRight(strings.TrimSpace(captured), " ₹")
}
