package pdf

import (
	"context"
	"time"

	"github.com/wealthin/agent-backend/internal/extract"
)

// Document is a decoded PDF: per-page text and, where the decoder can
// detect one, a per-page table as rows of cells. The strategy chain in
// this package operates purely on this interface so any PDF-to-text/table
// decoder can be plugged in without touching the parsing rules.
type Document interface {
	PageCount() int
	PageText(i int) string
	PageTable(i int) ([][]string, bool)
	FullText() string
}

// DocIntelligence is the optional "cloud document intelligence"
// collaborator from spec §4.3 step 1: upload the raw bytes, poll until
// text is available. A NotConfigured implementation should return
// apperr.NotConfigured so the chain falls through to the local strategies.
type DocIntelligence interface {
	Extract(ctx context.Context, raw []byte) (string, error)
}

// ExtractOptions controls which type hint to apply; "auto" infers it.
type ExtractOptions struct {
	Type string // "auto", "bank_statement", "phonepe"
}

// ExtractTransactionsFromPDF runs the strategy chain from spec §4.3,
// stopping at the first strategy returning >=1 transaction:
// 1. document intelligence (if configured), 2. table extraction,
// 3. whole-page text, with a PhonePe special case applied whenever the
// document self-identifies as such, ahead of the generic strategies.
func ExtractTransactionsFromPDF(ctx context.Context, raw []byte, doc Document, docIntel DocIntelligence, opts ExtractOptions) ([]*extract.Transaction, error) {
	if doc.PageCount() > extract.MaxPages {
		return nil, extract.ErrTooManyPages
	}

	full := doc.FullText()

	if IsPhonePeStatement(full) {
		if txs := ParsePhonePe(full); len(txs) > 0 {
			return Dedup(txs), nil
		}
	}

	if docIntel != nil {
		if text, err := docIntel.Extract(ctx, raw); err == nil && text != "" {
			if txs := ParsePage(text); len(txs) > 0 {
				for _, tx := range txs {
					tx.Source = "docintel"
				}
				return Dedup(txs), nil
			}
		}
	}

	var tableResults []*extract.Transaction
	for i := 0; i < doc.PageCount(); i++ {
		if rows, ok := doc.PageTable(i); ok {
			tableResults = append(tableResults, ParseTable(rows)...)
		}
	}
	if len(tableResults) > 0 {
		return Dedup(tableResults), nil
	}

	var lineResults []*extract.Transaction
	for i := 0; i < doc.PageCount(); i++ {
		lineResults = append(lineResults, ParsePage(doc.PageText(i))...)
	}
	return Dedup(lineResults), nil
}

// Dedup implements spec §4.3's deduplication rule: two transactions are
// duplicates iff their dates are within 1 day, amounts and (case-folded)
// descriptions and types match; the earliest date is kept. P6.
func Dedup(txs []*extract.Transaction) []*extract.Transaction {
	var out []*extract.Transaction
	for _, tx := range txs {
		dupIdx := -1
		for i, existing := range out {
			if sameTransaction(tx, existing) {
				dupIdx = i
				break
			}
		}
		if dupIdx == -1 {
			out = append(out, tx)
			continue
		}
		if tx.Date.Before(out[dupIdx].Date) {
			out[dupIdx] = tx
		}
	}
	return out
}

func sameTransaction(a, b *extract.Transaction) bool {
	if a.Type != b.Type {
		return false
	}
	if !a.Amount.Equal(b.Amount) {
		return false
	}
	if normalizeDesc(a.Description) != normalizeDesc(b.Description) {
		return false
	}
	diff := a.Date.Sub(b.Date)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 24*time.Hour
}

func normalizeDesc(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}
	return string(out)
}
