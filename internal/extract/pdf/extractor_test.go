package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/extract"
	"github.com/wealthin/agent-backend/internal/extract/pdf"
)

func TestParseLine_ExpenseWithBalance(t *testing.T) {
	tx, ok := pdf.ParseLine("01/03/2026 SWIGGY ORDER 123 450.00 Dr 12,340.50")
	require.True(t, ok)
	require.Equal(t, extract.TypeExpense, tx.Type)
	require.True(t, tx.Amount.Equal(decimal.NewFromFloat(450)))
	require.NotNil(t, tx.Balance)
	require.True(t, tx.Balance.Equal(decimal.NewFromFloat(12340.50)))
}

func TestParseLine_CreditKeywordMarksIncome(t *testing.T) {
	tx, ok := pdf.ParseLine("02/03/2026 SALARY CREDIT 50000.00")
	require.True(t, ok)
	require.Equal(t, extract.TypeIncome, tx.Type)
}

func TestParseLine_NoDateReturnsFalse(t *testing.T) {
	_, ok := pdf.ParseLine("no date token here 100.00")
	require.False(t, ok)
}

func TestParsePhonePe_PairsNearestAmount(t *testing.T) {
	text := "01/03/2026 Paid to Zomato 345.00\n01/03/2026 Received from Rahul 1200.00"
	txs := pdf.ParsePhonePe(text)
	require.Len(t, txs, 2)
	require.Equal(t, extract.TypeExpense, txs[0].Type)
	require.Equal(t, "Zomato", txs[0].Description)
	require.Equal(t, extract.TypeIncome, txs[1].Type)
}

func TestDedup_MergesWithinOneDayKeepsEarliest(t *testing.T) {
	d0, _ := time.Parse("2006-01-02", "2026-03-01")
	d1, _ := time.Parse("2006-01-02", "2026-03-02")
	d2, _ := time.Parse("2006-01-02", "2026-03-03")
	a := &extract.Transaction{Date: d0, Amount: decimal.NewFromInt(100), Description: "Zomato", Type: extract.TypeExpense}
	b := &extract.Transaction{Date: d1, Amount: decimal.NewFromInt(100), Description: "zomato", Type: extract.TypeExpense}
	c := &extract.Transaction{Date: d2, Amount: decimal.NewFromInt(100), Description: "Zomato", Type: extract.TypeExpense}

	merged := pdf.Dedup([]*extract.Transaction{a, b})
	require.Len(t, merged, 1)
	require.True(t, merged[0].Date.Equal(d0))

	notMerged := pdf.Dedup([]*extract.Transaction{a, c})
	require.Len(t, notMerged, 2)
}

type fakeDoc struct {
	pages []string
	table [][]string
}

func (d *fakeDoc) PageCount() int        { return len(d.pages) }
func (d *fakeDoc) PageText(i int) string { return d.pages[i] }
func (d *fakeDoc) PageTable(i int) ([][]string, bool) {
	if i == 0 && d.table != nil {
		return d.table, true
	}
	return nil, false
}
func (d *fakeDoc) FullText() string {
	out := ""
	for _, p := range d.pages {
		out += p + "\n"
	}
	return out
}

func TestExtractTransactionsFromPDF_RejectsOverPageBudget(t *testing.T) {
	doc := &fakeDoc{pages: make([]string, extract.MaxPages+1)}
	_, err := pdf.ExtractTransactionsFromPDF(context.Background(), nil, doc, nil, pdf.ExtractOptions{})
	require.ErrorIs(t, err, extract.ErrTooManyPages)
}

func TestExtractTransactionsFromPDF_FallsBackToLineStrategy(t *testing.T) {
	doc := &fakeDoc{pages: []string{"01/03/2026 ZOMATO ORDER 450.00"}}
	txs, err := pdf.ExtractTransactionsFromPDF(context.Background(), nil, doc, nil, pdf.ExtractOptions{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "line", txs[0].Source)
}

func TestExtractTransactionsFromPDF_TableStrategyTakesPriority(t *testing.T) {
	doc := &fakeDoc{
		pages: []string{"01/03/2026 ZOMATO ORDER 450.00"},
		table: [][]string{
			{"Date", "Narration", "Debit", "Credit", "Balance"},
			{"01/03/2026", "ZOMATO ORDER", "450.00", "", "10000.00"},
		},
	}
	txs, err := pdf.ExtractTransactionsFromPDF(context.Background(), nil, doc, nil, pdf.ExtractOptions{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "table", txs[0].Source)
}
