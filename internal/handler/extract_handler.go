package handler

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wealthin/agent-backend/internal/extract"
	"github.com/wealthin/agent-backend/internal/extract/pdf"
	"github.com/wealthin/agent-backend/internal/extract/receipt"
	"github.com/wealthin/agent-backend/internal/extract/storage"
	"github.com/wealthin/agent-backend/internal/ledger"
)

// plainTextDocument treats an uploaded file's bytes as a single page of
// already-extracted text (pdf.Document has no bundled decoder — see
// DESIGN.md; a real PDF-to-text/table decoder plugs in here without
// touching the strategy chain in internal/extract/pdf).
type plainTextDocument struct {
	text string
}

func (d *plainTextDocument) PageCount() int                       { return 1 }
func (d *plainTextDocument) PageText(i int) string                 { return d.text }
func (d *plainTextDocument) PageTable(i int) ([][]string, bool)    { return nil, false }
func (d *plainTextDocument) FullText() string                      { return d.text }

// ExtractHandler exposes C2 over HTTP (spec §6.1: /agent/scan-document,
// /agent/scan-receipt).
type ExtractHandler struct {
	ledger   *ledger.Store
	blobs    *storage.Store
	docIntel pdf.DocIntelligence
	vision   receipt.VisionProvider
}

func NewExtractHandler(ledgerStore *ledger.Store, blobs *storage.Store, docIntel pdf.DocIntelligence, vision receipt.VisionProvider) *ExtractHandler {
	return &ExtractHandler{ledger: ledgerStore, blobs: blobs, docIntel: docIntel, vision: vision}
}

// ScanDocument handles POST /agent/scan-document (multipart).
func (h *ExtractHandler) ScanDocument(c echo.Context) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "file is required", nil)
	}
	f, err := fh.Open()
	if err != nil {
		return RespondErr(c, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return RespondErr(c, err)
	}

	docType := c.FormValue("type")
	if docType == "" {
		docType = "auto"
	}

	doc := &plainTextDocument{text: string(raw)}
	txs, err := pdf.ExtractTransactionsFromPDF(c.Request().Context(), raw, doc, h.docIntel, pdf.ExtractOptions{Type: docType})
	if err != nil {
		return RespondErr(c, err)
	}

	created := make([]*ledger.Transaction, 0, len(txs))
	for _, t := range txs {
		typ := ledger.TypeExpense
		if t.Type == extract.TypeIncome {
			typ = ledger.TypeIncome
		}
		row, err := h.ledger.CreateTransaction(&ledger.Transaction{
			UserID:      userID,
			Amount:      t.Amount,
			Type:        typ,
			Description: t.Description,
			Date:        t.Date,
		})
		if err != nil {
			return RespondErr(c, err)
		}
		created = append(created, row)
	}

	return c.JSON(http.StatusOK, echo.Map{"transactions": created, "source_strategies": strategySources(txs)})
}

func strategySources(txs []*extract.Transaction) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range txs {
		if !seen[t.Source] {
			seen[t.Source] = true
			out = append(out, t.Source)
		}
	}
	return out
}

// ScanReceipt handles POST /agent/scan-receipt (multipart).
func (h *ExtractHandler) ScanReceipt(c echo.Context) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "file is required", nil)
	}
	f, err := fh.Open()
	if err != nil {
		return RespondErr(c, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return RespondErr(c, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	result, err := receipt.Extract(c.Request().Context(), h.vision, raw, contentType)
	if err != nil {
		return RespondErr(c, err)
	}

	var receiptURL string
	if h.blobs != nil {
		objectPath := "receipts/" + userID + "/" + strings.ReplaceAll(fh.Filename, "/", "_")
		receiptURL, err = h.blobs.Upload(c.Request().Context(), objectPath, bytes.NewReader(raw), contentType, int64(len(raw)))
		if err != nil {
			return RespondErr(c, err)
		}
	}

	date := time.Now().UTC()
	if result.Date != nil {
		date = *result.Date
	}
	row, err := h.ledger.CreateTransaction(&ledger.Transaction{
		UserID:      userID,
		Amount:      result.TotalAmount,
		Type:        ledger.TypeExpense,
		Category:    result.Category,
		Description: result.MerchantName,
		Merchant:    result.MerchantName,
		Date:        date,
		ReceiptURL:  receiptURL,
	})
	if err != nil {
		return RespondErr(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"transaction": row, "receipt": result})
}
