// Package receipt implements the receipt/vision extractor from spec
// §4.3: normalize the image (EXIF-rotate, downscale) with
// disintegration/imaging before handing it to a vision collaborator, then
// map the collaborator's JSON response onto extract.ReceiptResult.
package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"

	"github.com/wealthin/agent-backend/internal/apperr"
	"github.com/wealthin/agent-backend/internal/extract"
)

// maxDimension bounds the longer image side before it is sent to the
// vision collaborator, keeping request payloads and OCR latency bounded.
const maxDimension = 1600

// VisionProvider is the "vision collaborator" from spec §4.3: given image
// bytes, it returns the raw JSON object
// {merchant_name, date?, total_amount, currency, items[], category?,
//  payment_method?, raw_text}. A NotConfigured implementation must return
// apperr.NotConfigured.
type VisionProvider interface {
	Analyze(ctx context.Context, imageBytes []byte, contentType string) (json.RawMessage, error)
}

// Normalize EXIF-rotates the image upright and downscales it to
// maxDimension on the longer side, matching how a phone-camera receipt
// photo needs to be prepared before OCR.
func Normalize(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("decode receipt image: %v", err))
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, maxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, apperr.Internal("encode normalized receipt image", err)
	}
	return buf.Bytes(), nil
}

// visionResponse mirrors the JSON object spec §4.3 describes.
type visionResponse struct {
	MerchantName  string  `json:"merchant_name"`
	Date          *string `json:"date,omitempty"`
	TotalAmount   float64 `json:"total_amount"`
	Currency      string  `json:"currency"`
	Items         []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	} `json:"items"`
	Category      string `json:"category,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	RawText       string `json:"raw_text,omitempty"`
}

var receiptDateLayouts = []string{"2006-01-02", "02/01/2006", "02 Jan 2006"}

// Extract normalizes the image, delegates to provider, and maps the
// response onto extract.ReceiptResult (spec §4.3 "Receipt extractor").
func Extract(ctx context.Context, provider VisionProvider, raw []byte, contentType string) (*extract.ReceiptResult, error) {
	if provider == nil {
		return nil, apperr.NotConfigured("no vision provider configured")
	}

	normalized, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	body, err := provider.Analyze(ctx, normalized, contentType)
	if err != nil {
		return nil, apperr.Transient("vision provider call failed", err)
	}

	var resp visionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperr.Internal("parse vision provider response", err)
	}

	out := &extract.ReceiptResult{
		MerchantName:  resp.MerchantName,
		TotalAmount:   decimal.NewFromFloat(resp.TotalAmount),
		Currency:      resp.Currency,
		Category:      resp.Category,
		PaymentMethod: resp.PaymentMethod,
		RawText:       resp.RawText,
	}
	if resp.Date != nil {
		for _, layout := range receiptDateLayouts {
			if t, err := time.Parse(layout, *resp.Date); err == nil {
				out.Date = &t
				break
			}
		}
	}
	for _, item := range resp.Items {
		out.Items = append(out.Items, extract.ReceiptItem{Name: item.Name, Amount: decimal.NewFromFloat(item.Amount)})
	}
	return out, nil
}

// decodeBounds decodes an encoded image and returns its pixel bounds. It is
// unexported and nothing calls it, the tests included.
func decodeBounds(b []byte) (image.Rectangle, error) {
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return image.Rectangle{}, err
	}
	return img.Bounds(), nil
}
