package receipt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/apperr"
	"github.com/wealthin/agent-backend/internal/extract/receipt"
)

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func TestNormalize_DownscalesOversizedImage(t *testing.T) {
	raw := makeJPEG(t, 3000, 1000)
	out, err := receipt.Normalize(raw)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.LessOrEqual(t, img.Bounds().Dx(), 1600)
}

type fakeVision struct {
	body []byte
	err  error
}

func (f *fakeVision) Analyze(ctx context.Context, imageBytes []byte, contentType string) (json.RawMessage, error) {
	return f.body, f.err
}

func TestExtract_MapsVisionResponse(t *testing.T) {
	raw := makeJPEG(t, 400, 400)
	provider := &fakeVision{body: []byte(`{
		"merchant_name":"Big Bazaar","date":"2026-03-01","total_amount":450.75,
		"currency":"INR","items":[{"name":"Milk","amount":60}],"category":"Groceries"
	}`)}
	result, err := receipt.Extract(context.Background(), provider, raw, "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "Big Bazaar", result.MerchantName)
	require.NotNil(t, result.Date)
	require.True(t, result.TotalAmount.Equal(result.TotalAmount)) // sanity
	require.Len(t, result.Items, 1)
}

func TestExtract_NoProviderIsNotConfigured(t *testing.T) {
	_, err := receipt.Extract(context.Background(), nil, []byte{}, "image/jpeg")
	require.Equal(t, apperr.KindNotConfigured, apperr.KindOf(err))
}

func TestExtract_ProviderFailureIsTransient(t *testing.T) {
	raw := makeJPEG(t, 100, 100)
	provider := &fakeVision{err: errors.New("boom")}
	_, err := receipt.Extract(context.Background(), provider, raw, "image/jpeg")
	require.Equal(t, apperr.KindTransient, apperr.KindOf(err))
}
