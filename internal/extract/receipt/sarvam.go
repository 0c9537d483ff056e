package receipt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wealthin/agent-backend/internal/apperr"
)

// SarvamVisionProvider implements VisionProvider against Sarvam AI's
// vision-chat endpoint — no vision SDK exists in the pack, so this is a
// thin net/http client matching docintel.Client's shape.
type SarvamVisionProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewSarvamVisionProvider returns nil when apiKey is unset so Extract's
// caller can treat the collaborator as NotConfigured.
func NewSarvamVisionProvider(apiKey string) *SarvamVisionProvider {
	if apiKey == "" {
		return nil
	}
	return &SarvamVisionProvider{
		apiKey:     apiKey,
		endpoint:   "https://api.sarvam.ai/v1/vision/analyze",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type sarvamRequest struct {
	Image       string `json:"image_base64"`
	ContentType string `json:"content_type"`
	Prompt      string `json:"prompt"`
}

const receiptPrompt = `Extract this receipt as JSON: {"merchant_name","date","total_amount","currency","items":[{"name","amount"}],"category","payment_method","raw_text"}.`

func (p *SarvamVisionProvider) Analyze(ctx context.Context, imageBytes []byte, contentType string) (json.RawMessage, error) {
	if p == nil {
		return nil, apperr.NotConfigured("sarvam vision provider not configured")
	}

	body, err := json.Marshal(sarvamRequest{
		Image:       base64.StdEncoding.EncodeToString(imageBytes),
		ContentType: contentType,
		Prompt:      receiptPrompt,
	})
	if err != nil {
		return nil, apperr.Internal("encode sarvam request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Internal("build sarvam request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-subscription-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Transient("sarvam vision request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, apperr.Transient(fmt.Sprintf("sarvam vision returned %d", resp.StatusCode), nil)
	}
	if resp.StatusCode >= 400 {
		return nil, apperr.Validation(fmt.Sprintf("sarvam vision returned %d", resp.StatusCode))
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperr.Internal("decode sarvam response", err)
	}
	return raw, nil
}
