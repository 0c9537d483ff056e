// Package docintel is the optional cloud document-intelligence
// collaborator from spec §4.3 step 1: upload raw PDF bytes to a
// configured OCR/layout endpoint and return the extracted text. No
// example repo in the pack wires a document-intelligence SDK, so this
// is a thin net/http client rather than a vendor library.
package docintel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wealthin/agent-backend/internal/apperr"
)

// Client calls a REST document-intelligence endpoint that accepts raw
// document bytes and returns {"text": "..."}.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// New returns nil when endpoint/apiKey are unset, so the PDF extractor
// falls through to the local strategies (spec §4.3's NotConfigured
// contract for pdf.DocIntelligence).
func New(endpoint, apiKey string) *Client {
	if endpoint == "" || apiKey == "" {
		return nil
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type extractResponse struct {
	Text string `json:"text"`
}

// Extract implements pdf.DocIntelligence.
func (c *Client) Extract(ctx context.Context, raw []byte) (string, error) {
	if c == nil {
		return "", apperr.NotConfigured("document intelligence endpoint not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", apperr.Internal("build document intelligence request", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.Transient("document intelligence request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", apperr.Transient(fmt.Sprintf("document intelligence returned %d", resp.StatusCode), nil)
	}
	if resp.StatusCode >= 400 {
		return "", apperr.Validation(fmt.Sprintf("document intelligence returned %d", resp.StatusCode))
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Internal("decode document intelligence response", err)
	}
	return out.Text, nil
}
