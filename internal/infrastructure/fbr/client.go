// Package fbr implements the client for the FBR (Federal Board of Revenue)
// digital-invoicing gateway. The gateway is a plain JSON-over-HTTPS service:
// one endpoint registers invoice data, a second re-validates an already
// registered invoice. The client is a pass-through — no retries; a network
// failure or timeout is fatal to that single call and surfaces as an
// UpstreamError carrying whatever the gateway returned.
package fbr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
)

// Sandbox endpoints of the FBR digital-invoicing gateway.
const (
	defaultBaseURL   = "https://gw.fbr.gov.pk"
	postInvoicePath  = "/di_data/v1/di/postinvoicedata_sb"
	validateDataPath = "/di_data/v1/di/validateinvoicedata_sb"
)

// ValidationResponse is the verdict block inside a gateway response.
type ValidationResponse struct {
	StatusCode string `json:"statusCode"`
	Status     string `json:"status"` // "Valid" | "Invalid" | "Pending"
	Error      string `json:"error"`
}

// Verdict is the parsed gateway response. Raw keeps the full payload
// untouched for audit storage.
type Verdict struct {
	InvoiceNumber string              `json:"invoiceNumber"`
	Dated         string              `json:"dated"`
	Validation    *ValidationResponse `json:"validationResponse"`
	Raw           json.RawMessage     `json:"-"`
}

// Submitter is the outbound port for the gateway. The concrete implementation
// speaks HTTPS; tests inject a fake.
type Submitter interface {
	// PostInvoice registers invoice data with the gateway.
	PostInvoice(ctx context.Context, payload any) (*Verdict, error)
	// ValidateInvoice re-submits a stored invoice payload for validation.
	ValidateInvoice(ctx context.Context, payload any) (*Verdict, error)
}

// Client implements Submitter against the FBR sandbox/production host.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds the gateway client. baseURL may be empty to use the
// official host; token is the bearer token from the FBR portal.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// PostInvoice registers invoice data with the gateway.
func (c *Client) PostInvoice(ctx context.Context, payload any) (*Verdict, error) {
	return c.submit(ctx, "post", postInvoicePath, payload)
}

// ValidateInvoice re-submits a stored invoice payload for validation.
func (c *Client) ValidateInvoice(ctx context.Context, payload any) (*Verdict, error) {
	return c.submit(ctx, "validate", validateDataPath, payload)
}

func (c *Client) submit(ctx context.Context, op, path string, payload any) (*Verdict, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fbr: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fbr: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Op: op, Status: resp.StatusCode, RawBody: string(raw)}
	}

	var v Verdict
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &domain.UpstreamError{Op: op, Status: resp.StatusCode, RawBody: string(raw), Err: err}
	}
	v.Raw = raw
	return &v, nil
}
