package monobank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Hryvnia currency code used on every invoice.
const CcyUAH = 980

// Invoice statuses delivered on the webhook.
const (
	StatusSuccess    = "success"
	StatusFailure    = "failure"
	StatusExpired    = "expired"
	StatusProcessing = "processing"
)

// Client creates payment invoices through the Monobank acquiring API. The
// HTTP client is injected for test substitution.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	webhookURL string
}

func NewClient(httpClient *http.Client, baseURL, token, webhookURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		webhookURL: webhookURL,
	}
}

// InvoiceRequest describes one payment. Amount is in minor units (kopiykas).
// Reference and Destination travel nested under merchantPaymInfo on the wire.
type InvoiceRequest struct {
	Amount      int64
	Ccy         int
	Reference   string
	Destination string
	RedirectURL string
	WebHookURL  string
}

// merchantPaymInfo is the nested payment description object of the acquiring
// API; reference is echoed back on the webhook.
type merchantPaymInfo struct {
	Reference   string `json:"reference,omitempty"`
	Destination string `json:"destination,omitempty"`
}

type invoiceCreateBody struct {
	Amount           int64             `json:"amount"`
	Ccy              int               `json:"ccy"`
	MerchantPaymInfo *merchantPaymInfo `json:"merchantPaymInfo,omitempty"`
	RedirectURL      string            `json:"redirectUrl,omitempty"`
	WebHookURL       string            `json:"webHookUrl,omitempty"`
}

// Invoice is the created payment handle: our key for webhook correlation plus
// the hosted payment page the client is redirected to.
type Invoice struct {
	InvoiceID string `json:"invoiceId"`
	PageURL   string `json:"pageUrl"`
}

// WebhookPayload is the status update Monobank posts back.
type WebhookPayload struct {
	InvoiceID string `json:"invoiceId"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// CreateInvoice requests a hosted payment page for the given amount.
func (c *Client) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	if req.Ccy == 0 {
		req.Ccy = CcyUAH
	}
	if req.WebHookURL == "" {
		req.WebHookURL = c.webhookURL
	}

	wire := invoiceCreateBody{
		Amount:      req.Amount,
		Ccy:         req.Ccy,
		RedirectURL: req.RedirectURL,
		WebHookURL:  req.WebHookURL,
	}
	if req.Reference != "" || req.Destination != "" {
		wire.MerchantPaymInfo = &merchantPaymInfo{
			Reference:   req.Reference,
			Destination: req.Destination,
		}
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/merchant/invoice/create",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("X-Token", c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			ErrText string `json:"errText"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("monobank: invoice create returned status %d: %s", resp.StatusCode, apiErr.ErrText)
	}

	var invoice Invoice
	if err := json.NewDecoder(resp.Body).Decode(&invoice); err != nil {
		return nil, fmt.Errorf("monobank: decode invoice response: %w", err)
	}
	if invoice.InvoiceID == "" {
		return nil, fmt.Errorf("monobank: invoice response has no invoiceId")
	}
	return &invoice, nil
}
