// Package gateway talks to the external payment processor. Orders are
// created over its REST API with basic auth; signature verification of
// callbacks happens in the domain layer and never leaves the process.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"venuehub-api/internal/pkg/config"
	"venuehub-api/internal/pkg/errs"
	"venuehub-api/internal/usecase/shared"
)

var (
	ErrGatewayRequest  = errs.New("payment gateway request failed")
	ErrGatewayResponse = errs.New("payment gateway returned an error")
)

type Client struct {
	http    *http.Client
	baseURL string
	keyID   string
	secret  string
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.GatewayTimeout},
		baseURL: cfg.GatewayBaseURL,
		keyID:   cfg.GatewayKeyID,
		secret:  cfg.GatewaySecret,
	}
}

var _ shared.Gateway = (*Client)(nil)

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder registers the amount with the processor and returns its
// order reference. The reference later keys the settlement callback.
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (shared.GatewayOrder, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return shared.GatewayOrder{}, errs.Wrap(err, "failed to encode order request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return shared.GatewayOrder{}, errs.Wrap(err, "failed to build order request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return shared.GatewayOrder{}, errs.Mark(err, ErrGatewayRequest)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded amount of the body for the log line.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return shared.GatewayOrder{}, errs.Mark(
			errs.Newf("gateway status %d: %s", resp.StatusCode, string(snippet)),
			ErrGatewayResponse,
		)
	}

	var order orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return shared.GatewayOrder{}, errs.Mark(errs.Wrap(err, "failed to decode order response"), ErrGatewayResponse)
	}
	if order.ID == "" {
		return shared.GatewayOrder{}, errs.Mark(errs.New("gateway order missing id"), ErrGatewayResponse)
	}

	return shared.GatewayOrder{
		ExternalRef: order.ID,
		AmountMinor: order.Amount,
		Currency:    order.Currency,
	}, nil
}
