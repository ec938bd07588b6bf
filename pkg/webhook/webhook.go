package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	apiKeyHeader  = "X-Api-Key"
	orderIDHeader = "X-Order-Id"
)

// ErrDeliveryFailed reports that the downstream system did not acknowledge the
// notification. The caller decides whether to alert or retry; this client
// never retries on its own.
var ErrDeliveryFailed = errors.New("webhook: delivery failed")

// Config holds the downstream notification endpoint settings
type Config struct {
	URL    string
	APIKey string
}

// Client notifies the downstream system of record that an invoice was paid.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new webhook client
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Notify posts a paid-invoice notification. The contract is header-only: the
// API key and the order id travel as headers and the body is empty.
func (c *Client) Notify(ctx context.Context, invoiceID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set(orderIDHeader, invoiceID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}
	return nil
}
