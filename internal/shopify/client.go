// Package shopify talks to the companion service that holds the store's
// Shopify connection.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/digitalhaute/internal/common"
)

// Status describes the Shopify connection.
type Status struct {
	ShopDomain  string `json:"shopDomain,omitempty"`
	ConnectedAt string `json:"connectedAt,omitempty"`
	Connected   bool   `json:"connected"`
}

// Ready reports whether products can be exported.
func (s Status) Ready() bool {
	return s.Connected && s.ShopDomain != ""
}

// ExportRequest selects products for a Shopify export.
type ExportRequest struct {
	ShopDomain string   `json:"shopDomain"`
	ProductIDs []string `json:"productIds"`
}

// ExportResult is the outcome of an export.
type ExportResult struct {
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
	Success bool   `json:"success"`
}

// Client calls the Shopify status and export endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retry      common.RetryOptions
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%w: shopify.base_url", common.ErrMissingConfig)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2,
		},
	}, nil
}

// Status fetches the connection status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var status Status
	err := common.WithRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/api/shopify/status", nil, &status)
	}, c.retry)
	if err != nil {
		return Status{}, fmt.Errorf("failed to check shopify status: %w", err)
	}
	return status, nil
}

// Export pushes the selected products to the connected store. Exports are
// not retried since a partial failure may already have created products.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	var result ExportResult
	if err := c.do(ctx, http.MethodPost, "/api/products/export-to-shopify", req, &result); err != nil {
		return ExportResult{}, fmt.Errorf("failed to export to shopify: %w", err)
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "There was an error exporting to Shopify."
		}
		return result, common.NewUserError(msg, common.ErrUpstream)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &common.RetryableError{Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &common.RetryableError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &common.RetryableError{Err: fmt.Errorf("failed to read response: %w", err), Retryable: true}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", common.ErrRateLimit, path)
	case resp.StatusCode >= 500:
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %s returned %d", common.ErrUpstream, path, resp.StatusCode),
			Retryable: true,
		}
	case resp.StatusCode >= 300:
		return &common.RetryableError{
			Err: fmt.Errorf("%w: %s returned %d: %s", common.ErrUpstream, path, resp.StatusCode, strings.TrimSpace(string(data))),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &common.RetryableError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}
