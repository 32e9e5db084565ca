// Package catalog fetches the product catalog from the backend and serves it
// to the rest of the storefront as an in-memory snapshot.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

// Client fetches products over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient builds a catalog client for the given API base URL. httpClient
// and logger may be nil.
func NewClient(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type productsEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []domain.Product `json:"data"`
}

// FetchProducts performs GET {base}/products. A transport failure, non-2xx
// status, malformed body, or success:false envelope is a fetch failure; the
// caller decides how to present it.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch products: unexpected status %d", resp.StatusCode)
	}

	var envelope productsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("fetch products: decode response: %w", err)
	}
	if !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = "server reported failure"
		}
		return nil, fmt.Errorf("fetch products: %s", msg)
	}

	c.logger.Printf("catalog: fetched %d products", len(envelope.Data))
	return envelope.Data, nil
}
