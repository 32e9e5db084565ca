// Package checkout submits a cart to the backend purchase endpoint and
// interprets the outcome. It never touches cart state: a failed submission
// leaves everything in place for a retry, and after a success the caller
// clears the cart as a separate step, so a receipt can be shown first.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

// DefaultCustomerName stands in when the buyer leaves the name blank.
const DefaultCustomerName = "Guest Customer"

// ErrSubmissionInFlight rejects a Submit while another one is outstanding.
// The guard is request-level, not a disabled button: a double submit fails
// synchronously here even if the presenter forgot to lock its controls.
var ErrSubmissionInFlight = errors.New("a purchase is already being processed")

// PurchaseError is the typed failure for every unsuccessful submission:
// transport failure, non-2xx status, or a success:false envelope. The message
// is suitable for direct display.
type PurchaseError struct {
	Message string
}

func (e *PurchaseError) Error() string {
	return e.Message
}

// CustomerInfo is the buyer identity attached to a purchase. Email is
// optional; a blank name becomes DefaultCustomerName.
type CustomerInfo struct {
	Name  string
	Email string
}

// Client performs the purchase exchange.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time

	inFlight atomic.Bool
}

// NewClient builds a checkout client for the given API base URL. httpClient
// and logger may be nil.
func NewClient(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

type purchaseItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type purchaseCustomer struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

type purchasePayload struct {
	CartItems    []purchaseItem   `json:"cartItems"`
	Total        float64          `json:"total"`
	CustomerInfo purchaseCustomer `json:"customerInfo"`
}

type purchaseEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

// Submit performs exactly one purchase round trip. On success it returns the
// server-issued order confirmation. Every failure mode comes back as a
// *PurchaseError (or ErrSubmissionInFlight), with the cart untouched.
func (c *Client) Submit(ctx context.Context, items []domain.CartItem, total float64, info CustomerInfo) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, &PurchaseError{Message: "your cart is empty"}
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = DefaultCustomerName
	}

	payload := purchasePayload{
		CartItems: make([]purchaseItem, 0, len(items)),
		Total:     total,
		CustomerInfo: purchaseCustomer{
			Name:      name,
			Email:     strings.TrimSpace(info.Email),
			Timestamp: c.now().UTC().Format(time.RFC3339),
		},
	}
	for _, item := range items {
		payload.CartItems = append(payload.CartItems, purchaseItem{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &PurchaseError{Message: fmt.Sprintf("build purchase request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/purchase", bytes.NewReader(body))
	if err != nil {
		return nil, &PurchaseError{Message: fmt.Sprintf("build purchase request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &PurchaseError{Message: fmt.Sprintf("purchase request failed: %v", err)}
	}
	defer resp.Body.Close()

	var envelope purchaseEnvelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := envelope.Message
		if msg == "" {
			msg = fmt.Sprintf("purchase failed (status %d)", resp.StatusCode)
		}
		return nil, &PurchaseError{Message: msg}
	}
	if decodeErr != nil {
		return nil, &PurchaseError{Message: fmt.Sprintf("read purchase response: %v", decodeErr)}
	}
	if !envelope.Success || envelope.Order == nil {
		msg := envelope.Message
		if msg == "" {
			msg = "purchase failed"
		}
		return nil, &PurchaseError{Message: msg}
	}

	c.logger.Printf("checkout: order %s confirmed, total %.2f", envelope.Order.OrderID, envelope.Order.Total)
	return envelope.Order, nil
}
