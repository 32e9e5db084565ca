// Package reviews submits product reviews to the backend.
package reviews

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
	"time"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

// Input is a review as entered by the user. It is validated synchronously
// before any network traffic, mirroring the form-side checks.
type Input struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.User) == "" {
		return errors.New("name required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Comment) == "" {
		return errors.New("comment required")
	}
	return nil
}

// Result carries the accepted review and the server-recomputed average, which
// the caller applies to its catalog snapshot.
type Result struct {
	Review           domain.Review
	NewAverageRating float64
}

// Client performs the review exchange.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient builds a reviews client for the given API base URL. httpClient
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

type reviewEnvelope struct {
	Success          bool           `json:"success"`
	Message          string         `json:"message"`
	Review           *domain.Review `json:"review"`
	NewAverageRating float64        `json:"newAverageRating"`
}

// Submit posts a review for the product. Validation failures return before
// any request is made; network and server rejections come back with the
// server's message when one is present.
func (c *Client) Submit(ctx context.Context, productID int64, in Input) (*Result, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	in.User = strings.TrimSpace(in.User)
	in.Comment = strings.TrimSpace(in.Comment)

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("build review request: %w", err)
	}

	url := fmt.Sprintf("%s/api/products/%d/reviews", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build review request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}
	defer resp.Body.Close()

	var envelope reviewEnvelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := envelope.Message
		if msg == "" {
			msg = fmt.Sprintf("review rejected (status %d)", resp.StatusCode)
		}
		return nil, errors.New(msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("read review response: %w", decodeErr)
	}
	if !envelope.Success || envelope.Review == nil {
		msg := envelope.Message
		if msg == "" {
			msg = "failed to submit review"
		}
		return nil, errors.New(msg)
	}

	c.logger.Printf("reviews: product %d now rated %.1f", productID, envelope.NewAverageRating)
	return &Result{Review: *envelope.Review, NewAverageRating: envelope.NewAverageRating}, nil
}
