package order

import (
	"context"
	"time"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

// Line is one purchased position as submitted by the storefront.
type Line struct {
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
}

// CreateOrderInput carries everything needed to record an order.
type CreateOrderInput struct {
	OrderID  string
	Customer domain.Customer
	PlacedAt time.Time
	Lines    []Line
	Total    float64
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
}
