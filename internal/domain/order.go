package domain

import "time"

// Order is the server-issued confirmation returned by a successful purchase.
type Order struct {
	OrderID  string      `json:"orderId"`
	Date     time.Time   `json:"date"`
	Customer Customer    `json:"customer"`
	Items    []OrderItem `json:"items"`
	Total    float64     `json:"total"`
}

// OrderItem carries the server-computed breakdown for one purchased line.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Customer identifies the buyer on an order. Email may be empty.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
