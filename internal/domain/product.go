package domain

import "time"

// Product is a catalog entry as served by the backend. The storefront treats
// it as a read-only snapshot: stock is only as fresh as the last fetch, and
// the backend stays authoritative for decrements.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Rating      float64  `json:"rating"`
	Reviews     []Review `json:"reviews"`
}

// Review is a single customer review attached to a product.
type Review struct {
	User    string    `json:"user"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}
