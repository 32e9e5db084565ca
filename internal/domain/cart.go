package domain

// CartItem is one cart line. At most one line exists per product; the unit
// price is copied from the catalog when the line is first created and is not
// refreshed by later additions, so a catalog price change mid-session does
// not move an already carted item.
type CartItem struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"total"`
	Category  string  `json:"category"`
	// StockSnapshot is the product stock observed at the last successful
	// mutation of this line. Presentation uses it to cap quantity steppers.
	StockSnapshot int `json:"stock"`
}

// CartTotals holds the derived amounts for a cart. The three fields are
// recomputed together after every mutation and are each rounded to cents.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
