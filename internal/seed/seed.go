package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Rating      float64
}

// Apply inserts the demo catalog for manual testing. Idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{ID: 1, Name: "Classic Cotton T-Shirt", Description: "Soft everyday tee in a relaxed fit", Price: 19.99, Stock: 42, Category: "Apparel", Rating: 4.3},
		{ID: 2, Name: "Desk Lamp", Description: "Adjustable LED lamp with warm and cool modes", Price: 24.50, Stock: 12, Category: "Home Goods", Rating: 4.6},
		{ID: 3, Name: "Sticker Pack", Description: "Assorted vinyl stickers, pack of 20", Price: 3.25, Stock: 40, Category: "Accessories", Rating: 3.9},
		{ID: 4, Name: "Wireless Earbuds", Description: "Bluetooth 5.3 earbuds with charging case", Price: 59.99, Stock: 8, Category: "Electronics", Rating: 4.1},
		{ID: 5, Name: "Ceramic Mug", Description: "12oz stoneware mug, dishwasher safe", Price: 12.99, Stock: 25, Category: "Home Goods", Rating: 4.8},
		{ID: 6, Name: "Canvas Tote Bag", Description: "Heavy-duty tote with interior pocket", Price: 16.00, Stock: 3, Category: "Accessories", Rating: 4.0},
		{ID: 7, Name: "Wool Beanie", Description: "Ribbed knit beanie, one size", Price: 9.99, Stock: 5, Category: "Accessories", Rating: 4.4},
		{ID: 8, Name: "Mechanical Keyboard", Description: "Tenkeyless board with hot-swappable switches", Price: 89.99, Stock: 0, Category: "Electronics", Rating: 4.7},
		{ID: 9, Name: "Throw Blanket", Description: "Fleece blanket, 50x60 inches", Price: 29.99, Stock: 18, Category: "Home Goods", Rating: 3.5},
		{ID: 10, Name: "Denim Jacket", Description: "Mid-wash jacket with button front", Price: 64.00, Stock: 7, Category: "Apparel", Rating: 2.8},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
	}

	// Keep generated ids clear of the seeded range.
	if _, err := pool.Exec(ctx, `
SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT MAX(id) FROM products))
`); err != nil {
		return fmt.Errorf("advance products sequence: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, price, stock, category, rating)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    stock = EXCLUDED.stock,
    category = EXCLUDED.category,
    rating = EXCLUDED.rating
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.Rating)
	return err
}
