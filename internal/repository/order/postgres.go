package order

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
	"github.com/keons0101/retail-dashboard-app/internal/money"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Create records the order and decrements stock for every line in one
// transaction. A line asking for more units than remain aborts the whole
// purchase with ErrInsufficientStock; nothing is decremented or recorded.
func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	items := make([]domain.OrderItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		cmd, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - $1
WHERE id = $2 AND stock >= $1
`, line.Quantity, line.ProductID)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			r.logger.Printf("order repo: rejected, product_id=%d qty=%d over stock", line.ProductID, line.Quantity)
			return nil, fmt.Errorf("%q: %w", line.Name, domain.ErrInsufficientStock)
		}
		items = append(items, domain.OrderItem{
			Name:     line.Name,
			Quantity: line.Quantity,
			Subtotal: money.Round2(line.Price * float64(line.Quantity)),
		})
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO orders (id, customer_name, customer_email, total, placed_at)
VALUES ($1, $2, $3, $4, $5)
`, in.OrderID, in.Customer.Name, in.Customer.Email, in.Total, in.PlacedAt); err != nil {
		return nil, err
	}

	for i, line := range in.Lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, name, quantity, subtotal)
VALUES ($1, $2, $3, $4, $5)
`, in.OrderID, line.ProductID, line.Name, line.Quantity, items[i].Subtotal); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Printf("order repo: created id=%s lines=%d total=%.2f", in.OrderID, len(in.Lines), in.Total)
	return &domain.Order{
		OrderID:  in.OrderID,
		Date:     in.PlacedAt,
		Customer: in.Customer,
		Items:    items,
		Total:    in.Total,
	}, nil
}
