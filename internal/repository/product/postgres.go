package product

import (
	"context"
	"errors"
	"io"
	"log"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id, name, COALESCE(description, ''), price, stock, category, rating
FROM products
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	index := make(map[int64]int)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.Rating); err != nil {
			return nil, err
		}
		p.Reviews = []domain.Review{}
		index[p.ID] = len(result)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}

	const reviewsQ = `
SELECT product_id, reviewer, rating, comment, created_at
FROM reviews
ORDER BY product_id, created_at
`
	reviewRows, err := r.pool.Query(ctx, reviewsQ)
	if err != nil {
		r.logger.Printf("product repo: list reviews error=%v", err)
		return nil, err
	}
	defer reviewRows.Close()

	for reviewRows.Next() {
		var productID int64
		var review domain.Review
		if err := reviewRows.Scan(&productID, &review.User, &review.Rating, &review.Comment, &review.Date); err != nil {
			return nil, err
		}
		if i, ok := index[productID]; ok {
			result[i].Reviews = append(result[i].Reviews, review)
		}
	}
	if err := reviewRows.Err(); err != nil {
		return nil, err
	}

	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT id, name, COALESCE(description, ''), price, stock, category, rating
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	p.Reviews = []domain.Review{}

	const reviewsQ = `
SELECT reviewer, rating, comment, created_at
FROM reviews
WHERE product_id = $1
ORDER BY created_at
`
	rows, err := r.pool.Query(ctx, reviewsQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.User, &review.Rating, &review.Comment, &review.Date); err != nil {
			return nil, err
		}
		p.Reviews = append(p.Reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

// AddReview inserts the review and recomputes the product's average rating
// in one transaction. The returned average is rounded to one decimal, which
// is the precision the storefront displays.
func (r *postgresRepo) AddReview(ctx context.Context, productID int64, review domain.Review) (float64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO reviews (product_id, reviewer, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5)
`, productID, review.User, review.Rating, review.Comment, review.Date); err != nil {
		return 0, err
	}

	var avg float64
	if err := tx.QueryRow(ctx, `
SELECT AVG(rating)::float8 FROM reviews WHERE product_id = $1
`, productID).Scan(&avg); err != nil {
		return 0, err
	}
	avg = math.Round(avg*10) / 10

	if _, err := tx.Exec(ctx, `
UPDATE products SET rating = $1 WHERE id = $2
`, avg, productID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	r.logger.Printf("product repo: review added product_id=%d new_rating=%.1f", productID, avg)
	return avg, nil
}

// Upsert inserts the product, or refreshes an existing row matched by name.
// Imports run repeatedly against the same file, so name is the stable key.
func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, stock, category, rating)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name) DO UPDATE SET
	description = EXCLUDED.description,
	price = EXCLUDED.price,
	stock = EXCLUDED.stock,
	category = EXCLUDED.category,
	rating = EXCLUDED.rating
RETURNING id
`
	err := r.pool.QueryRow(ctx, q,
		product.Name, product.Description, product.Price, product.Stock, product.Category, product.Rating,
	).Scan(&product.ID)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%q error=%v", product.Name, err)
		return nil, err
	}

	r.logger.Printf("product repo: upsert name=%q id=%d", product.Name, product.ID)
	return &product, nil
}
