package product

import (
	"context"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	AddReview(ctx context.Context, productID int64, review domain.Review) (float64, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
