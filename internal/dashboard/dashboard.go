// Package dashboard derives the chart and metric series shown on the
// storefront dashboard. Everything here is pure computation over a catalog
// snapshot; rendering is the caller's business.
package dashboard

import (
	"sort"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
	"github.com/keons0101/retail-dashboard-app/internal/money"
)

// AssumedInitialStock is the per-product starting stock used to estimate
// units sold. The backend does not expose sales history, so the dashboard
// infers it from stock drawdown against this baseline.
const AssumedInitialStock = 50

// Summary holds the headline metrics.
type Summary struct {
	TotalProducts  int
	TotalUnits     int
	InventoryValue float64
	AverageRating  float64
	LowStockCount  int
}

// Summarize computes the headline metrics. Inventory value is rounded to
// cents; a product counts as low stock when it has 1-5 units left.
func Summarize(products []domain.Product) Summary {
	s := Summary{TotalProducts: len(products)}
	var value, ratingSum float64
	for _, p := range products {
		s.TotalUnits += p.Stock
		value += p.Price * float64(p.Stock)
		ratingSum += p.Rating
		if p.Stock > 0 && p.Stock <= 5 {
			s.LowStockCount++
		}
	}
	s.InventoryValue = money.Round2(value)
	if len(products) > 0 {
		s.AverageRating = ratingSum / float64(len(products))
	}
	return s
}

// StockBreakdown buckets products by remaining stock.
type StockBreakdown struct {
	OutOfStock  int // 0 units
	LowStock    int // under 5
	MediumStock int // 5 to 10
	GoodStock   int // over 10
}

// StockStatus buckets every product by its stock level.
func StockStatus(products []domain.Product) StockBreakdown {
	var b StockBreakdown
	for _, p := range products {
		switch {
		case p.Stock == 0:
			b.OutOfStock++
		case p.Stock < 5:
			b.LowStock++
		case p.Stock <= 10:
			b.MediumStock++
		default:
			b.GoodStock++
		}
	}
	return b
}

// RatingBuckets counts products per rating band, highest first.
type RatingBuckets struct {
	Top    int // 4.5 and up
	High   int // 4.0 to 4.4
	Mid    int // 3.0 to 3.9
	Low    int // 2.0 to 2.9
	Bottom int // below 2.0
}

// RatingDistribution buckets every product by its average rating.
func RatingDistribution(products []domain.Product) RatingBuckets {
	var b RatingBuckets
	for _, p := range products {
		switch {
		case p.Rating >= 4.5:
			b.Top++
		case p.Rating >= 4.0:
			b.High++
		case p.Rating >= 3.0:
			b.Mid++
		case p.Rating >= 2.0:
			b.Low++
		default:
			b.Bottom++
		}
	}
	return b
}

// CategoryCounts tallies products per category.
func CategoryCounts(products []domain.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}
	return counts
}

// ProductSales is the estimated sales performance of one product.
type ProductSales struct {
	Name      string
	UnitsSold int
	Revenue   float64
}

// TopSales ranks products by estimated revenue and returns the first n.
// Units sold are inferred as drawdown from AssumedInitialStock, floored at
// zero for products stocked above the baseline.
func TopSales(products []domain.Product, n int) []ProductSales {
	sales := make([]ProductSales, 0, len(products))
	for _, p := range products {
		sold := AssumedInitialStock - p.Stock
		if sold < 0 {
			sold = 0
		}
		sales = append(sales, ProductSales{
			Name:      p.Name,
			UnitsSold: sold,
			Revenue:   money.Round2(float64(sold) * p.Price),
		})
	}
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Revenue > sales[j].Revenue
	})
	if n > 0 && len(sales) > n {
		sales = sales[:n]
	}
	return sales
}
