package catalog

import (
	"sync"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

// Snapshot is the fetched catalog held in memory. It satisfies the cart's
// Catalog interface and absorbs the client-side rating refresh performed
// after a review is accepted. Stock figures stay as fetched; the backend owns
// decrements and the snapshot is by design possibly stale.
type Snapshot struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]int
}

// NewSnapshot copies products into a snapshot, preserving order.
func NewSnapshot(products []domain.Product) *Snapshot {
	s := &Snapshot{}
	s.Replace(products)
	return s
}

// Replace swaps the whole catalog, e.g. after a re-fetch.
func (s *Snapshot) Replace(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make([]domain.Product, len(products))
	copy(s.products, products)
	s.byID = make(map[int64]int, len(products))
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
}

// Lookup returns a copy of the product, or false when the id is unknown.
func (s *Snapshot) Lookup(productID int64) (*domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[productID]
	if !ok {
		return nil, false
	}
	p := s.products[idx]
	return &p, true
}

// Products returns a copy of the catalog in fetch order.
func (s *Snapshot) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len reports the number of products held.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// ApplyReview appends an accepted review to the product and adopts the
// server-computed average rating. Returns false when the product is unknown.
func (s *Snapshot) ApplyReview(productID int64, review domain.Review, newAverage float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[productID]
	if !ok {
		return false
	}
	s.products[idx].Reviews = append(s.products[idx].Reviews, review)
	s.products[idx].Rating = newAverage
	return true
}
