// Package cart implements the storefront cart: a stock-guarded line-item
// store with derived totals and best-effort persistence between sessions.
package cart

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
	"github.com/keons0101/retail-dashboard-app/internal/money"
	"github.com/keons0101/retail-dashboard-app/internal/storage"
)

// TaxRate is applied to the subtotal when totals are recomputed.
const TaxRate = 0.10

// Catalog is the read-only product lookup the mutation guards run against.
// Stock checks are only as fresh as the snapshot behind it.
type Catalog interface {
	Lookup(productID int64) (*domain.Product, bool)
}

// Slot persists cart snapshots between sessions.
type Slot interface {
	Load() ([]domain.CartItem, storage.LoadStatus)
	Save(items []domain.CartItem) error
}

// Notifier receives the transient user-facing message emitted after a
// successful mutation. Display duration is the presenter's concern.
type Notifier interface {
	Notify(message string)
}

// ValidationError is a user-visible rejection of a requested mutation. The
// cart is left untouched when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Store owns the cart for one session. It is constructed once and handed to
// every consumer; there are no package-level globals. Mutations either apply
// fully or not at all, and totals are recomputed as part of every mutation so
// subtotal, tax and total can never be stale relative to each other.
type Store struct {
	mu       sync.Mutex
	catalog  Catalog
	slot     Slot
	notifier Notifier
	logger   *log.Logger

	items  []domain.CartItem
	totals domain.CartTotals
}

// New builds an empty Store. notifier may be nil when no presentation is
// attached; logger may be nil.
func New(catalog Catalog, slot Slot, notifier Notifier, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		catalog:  catalog,
		slot:     slot,
		notifier: notifier,
		logger:   logger,
	}
}

// Hydrate restores the cart from the persistence slot. Best effort: a missing
// or corrupt slot yields an empty cart, never an error, so a broken snapshot
// cannot block startup. Recovery from corruption is logged here.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, status := s.slot.Load()
	switch status {
	case storage.StatusRecovered:
		s.logger.Printf("cart: persisted state unreadable, starting empty")
	case storage.StatusLoaded:
		s.logger.Printf("cart: restored %d line(s) from storage", len(items))
	}
	s.items = items
	s.recomputeTotals()
}

// AddItem adds quantity units of a product, merging into the existing line if
// one exists. The unit price is fixed at first insertion and not refreshed by
// later additions. Returns a *ValidationError, with no mutation, when the
// product is unknown, out of stock, or the cumulative quantity would exceed
// the stock snapshot.
func (s *Store) AddItem(productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return validationErrorf("quantity must be positive")
	}

	product, ok := s.catalog.Lookup(productID)
	if !ok {
		return validationErrorf("product %d not found", productID)
	}
	if product.Stock <= 0 {
		return validationErrorf("%q is out of stock", product.Name)
	}

	idx := s.indexOf(productID)
	existing := 0
	if idx >= 0 {
		existing = s.items[idx].Quantity
	}
	if existing+quantity > product.Stock {
		return validationErrorf("only %d unit(s) of %q available", product.Stock, product.Name)
	}

	if idx >= 0 {
		line := &s.items[idx]
		line.Quantity = existing + quantity
		line.LineTotal = line.UnitPrice * float64(line.Quantity)
		line.StockSnapshot = product.Stock
	} else {
		s.items = append(s.items, domain.CartItem{
			ProductID:     product.ID,
			Name:          product.Name,
			UnitPrice:     product.Price,
			Quantity:      quantity,
			LineTotal:     product.Price * float64(quantity),
			Category:      product.Category,
			StockSnapshot: product.Stock,
		})
	}

	s.afterMutation(fmt.Sprintf("%q added to your cart", product.Name))
	return nil
}

// RemoveItem takes one unit off a line, or deletes the line entirely when
// removeCompletely is set or only one unit remains. A quantity never drops
// below one without the whole line going with it.
func (s *Store) RemoveItem(productID int64, removeCompletely bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return validationErrorf("product %d is not in your cart", productID)
	}

	name := s.items[idx].Name
	if removeCompletely || s.items[idx].Quantity == 1 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.afterMutation(fmt.Sprintf("%q removed from your cart", name))
		return nil
	}

	line := &s.items[idx]
	line.Quantity--
	line.LineTotal = line.UnitPrice * float64(line.Quantity)
	s.afterMutation(fmt.Sprintf("removed one %q from your cart", name))
	return nil
}

// Clear empties the cart. Idempotent: when the cart is already empty it does
// nothing at all, skipping persistence and notification.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.afterMutation("cart cleared")
}

// Count returns the sum of line quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Items returns a defensive copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Totals returns the current derived amounts.
func (s *Store) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

func (s *Store) Subtotal() float64 { return s.Totals().Subtotal }
func (s *Store) Tax() float64      { return s.Totals().Tax }
func (s *Store) Total() float64    { return s.Totals().Total }

// afterMutation runs the fixed post-mutation sequence: recompute totals,
// persist, notify. Callers hold s.mu.
func (s *Store) afterMutation(message string) {
	s.recomputeTotals()
	if err := s.slot.Save(s.items); err != nil {
		// In-memory state is authoritative for the session; a failed write
		// is logged and dropped, never surfaced or rolled back.
		s.logger.Printf("cart: persist failed: %v", err)
	}
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
}

// recomputeTotals derives subtotal, tax and total as one unit. Line totals
// are summed at full precision and rounding happens only at the three output
// points. Callers hold s.mu.
func (s *Store) recomputeTotals() {
	var sum float64
	for _, item := range s.items {
		sum += item.LineTotal
	}
	subtotal := money.Round2(sum)
	tax := money.Round2(subtotal * TaxRate)
	s.totals = domain.CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    money.Round2(subtotal + tax),
	}
}

func (s *Store) indexOf(productID int64) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
