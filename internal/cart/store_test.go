package cart

import (
	"errors"
	"math"
	"testing"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
	"github.com/keons0101/retail-dashboard-app/internal/money"
	"github.com/keons0101/retail-dashboard-app/internal/storage"
)

type fakeCatalog map[int64]domain.Product

func (f fakeCatalog) Lookup(id int64) (*domain.Product, bool) {
	p, ok := f[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

type fakeSlot struct {
	loadItems  []domain.CartItem
	loadStatus storage.LoadStatus
	saveErr    error
	saves      [][]domain.CartItem
}

func (f *fakeSlot) Load() ([]domain.CartItem, storage.LoadStatus) {
	return f.loadItems, f.loadStatus
}

func (f *fakeSlot) Save(items []domain.CartItem) error {
	saved := make([]domain.CartItem, len(items))
	copy(saved, items)
	f.saves = append(f.saves, saved)
	return f.saveErr
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(message string) {
	f.messages = append(f.messages, message)
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		7:  {ID: 7, Name: "Wool Beanie", Price: 9.99, Stock: 5, Category: "Accessories"},
		2:  {ID: 2, Name: "Desk Lamp", Price: 24.50, Stock: 12, Category: "Home Goods"},
		3:  {ID: 3, Name: "Sticker Pack", Price: 3.25, Stock: 40, Category: "Accessories"},
		99: {ID: 99, Name: "Retired Jacket", Price: 80.00, Stock: 0, Category: "Apparel"},
	}
}

func newTestStore(catalog Catalog) (*Store, *fakeSlot, *fakeNotifier) {
	slot := &fakeSlot{}
	notifier := &fakeNotifier{}
	return New(catalog, slot, notifier, nil), slot, notifier
}

func TestAddItemUnknownProduct(t *testing.T) {
	store, slot, notifier := newTestStore(testCatalog())
	err := store.AddItem(12345, 1)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(store.Items()) != 0 || len(slot.saves) != 0 || len(notifier.messages) != 0 {
		t.Fatalf("failed add must have no side effects")
	}
}

func TestAddItemOutOfStock(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	for n := 1; n <= 3; n++ {
		err := store.AddItem(99, n)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("qty %d: expected ValidationError, got %v", n, err)
		}
	}
	if len(store.Items()) != 0 {
		t.Fatalf("expected cart unchanged, got %d items", len(store.Items()))
	}
}

func TestAddItemExceedsStock(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	if err := store.AddItem(7, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := store.AddItem(7, 1)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	items := store.Items()
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected quantity to remain 5, got %+v", items)
	}
}

func TestAddItemCumulativeQuantity(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	if err := store.AddItem(7, 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := store.AddItem(7, 3); err != nil {
		t.Fatalf("second add: %v", err)
	}
	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddItemPriceFixedAtInsertion(t *testing.T) {
	catalog := testCatalog()
	store, _, _ := newTestStore(catalog)
	if err := store.AddItem(7, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Catalog price moves mid-session; the carted line must not.
	p := catalog[7]
	p.Price = 14.99
	catalog[7] = p

	if err := store.AddItem(7, 1); err != nil {
		t.Fatalf("second add: %v", err)
	}
	items := store.Items()
	if items[0].UnitPrice != 9.99 {
		t.Fatalf("expected unit price 9.99, got %v", items[0].UnitPrice)
	}
	if math.Abs(items[0].LineTotal-19.98) > 1e-9 {
		t.Fatalf("expected line total 19.98, got %v", items[0].LineTotal)
	}
}

func TestAddItemScenarioTotals(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	if err := store.AddItem(7, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := store.Items()
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if math.Abs(items[0].LineTotal-29.97) > 1e-9 {
		t.Fatalf("expected line total 29.97, got %v", items[0].LineTotal)
	}
	totals := store.Totals()
	if totals.Subtotal != 29.97 || totals.Tax != 3.00 || totals.Total != 32.97 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestAddItemSideEffects(t *testing.T) {
	store, slot, notifier := newTestStore(testCatalog())
	if err := store.AddItem(2, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(slot.saves) != 1 {
		t.Fatalf("expected one persistence write, got %d", len(slot.saves))
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != `"Desk Lamp" added to your cart` {
		t.Fatalf("unexpected notifications %v", notifier.messages)
	}
}

func TestRemoveItemMissing(t *testing.T) {
	store, slot, _ := newTestStore(testCatalog())
	err := store.RemoveItem(7, false)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(slot.saves) != 0 {
		t.Fatalf("failed remove must not persist")
	}
}

func TestRemoveItemDecrements(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	if err := store.AddItem(2, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.RemoveItem(2, false); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items := store.Items()
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if math.Abs(items[0].LineTotal-49.00) > 1e-9 {
		t.Fatalf("expected line total 49.00, got %v", items[0].LineTotal)
	}
}

func TestRemoveItemQuantityOneDeletesLine(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	if err := store.AddItem(2, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.RemoveItem(2, false); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Fatalf("expected line deleted, got %+v", store.Items())
	}
}

func TestRemoveItemCompletely(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	if err := store.AddItem(2, 4); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.RemoveItem(2, true); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Fatalf("expected line deleted, got %+v", store.Items())
	}
	if total := store.Total(); total != 0 {
		t.Fatalf("expected zero total, got %v", total)
	}
}

func TestClearIdempotent(t *testing.T) {
	store, slot, notifier := newTestStore(testCatalog())
	if err := store.AddItem(7, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	store.Clear()
	savesAfterFirst := len(slot.saves)
	notesAfterFirst := len(notifier.messages)
	if len(store.Items()) != 0 || store.Total() != 0 {
		t.Fatalf("expected empty cart after clear")
	}

	store.Clear()
	if len(slot.saves) != savesAfterFirst || len(notifier.messages) != notesAfterFirst {
		t.Fatalf("second clear must perform no side effects")
	}
}

func TestTotalsInvariantAcrossMutations(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())

	check := func(step string) {
		totals := store.Totals()
		if got := money.Round2(totals.Subtotal * TaxRate); math.Abs(totals.Tax-got) > 1e-9 {
			t.Fatalf("%s: tax %v != round2(subtotal*rate) %v", step, totals.Tax, got)
		}
		if got := money.Round2(totals.Subtotal + totals.Tax); math.Abs(totals.Total-got) > 1e-9 {
			t.Fatalf("%s: total %v != round2(subtotal+tax) %v", step, totals.Total, got)
		}
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"add 7x3", func() error { return store.AddItem(7, 3) }},
		{"add 2x1", func() error { return store.AddItem(2, 1) }},
		{"add 3x6", func() error { return store.AddItem(3, 6) }},
		{"remove 7", func() error { return store.RemoveItem(7, false) }},
		{"remove 2 completely", func() error { return store.RemoveItem(2, true) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		check(step.name)
	}

	store.Clear()
	check("clear")
}

func TestItemsDefensiveCopy(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	if err := store.AddItem(7, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := store.Items()
	items[0].Quantity = 999
	if store.Items()[0].Quantity != 1 {
		t.Fatalf("mutating the snapshot must not affect the store")
	}
}

func TestCount(t *testing.T) {
	store, _, _ := newTestStore(testCatalog())
	if store.Count() != 0 {
		t.Fatalf("expected empty count 0, got %d", store.Count())
	}
	if err := store.AddItem(7, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddItem(2, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if store.Count() != 5 {
		t.Fatalf("expected count 5, got %d", store.Count())
	}
}

func TestHydrateRestoresItems(t *testing.T) {
	slot := &fakeSlot{
		loadItems: []domain.CartItem{
			{ProductID: 7, Name: "Wool Beanie", UnitPrice: 9.99, Quantity: 2, LineTotal: 19.98, Category: "Accessories", StockSnapshot: 5},
		},
		loadStatus: storage.StatusLoaded,
	}
	store := New(testCatalog(), slot, nil, nil)
	store.Hydrate()

	if store.Count() != 2 {
		t.Fatalf("expected count 2 after hydrate, got %d", store.Count())
	}
	totals := store.Totals()
	if math.Abs(totals.Subtotal-19.98) > 1e-9 {
		t.Fatalf("expected subtotal recomputed on hydrate, got %+v", totals)
	}
}

func TestHydrateRecoveredStartsEmpty(t *testing.T) {
	slot := &fakeSlot{loadStatus: storage.StatusRecovered}
	store := New(testCatalog(), slot, nil, nil)
	store.Hydrate()
	if len(store.Items()) != 0 || store.Total() != 0 {
		t.Fatalf("expected empty cart after recovery")
	}
}

func TestPersistFailureDoesNotRollBack(t *testing.T) {
	slot := &fakeSlot{saveErr: errors.New("disk full")}
	store := New(testCatalog(), slot, nil, nil)
	if err := store.AddItem(7, 1); err != nil {
		t.Fatalf("add must succeed despite persistence failure, got %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("in-memory state must survive a failed write")
	}
}
