package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

func TestFileSlotLoadMissing(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "cart.json"))
	items, status := slot.Load()
	if status != StatusEmpty {
		t.Fatalf("expected StatusEmpty, got %v", status)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestFileSlotLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt slot: %v", err)
	}
	items, status := NewFileSlot(path).Load()
	if status != StatusRecovered {
		t.Fatalf("expected StatusRecovered, got %v", status)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items after recovery, got %d", len(items))
	}
}

func TestFileSlotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cart.json")
	slot := NewFileSlot(path)

	saved := []domain.CartItem{
		{ProductID: 7, Name: "Wool Beanie", UnitPrice: 9.99, Quantity: 3, LineTotal: 29.97, Category: "Accessories", StockSnapshot: 5},
		{ProductID: 2, Name: "Desk Lamp", UnitPrice: 24.50, Quantity: 1, LineTotal: 24.50, Category: "Home Goods", StockSnapshot: 12},
	}
	if err := slot.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	items, status := slot.Load()
	if status != StatusLoaded {
		t.Fatalf("expected StatusLoaded, got %v", status)
	}
	if len(items) != len(saved) {
		t.Fatalf("expected %d items, got %d", len(saved), len(items))
	}
	for i := range saved {
		if items[i] != saved[i] {
			t.Fatalf("item %d mismatch: expected %+v, got %+v", i, saved[i], items[i])
		}
	}
}

func TestFileSlotSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	slot := NewFileSlot(path)
	if err := slot.Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	items, status := slot.Load()
	if status != StatusLoaded || len(items) != 0 {
		t.Fatalf("expected loaded empty cart, got status=%v items=%d", status, len(items))
	}
}
