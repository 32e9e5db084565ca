// Package storage persists the cart to a single named slot on disk so a
// session can be resumed later. Persistence is a convenience, not a
// durability guarantee: the in-memory cart stays the source of truth and a
// failed write never rolls a mutation back.
package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

// LoadStatus tells the caller how a Load resolved, so recovery from a corrupt
// slot can be logged without ever blocking startup.
type LoadStatus int

const (
	// StatusEmpty means no slot existed.
	StatusEmpty LoadStatus = iota
	// StatusLoaded means a well-formed snapshot was read.
	StatusLoaded
	// StatusRecovered means the slot existed but was unreadable or malformed
	// and an empty cart was substituted.
	StatusRecovered
)

func (s LoadStatus) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		return "loaded"
	case StatusRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

type snapshot struct {
	Items     []domain.CartItem `json:"items"`
	Timestamp string            `json:"timestamp"`
}

// FileSlot stores the cart snapshot as JSON at a fixed path.
type FileSlot struct {
	path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Load reads the slot. It never fails: a missing slot yields StatusEmpty and
// a corrupt one yields StatusRecovered, both with a nil item list.
func (s *FileSlot) Load() ([]domain.CartItem, LoadStatus) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, StatusEmpty
		}
		return nil, StatusRecovered
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, StatusRecovered
	}
	return snap.Items, StatusLoaded
}

// Save writes the item list with a fresh timestamp. Best effort: the caller
// logs a returned error and moves on.
func (s *FileSlot) Save(items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(snapshot{
		Items:     items,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}
