// Package inventory keeps a log of inventory items that is saved to and
// loaded from a data file as one snapshot.
package inventory

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/registers/internal/persist"
	"github.com/mesh-intelligence/registers/pkg/store"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// Log holds inventory items and assigns their IDs.
type Log struct {
	items   *store.Store[types.InventoryItem]
	backend persist.Backend[types.InventoryItem]
	nextID  int
}

// NewLog returns an empty log persisted through backend.
func NewLog(backend persist.Backend[types.InventoryItem]) *Log {
	return &Log{
		items:   store.New[types.InventoryItem](),
		backend: backend,
		nextID:  1,
	}
}

// Add records a new item with the next free ID.
func (l *Log) Add(name string, quantity int, now time.Time) (types.InventoryItem, error) {
	item := types.InventoryItem{
		ID:        l.nextID,
		Name:      name,
		Quantity:  quantity,
		DateAdded: now,
	}
	if err := l.items.Add(item); err != nil {
		return types.InventoryItem{}, fmt.Errorf("adding item: %w", err)
	}
	l.nextID++
	return item, nil
}

// Get returns the item with the given ID.
func (l *Log) Get(id int) (types.InventoryItem, error) {
	return l.items.Get(id)
}

// UpdateQuantity sets the quantity of an item.
func (l *Log) UpdateQuantity(id, quantity int) error {
	return store.UpdateQuantity(l.items, id, quantity)
}

// Remove deletes an item.
func (l *Log) Remove(id int) error {
	return l.items.Remove(id)
}

// All returns the items sorted by ID.
func (l *Log) All() []types.InventoryItem {
	return l.items.List()
}

// Clear empties the log and restarts IDs at 1. The data file is untouched.
func (l *Log) Clear() {
	l.items.Clear()
	l.nextID = 1
}

// Save writes the log snapshot through the backend.
func (l *Log) Save() error {
	return persist.SaveStore(l.items, l.backend)
}

// Load replaces the log with the backend snapshot and moves the next ID past
// the largest loaded ID.
func (l *Log) Load() error {
	if err := persist.LoadStore(l.items, l.backend); err != nil {
		return err
	}
	l.nextID = l.items.MaxID() + 1
	return nil
}
