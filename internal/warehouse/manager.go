// Package warehouse manages electronic and grocery stock in two separate
// stores with their own ID sequences.
package warehouse

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/registers/internal/persist"
	"github.com/mesh-intelligence/registers/pkg/store"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// Item kinds accepted by UpdateQuantity and Remove.
const (
	KindElectronic = "electronic"
	KindGrocery    = "grocery"
)

// Backends holds the persistence backend of each item kind.
type Backends struct {
	Electronics persist.Backend[types.ElectronicItem]
	Groceries   persist.Backend[types.GroceryItem]
}

// Manager owns the electronics and groceries stores.
type Manager struct {
	electronics    *store.Store[types.ElectronicItem]
	groceries      *store.Store[types.GroceryItem]
	backends       Backends
	nextElectronic int
	nextGrocery    int
}

// NewManager returns an empty manager.
func NewManager(backends Backends) *Manager {
	return &Manager{
		electronics:    store.New[types.ElectronicItem](),
		groceries:      store.New[types.GroceryItem](),
		backends:       backends,
		nextElectronic: 1,
		nextGrocery:    1,
	}
}

// AddElectronic adds an electronic item with the next electronic ID.
func (m *Manager) AddElectronic(name string, quantity int, brand string, warrantyMonths int) (types.ElectronicItem, error) {
	item := types.ElectronicItem{
		ID:             m.nextElectronic,
		Name:           name,
		Quantity:       quantity,
		Brand:          brand,
		WarrantyMonths: warrantyMonths,
	}
	if err := m.electronics.Add(item); err != nil {
		return types.ElectronicItem{}, fmt.Errorf("adding electronic item: %w", err)
	}
	m.nextElectronic++
	return item, nil
}

// AddGrocery adds a grocery item expiring daysUntilExpiry days after now.
// daysUntilExpiry must be at least 1.
func (m *Manager) AddGrocery(name string, quantity, daysUntilExpiry int, now time.Time) (types.GroceryItem, error) {
	if daysUntilExpiry < 1 {
		return types.GroceryItem{}, fmt.Errorf("days until expiry must be at least 1, got %d: %w", daysUntilExpiry, types.ErrInvalidValue)
	}
	item := types.GroceryItem{
		ID:         m.nextGrocery,
		Name:       name,
		Quantity:   quantity,
		ExpiryDate: now.AddDate(0, 0, daysUntilExpiry),
	}
	if err := m.groceries.Add(item); err != nil {
		return types.GroceryItem{}, fmt.Errorf("adding grocery item: %w", err)
	}
	m.nextGrocery++
	return item, nil
}

// UpdateQuantity sets the quantity of the item of the given kind.
func (m *Manager) UpdateQuantity(kind string, id, quantity int) error {
	switch kind {
	case KindElectronic:
		return store.UpdateQuantity(m.electronics, id, quantity)
	case KindGrocery:
		return store.UpdateQuantity(m.groceries, id, quantity)
	default:
		return fmt.Errorf("%q: %w", kind, types.ErrUnknownKind)
	}
}

// Remove deletes the item of the given kind.
func (m *Manager) Remove(kind string, id int) error {
	switch kind {
	case KindElectronic:
		return m.electronics.Remove(id)
	case KindGrocery:
		return m.groceries.Remove(id)
	default:
		return fmt.Errorf("%q: %w", kind, types.ErrUnknownKind)
	}
}

// Electronic returns the electronic item with the given ID.
func (m *Manager) Electronic(id int) (types.ElectronicItem, error) {
	return m.electronics.Get(id)
}

// Grocery returns the grocery item with the given ID.
func (m *Manager) Grocery(id int) (types.GroceryItem, error) {
	return m.groceries.Get(id)
}

// Electronics returns all electronic items sorted by ID.
func (m *Manager) Electronics() []types.ElectronicItem {
	return m.electronics.List()
}

// Groceries returns all grocery items sorted by ID.
func (m *Manager) Groceries() []types.GroceryItem {
	return m.groceries.List()
}

// Save writes both stores.
func (m *Manager) Save() error {
	if err := persist.SaveStore(m.electronics, m.backends.Electronics); err != nil {
		return fmt.Errorf("saving electronics: %w", err)
	}
	if err := persist.SaveStore(m.groceries, m.backends.Groceries); err != nil {
		return fmt.Errorf("saving groceries: %w", err)
	}
	return nil
}

// Load replaces both stores and advances the ID sequences past the loaded
// IDs.
func (m *Manager) Load() error {
	if err := persist.LoadStore(m.electronics, m.backends.Electronics); err != nil {
		return fmt.Errorf("loading electronics: %w", err)
	}
	if err := persist.LoadStore(m.groceries, m.backends.Groceries); err != nil {
		return fmt.Errorf("loading groceries: %w", err)
	}
	m.nextElectronic = m.electronics.MaxID() + 1
	m.nextGrocery = m.groceries.MaxID() + 1
	return nil
}
