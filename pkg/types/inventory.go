package types

import (
	"fmt"
	"time"
)

// InventoryItem is a stock entry recorded by the inventory log.
type InventoryItem struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	DateAdded time.Time `json:"date_added"`
}

func (i InventoryItem) EntityID() int    { return i.ID }
func (i InventoryItem) GetQuantity() int { return i.Quantity }

// WithQuantity returns a copy of the item with the given quantity.
func (i InventoryItem) WithQuantity(quantity int) InventoryItem {
	i.Quantity = quantity
	return i
}

// Validate reports ErrInvalidValue for an empty name or negative quantity.
func (i InventoryItem) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("item name must not be empty: %w", ErrInvalidValue)
	}
	return ValidateQuantity(i.Quantity)
}

func (i InventoryItem) String() string {
	return fmt.Sprintf("ID: %d, Name: %s, Quantity: %d, Added: %s",
		i.ID, i.Name, i.Quantity, i.DateAdded.Format("2006-01-02 15:04:05"))
}

// ValidateQuantity returns ErrInvalidValue when quantity is negative.
func ValidateQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity cannot be negative, received %d: %w", quantity, ErrInvalidValue)
	}
	return nil
}
