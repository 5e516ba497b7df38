package types

import (
	"fmt"
	"time"
)

// ElectronicItem is a warehouse item with a brand and warranty.
type ElectronicItem struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	Brand          string `json:"brand"`
	WarrantyMonths int    `json:"warranty_months"`
}

func (e ElectronicItem) EntityID() int    { return e.ID }
func (e ElectronicItem) GetQuantity() int { return e.Quantity }

// WithQuantity returns a copy of the item with the given quantity.
func (e ElectronicItem) WithQuantity(quantity int) ElectronicItem {
	e.Quantity = quantity
	return e
}

// Validate reports ErrInvalidValue for missing names, negative quantity or a
// negative warranty.
func (e ElectronicItem) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("item name must not be empty: %w", ErrInvalidValue)
	}
	if e.Brand == "" {
		return fmt.Errorf("brand must not be empty: %w", ErrInvalidValue)
	}
	if e.WarrantyMonths < 0 {
		return fmt.Errorf("warranty cannot be negative, received %d: %w", e.WarrantyMonths, ErrInvalidValue)
	}
	return ValidateQuantity(e.Quantity)
}

func (e ElectronicItem) String() string {
	return fmt.Sprintf("ID: %d, Name: %s, Brand: %s, Quantity: %d, Warranty: %d months",
		e.ID, e.Name, e.Brand, e.Quantity, e.WarrantyMonths)
}

// GroceryItem is a perishable warehouse item.
type GroceryItem struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	ExpiryDate time.Time `json:"expiry_date"`
}

func (g GroceryItem) EntityID() int    { return g.ID }
func (g GroceryItem) GetQuantity() int { return g.Quantity }

// WithQuantity returns a copy of the item with the given quantity.
func (g GroceryItem) WithQuantity(quantity int) GroceryItem {
	g.Quantity = quantity
	return g
}

// Validate reports ErrInvalidValue for an empty name or negative quantity.
func (g GroceryItem) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("item name must not be empty: %w", ErrInvalidValue)
	}
	return ValidateQuantity(g.Quantity)
}

func (g GroceryItem) String() string {
	return fmt.Sprintf("ID: %d, Name: %s, Quantity: %d, Expires: %s",
		g.ID, g.Name, g.Quantity, g.ExpiryDate.Format("2006-01-02"))
}
