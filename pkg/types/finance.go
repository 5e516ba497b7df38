package types

import (
	"fmt"
	"time"
)

// Transaction is a single payment recorded against an account.
type Transaction struct {
	ID       int       `json:"id"`
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
}

func (t Transaction) EntityID() int { return t.ID }

// Validate reports ErrInvalidValue for a non-positive amount or an empty
// category.
func (t Transaction) Validate() error {
	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %.2f: %w", t.Amount, ErrInvalidValue)
	}
	if t.Category == "" {
		return fmt.Errorf("category must not be empty: %w", ErrInvalidValue)
	}
	return nil
}

func (t Transaction) String() string {
	return fmt.Sprintf("ID: %d, Date: %s, Category: %s, Amount: $%.2f",
		t.ID, t.Date.Format("2006-01-02 15:04:05"), t.Category, t.Amount)
}

// Account is a savings account that transactions are applied to.
type Account struct {
	ID      int     `json:"id"`
	Number  string  `json:"number"`
	Balance float64 `json:"balance"`
}

func (a Account) EntityID() int { return a.ID }

// Validate reports ErrInvalidValue for an empty account number or a negative
// balance.
func (a Account) Validate() error {
	if a.Number == "" {
		return fmt.Errorf("account number must not be empty: %w", ErrInvalidValue)
	}
	if a.Balance < 0 {
		return fmt.Errorf("balance cannot be negative, got %.2f: %w", a.Balance, ErrInvalidValue)
	}
	return nil
}
