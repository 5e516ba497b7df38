package types

import (
	"errors"
	"fmt"
)

// Entity is implemented by every record kept in a store. The ID is assigned
// by the caller and must be unique within one store.
type Entity interface {
	EntityID() int
}

// Quantified is an entity with a non-negative stock quantity. WithQuantity
// returns a copy of the entity carrying the new quantity.
type Quantified[T any] interface {
	Entity
	GetQuantity() int
	WithQuantity(quantity int) T
}

// Store operation errors.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidValue = errors.New("invalid value")
	ErrParse        = errors.New("parse error")
	ErrIO           = errors.New("i/o error")
)

// Domain errors.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownKind       = errors.New("unknown item kind")
	ErrUnknownProcessor  = errors.New("unknown payment processor")
)

// Fields reported by ParseError.
const (
	FieldCount    = "fields"
	FieldID       = "id"
	FieldName     = "name"
	FieldScore    = "score"
	FieldQuantity = "quantity"
	FieldRecord   = "record"
)

// ParseError describes a malformed persisted record. Line is 1-based.
type ParseError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("line %d: invalid %s: %s", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("line %d: invalid %s %q: %s", e.Line, e.Field, e.Value, e.Reason)
}

// Unwrap lets callers match any ParseError with errors.Is(err, ErrParse).
func (e *ParseError) Unwrap() error {
	return ErrParse
}
