// Package store provides a generic in-memory entity store keyed by the
// caller-assigned integer ID of each entity.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// validator is implemented by entities that carry field invariants. Add,
// Update and Replace reject entities whose Validate returns an error.
type validator interface {
	Validate() error
}

// Store holds a keyed collection of homogeneous entities.
type Store[T types.Entity] struct {
	mu    sync.RWMutex
	items map[int]T
}

// New creates an empty store.
func New[T types.Entity]() *Store[T] {
	return &Store[T]{items: make(map[int]T)}
}

// Add inserts entity. Returns ErrDuplicateKey if an entity with the same ID
// is already stored, or the entity's validation error.
func (s *Store[T]) Add(entity T) error {
	if err := validate(entity); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.EntityID()
	if _, ok := s.items[id]; ok {
		return fmt.Errorf("entity with id %d already exists: %w", id, types.ErrDuplicateKey)
	}
	s.items[id] = entity
	return nil
}

// Get returns the entity with the given ID or ErrNotFound.
func (s *Store[T]) Get(id int) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("entity with id %d: %w", id, types.ErrNotFound)
	}
	return entity, nil
}

// Find returns the first entity, in ID order, for which match returns true.
// Returns ErrNotFound when nothing matches.
func (s *Store[T]) Find(match func(T) bool) (T, error) {
	for _, entity := range s.List() {
		if match(entity) {
			return entity, nil
		}
	}
	var zero T
	return zero, types.ErrNotFound
}

// Update replaces the entity with the given ID by the result of mutate.
// The stored value is unchanged when mutate or validation fails. The mutated
// entity must keep its ID.
func (s *Store[T]) Update(id int, mutate func(T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return fmt.Errorf("entity with id %d: %w", id, types.ErrNotFound)
	}
	next, err := mutate(current)
	if err != nil {
		return err
	}
	if next.EntityID() != id {
		return fmt.Errorf("update changed id %d to %d: %w", id, next.EntityID(), types.ErrInvalidValue)
	}
	if err := validate(next); err != nil {
		return err
	}
	s.items[id] = next
	return nil
}

// Remove deletes the entity with the given ID or returns ErrNotFound.
func (s *Store[T]) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("entity with id %d: %w", id, types.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

// List returns a snapshot of all entities sorted by ID.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, entity := range s.items {
		result = append(result, entity)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EntityID() < result[j].EntityID()
	})
	return result
}

// Len returns the number of stored entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// MaxID returns the largest stored ID, or 0 when the store is empty.
func (s *Store[T]) MaxID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxID := 0
	for id := range s.items {
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}

// Clear removes every entity.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[int]T)
}

// Replace swaps the whole contents for entities. If entities contain a
// duplicate ID or an invalid entity, the store is left unchanged.
func (s *Store[T]) Replace(entities []T) error {
	next := make(map[int]T, len(entities))
	for _, entity := range entities {
		if err := validate(entity); err != nil {
			return err
		}
		id := entity.EntityID()
		if _, ok := next[id]; ok {
			return fmt.Errorf("entity with id %d appears twice: %w", id, types.ErrDuplicateKey)
		}
		next[id] = entity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = next
	return nil
}

// UpdateQuantity sets the quantity of the entity with the given ID. A
// negative quantity fails with ErrInvalidValue before the lookup, so the
// stored value is never touched.
func UpdateQuantity[T types.Quantified[T]](s *Store[T], id, quantity int) error {
	if err := types.ValidateQuantity(quantity); err != nil {
		return err
	}
	return s.Update(id, func(current T) (T, error) {
		return current.WithQuantity(quantity), nil
	})
}

func validate(entity any) error {
	if v, ok := entity.(validator); ok {
		return v.Validate()
	}
	return nil
}
