package sqlite

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// ErrClosed is returned by operations on a closed DB.
var ErrClosed = errors.New("database is closed")

// Table persists snapshots of one kind. It satisfies persist.Backend.
type Table[T types.Entity] struct {
	db   *DB
	kind string
}

// NewTable returns the snapshot table for kind.
func NewTable[T types.Entity](db *DB, kind string) *Table[T] {
	return &Table[T]{db: db, kind: kind}
}

// Save replaces every row of the kind with items inside one transaction.
func (t *Table[T]) Save(items []T) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	if t.db.db == nil {
		return fmt.Errorf("saving %s: %w: %w", t.kind, types.ErrIO, ErrClosed)
	}

	tx, err := t.db.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w: %w", types.ErrIO, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records WHERE kind = ?", t.kind); err != nil {
		return fmt.Errorf("clearing %s: %w: %w", t.kind, types.ErrIO, err)
	}

	stmt, err := tx.Prepare("INSERT INTO records (kind, id, body, updated_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w: %w", t.kind, types.ErrIO, err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, item := range items {
		body, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encoding %s %d: %w", t.kind, item.EntityID(), err)
		}
		if _, err := stmt.Exec(t.kind, item.EntityID(), string(body), now); err != nil {
			return fmt.Errorf("inserting %s %d: %w: %w", t.kind, item.EntityID(), types.ErrIO, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w: %w", t.kind, types.ErrIO, err)
	}
	t.db.logf("saved %d records to %s (%s)", len(items), t.db.path, t.kind)
	return nil
}

// Load returns every row of the kind ordered by id. A kind with no rows
// loads as empty. A body that does not decode or validate fails with a
// ParseError whose Line is the 1-based row ordinal.
func (t *Table[T]) Load() ([]T, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	if t.db.db == nil {
		return nil, fmt.Errorf("loading %s: %w: %w", t.kind, types.ErrIO, ErrClosed)
	}

	rows, err := t.db.db.Query("SELECT id, body FROM records WHERE kind = ? ORDER BY id", t.kind)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w: %w", t.kind, types.ErrIO, err)
	}
	defer rows.Close()

	var items []T
	row := 0
	for rows.Next() {
		row++
		var id int
		var body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scanning %s: %w: %w", t.kind, types.ErrIO, err)
		}
		var item T
		if err := json.Unmarshal([]byte(body), &item); err != nil {
			return nil, &types.ParseError{Line: row, Field: types.FieldRecord, Value: fmt.Sprint(id), Reason: err.Error()}
		}
		if item.EntityID() != id {
			return nil, &types.ParseError{
				Line:   row,
				Field:  types.FieldID,
				Value:  fmt.Sprint(item.EntityID()),
				Reason: fmt.Sprintf("body id does not match row id %d", id),
			}
		}
		if err := validate(item); err != nil {
			return nil, &types.ParseError{Line: row, Field: types.FieldRecord, Value: fmt.Sprint(id), Reason: err.Error()}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", t.kind, types.ErrIO, err)
	}
	t.db.logf("loaded %d records from %s (%s)", len(items), t.db.path, t.kind)
	return items, nil
}

type validator interface {
	Validate() error
}

func validate(item any) error {
	if v, ok := item.(validator); ok {
		return v.Validate()
	}
	return nil
}
