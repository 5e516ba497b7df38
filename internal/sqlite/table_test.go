package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registers/internal/persist"
	"github.com/mesh-intelligence/registers/pkg/store"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// Compile-time check: Table is a persist backend.
var _ persist.Backend[types.Student] = (*Table[types.Student])(nil)

// setupDB opens a database in a temp dir and closes it on cleanup.
func setupDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTableRoundTrip(t *testing.T) {
	db := setupDB(t)
	table := NewTable[types.GroceryItem](db, types.KindGroceries)

	expiry := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	original := store.New[types.GroceryItem]()
	require.NoError(t, original.Add(types.GroceryItem{ID: 2, Name: "Milk", Quantity: 4, ExpiryDate: expiry}))
	require.NoError(t, original.Add(types.GroceryItem{ID: 1, Name: "Bread", Quantity: 10, ExpiryDate: expiry}))

	require.NoError(t, persist.SaveStore(original, table))

	fresh := store.New[types.GroceryItem]()
	require.NoError(t, persist.LoadStore(fresh, table))
	assert.Equal(t, original.List(), fresh.List())
}

func TestTableLoadEmptyKind(t *testing.T) {
	db := setupDB(t)
	items, err := NewTable[types.Student](db, types.KindStudents).Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTableSaveReplacesKindOnly(t *testing.T) {
	db := setupDB(t)
	students := NewTable[types.Student](db, types.KindStudents)
	patients := NewTable[types.Patient](db, types.KindPatients)

	require.NoError(t, patients.Save([]types.Patient{{ID: 1, Name: "Ann", Age: 30, Gender: "Female"}}))
	require.NoError(t, students.Save([]types.Student{{ID: 1, FullName: "Alice", Score: 95}, {ID: 2, FullName: "Bob", Score: 60}}))
	require.NoError(t, students.Save([]types.Student{{ID: 3, FullName: "Cara", Score: 70}}))

	got, err := students.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	ps, err := patients.Load()
	require.NoError(t, err)
	assert.Len(t, ps, 1)

	kinds, err := db.Kinds()
	require.NoError(t, err)
	assert.Equal(t, []string{types.KindPatients, types.KindStudents}, kinds)
}

func TestTablePersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, NewTable[types.Student](db, types.KindStudents).Save([]types.Student{{ID: 1, FullName: "Alice", Score: 95}}))
	require.NoError(t, db.Close())

	db, err = Open(dir, nil)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewTable[types.Student](db, types.KindStudents).Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Student{{ID: 1, FullName: "Alice", Score: 95}}, got)
}

func TestTableMalformedBody(t *testing.T) {
	db := setupDB(t)
	_, err := db.db.Exec("INSERT INTO records (kind, id, body, updated_at) VALUES (?, ?, ?, ?)",
		types.KindStudents, 4, "{not json", "2026-01-01T00:00:00Z")
	require.NoError(t, err)

	_, err = NewTable[types.Student](db, types.KindStudents).Load()
	require.ErrorIs(t, err, types.ErrParse)
	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, "4", pe.Value)
}

func TestTableMismatchedID(t *testing.T) {
	db := setupDB(t)
	_, err := db.db.Exec("INSERT INTO records (kind, id, body, updated_at) VALUES (?, ?, ?, ?)",
		types.KindStudents, 4, `{"id": 5, "full_name": "Eve", "score": 50}`, "2026-01-01T00:00:00Z")
	require.NoError(t, err)

	_, err = NewTable[types.Student](db, types.KindStudents).Load()
	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.FieldID, pe.Field)
}

func TestTableInvalidRecord(t *testing.T) {
	db := setupDB(t)
	_, err := db.db.Exec("INSERT INTO records (kind, id, body, updated_at) VALUES (?, ?, ?, ?)",
		types.KindInventory, 1, `{"id": 1, "name": "Bolts", "quantity": -5}`, "2026-01-01T00:00:00Z")
	require.NoError(t, err)

	s := store.New[types.InventoryItem]()
	err = persist.LoadStore(s, NewTable[types.InventoryItem](db, types.KindInventory))
	require.ErrorIs(t, err, types.ErrParse)
	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, types.FieldRecord, pe.Field)
	assert.Equal(t, "1", pe.Value)
	assert.Contains(t, pe.Reason, "negative")
	assert.Zero(t, s.Len())
}

func TestClosedDB(t *testing.T) {
	db, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NoError(t, db.Close(), "close is idempotent")

	table := NewTable[types.Student](db, types.KindStudents)
	assert.ErrorIs(t, table.Save(nil), types.ErrIO)
	_, err = table.Load()
	assert.ErrorIs(t, err, ErrClosed)
}
