package grading

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mesh-intelligence/registers/internal/persist"
	"github.com/mesh-intelligence/registers/pkg/store"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// Roster is the set of students backed by a persistence backend.
type Roster struct {
	students *store.Store[types.Student]
	backend  persist.Backend[types.Student]
}

// NewRoster returns an empty roster persisted through backend.
func NewRoster(backend persist.Backend[types.Student]) *Roster {
	return &Roster{
		students: store.New[types.Student](),
		backend:  backend,
	}
}

// Add registers a student. IDs must be unique and the score in range. The
// name must survive the line format: no commas, no surrounding whitespace.
func (r *Roster) Add(id int, name string, score int) (types.Student, error) {
	if strings.Contains(name, ",") {
		return types.Student{}, fmt.Errorf("student name %q must not contain a comma: %w", name, types.ErrInvalidValue)
	}
	if strings.TrimSpace(name) != name {
		return types.Student{}, fmt.Errorf("student name %q has surrounding whitespace: %w", name, types.ErrInvalidValue)
	}
	s := types.Student{ID: id, FullName: name, Score: score}
	if err := r.students.Add(s); err != nil {
		return types.Student{}, err
	}
	return s, nil
}

// Get returns the student with the given ID.
func (r *Roster) Get(id int) (types.Student, error) {
	return r.students.Get(id)
}

// Remove deletes the student with the given ID.
func (r *Roster) Remove(id int) error {
	return r.students.Remove(id)
}

// All returns the students sorted by ID.
func (r *Roster) All() []types.Student {
	return r.students.List()
}

// Save writes the roster through its backend.
func (r *Roster) Save() error {
	return persist.SaveStore(r.students, r.backend)
}

// Load replaces the roster with the backend contents. A missing file loads
// as an empty roster.
func (r *Roster) Load() error {
	return persist.LoadStore(r.students, r.backend)
}

// Import adds every student read from path. Students whose ID is already on
// the roster are rejected with ErrDuplicateKey and nothing is added.
func (r *Roster) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("importing %s: %w", path, types.ErrNotFound)
		}
		return 0, fmt.Errorf("importing %s: %w: %w", path, types.ErrIO, err)
	}
	incoming, err := ReadStudents(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("importing %s: %w", path, err)
	}

	merged := append(r.students.List(), incoming...)
	if err := r.students.Replace(merged); err != nil {
		return 0, fmt.Errorf("importing %s: %w", path, err)
	}
	return len(incoming), nil
}

// WriteReportFile writes the grade report for the current roster to path.
func (r *Roster) WriteReportFile(path string, now time.Time) error {
	var buf bytes.Buffer
	if err := WriteReport(&buf, r.All(), now); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w: %w", path, types.ErrIO, err)
	}
	return nil
}
