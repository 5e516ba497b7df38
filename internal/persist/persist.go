// Package persist saves and loads whole store snapshots to flat files.
// A File pairs a path with a Codec; the codecs cover indented JSON arrays and
// JSON Lines. Writes go through a temp file, fsync and rename.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mesh-intelligence/registers/pkg/store"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// Backend saves and loads a full snapshot of entities.
type Backend[T types.Entity] interface {
	Save(items []T) error
	Load() ([]T, error)
}

// Codec converts a snapshot to and from its on-disk representation. Decode
// returns *types.ParseError for malformed records.
type Codec[T types.Entity] interface {
	Encode(w io.Writer, items []T) error
	Decode(data []byte) ([]T, error)
}

// File persists a snapshot to a single file.
type File[T types.Entity] struct {
	Path   string
	Codec  Codec[T]
	Logger *log.Logger // optional
}

// NewFile returns a File backend for path using codec.
func NewFile[T types.Entity](path string, codec Codec[T], logger *log.Logger) *File[T] {
	return &File[T]{Path: path, Codec: codec, Logger: logger}
}

// Save overwrites the file with items. Failures wrap types.ErrIO.
func (f *File[T]) Save(items []T) error {
	var buf bytes.Buffer
	if err := f.Codec.Encode(&buf, items); err != nil {
		return fmt.Errorf("encoding %s: %w", f.Path, err)
	}
	if err := writeFileAtomic(f.Path, buf.Bytes()); err != nil {
		f.logf("error saving to %s: %v", f.Path, err)
		return fmt.Errorf("saving %s: %w: %w", f.Path, types.ErrIO, err)
	}
	f.logf("saved %d records to %s", len(items), f.Path)
	return nil
}

// Load reads and decodes the file. A missing file yields no items and no
// error.
func (f *File[T]) Load() ([]T, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.logf("no data file at %s", f.Path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w: %w", f.Path, types.ErrIO, err)
	}
	items, err := f.Codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.Path, err)
	}
	f.logf("loaded %d records from %s", len(items), f.Path)
	return items, nil
}

func (f *File[T]) logf(format string, args ...any) {
	if f.Logger != nil {
		f.Logger.Printf(format, args...)
	}
}

// SaveStore writes the current snapshot of s to backend.
func SaveStore[T types.Entity](s *store.Store[T], backend Backend[T]) error {
	return backend.Save(s.List())
}

// LoadStore replaces the contents of s with what backend holds. The store is
// unchanged when loading or replacing fails.
func LoadStore[T types.Entity](s *store.Store[T], backend Backend[T]) error {
	items, err := backend.Load()
	if err != nil {
		return err
	}
	return s.Replace(items)
}
