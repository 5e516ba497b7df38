package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "registers.db"

// DB wraps the SQLite connection shared by all kind tables.
type DB struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	logger *log.Logger
}

// Open creates dataDir if needed, opens registers.db inside it and applies
// the schema. Failures wrap types.ErrIO.
func Open(dataDir string, logger *log.Logger) (*DB, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w: %w", types.ErrIO, err)
	}

	path := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %w", path, types.ErrIO, err)
	}
	// A single connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w: %w", types.ErrIO, err)
		}
	}

	return &DB{db: db, path: path, logger: logger}, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Close releases the connection. Close is idempotent.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Kinds returns the distinct kinds that have at least one stored record.
func (d *DB) Kinds() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil, ErrClosed
	}
	rows, err := d.db.Query("SELECT DISTINCT kind FROM records ORDER BY kind")
	if err != nil {
		return nil, fmt.Errorf("querying kinds: %w: %w", types.ErrIO, err)
	}
	defer rows.Close()

	var kinds []string
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, fmt.Errorf("scanning kind: %w: %w", types.ErrIO, err)
		}
		kinds = append(kinds, kind)
	}
	return kinds, rows.Err()
}

func (d *DB) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Printf(format, args...)
	}
}
