// Package sqlite implements the SQLite snapshot backend for registers.
// Every store kind is a partition of one records table; each row holds the
// JSON body of one entity.
package sqlite

// Schema DDL.
const (
	createRecords = `CREATE TABLE IF NOT EXISTS records (
    kind TEXT NOT NULL,
    id INTEGER NOT NULL,
    body TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (kind, id)
);`

	idxRecordsKind = `CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);`
)

// schemaDDL lists all statements run on Open, in order.
var schemaDDL = []string{
	createRecords,
	idxRecordsKind,
}
