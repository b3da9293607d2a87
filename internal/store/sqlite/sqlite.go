package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/sqlstore"
)

// Dialect is the SQLite flavour of the routines schema.
var Dialect = sqlstore.Dialect{
	Name:           "sqlite",
	StartTimeOrder: "start_time",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS routines (
            seq             INTEGER PRIMARY KEY AUTOINCREMENT,
            id              TEXT NOT NULL UNIQUE,
            name            TEXT NOT NULL CHECK (length(name) >= 1),
            description     TEXT,
            frequency_type  TEXT NOT NULL CHECK (frequency_type IN ('second', 'minute', 'hour')),
            frequency_value INTEGER NOT NULL CHECK (frequency_value >= 1),
            start_time      TEXT NOT NULL,
            duration        INTEGER NOT NULL CHECK (duration >= 1),
            duration_unit   TEXT NOT NULL CHECK (duration_unit IN ('second', 'minute', 'hour')),
            is_active       BOOLEAN NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS routines_start_time_idx ON routines (start_time, seq)`,
	},
}

// PathFromURL extracts a file path from "sqlite://", "sqlite:" or "file:" URLs.
// Anything else is treated as a plain path.
func PathFromURL(u string) string {
	for _, p := range []string{"sqlite://", "sqlite:", "file:"} {
		if strings.HasPrefix(u, p) {
			u = strings.TrimPrefix(u, p)
			break
		}
	}
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return u
}

// Open opens (or creates) a SQLite database at the given path and enables WAL journal mode.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single writer connection avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a SQLite store over an open connection.
func NewWithDB(db *sql.DB) *sqlstore.Store { return sqlstore.New(db, Dialect) }

// Bootstrap opens the database at path, ensures the routines table exists and returns the store.
func Bootstrap(ctx context.Context, path string) (*sqlstore.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	st := NewWithDB(db)
	if err := st.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}
