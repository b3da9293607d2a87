package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/sqlstore"
)

// Dialect is the PostgreSQL flavour of the routines schema.
var Dialect = sqlstore.Dialect{
	Name:           "postgres",
	NumberedParams: true,
	// Byte-wise ordering so "09:00" < "12:00" regardless of the database locale.
	StartTimeOrder: `start_time COLLATE "C"`,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS routines (
            seq             BIGSERIAL NOT NULL,
            id              TEXT PRIMARY KEY,
            name            TEXT NOT NULL CHECK (length(name) >= 1),
            description     TEXT,
            frequency_type  TEXT NOT NULL CHECK (frequency_type IN ('second', 'minute', 'hour')),
            frequency_value INTEGER NOT NULL CHECK (frequency_value >= 1),
            start_time      TEXT NOT NULL,
            duration        INTEGER NOT NULL CHECK (duration >= 1),
            duration_unit   TEXT NOT NULL CHECK (duration_unit IN ('second', 'minute', 'hour')),
            is_active       BOOLEAN NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS routines_start_time_idx ON routines (start_time COLLATE "C", seq)`,
	},
}

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) *sqlstore.Store { return sqlstore.New(db, Dialect) }

// Bootstrap opens dsn, ensures the routines table exists and returns the store.
func Bootstrap(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	db, err := Open(dsn)
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
