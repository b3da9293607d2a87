// Package sqlstore implements store.Store over database/sql. The postgres and
// sqlite drivers differ only in their Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store"
)

// Dialect captures the SQL differences between drivers.
type Dialect struct {
	Name string
	// Schema holds the statements that create the routines table if missing.
	Schema []string
	// NumberedParams selects $1-style placeholders instead of ?.
	NumberedParams bool
	// StartTimeOrder is the ORDER BY expression for the start_time column.
	StartTimeOrder string
}

// Store is a relational store.Store.
type Store struct {
	db *sql.DB
	d  Dialect
}

// New wraps an open connection.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

// DB exposes the underlying connection.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Routines() store.Routines { return &routines{s: s} }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the routines table and its index when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.d.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s schema: %w", s.d.Name, err)
		}
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// rebind rewrites ? placeholders for dialects that number their parameters.
func (s *Store) rebind(q string) string {
	if !s.d.NumberedParams {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const columns = `id, name, description, frequency_type, frequency_value, start_time, duration, duration_unit, is_active`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRoutine(row scanner) (model.Routine, error) {
	var r model.Routine
	var desc *string
	var freq, unit string
	if err := row.Scan(&r.ID, &r.Name, &desc, &freq, &r.FrequencyValue, &r.StartTime, &r.Duration, &unit, &r.IsActive); err != nil {
		return model.Routine{}, err
	}
	r.Description = desc
	r.FrequencyType = model.TimeUnit(freq)
	r.DurationUnit = model.TimeUnit(unit)
	return r, nil
}

type routines struct{ s *Store }

func (q *routines) List(ctx context.Context) ([]model.Routine, error) {
	rows, err := q.s.db.QueryContext(ctx, `SELECT `+columns+` FROM routines ORDER BY `+q.s.d.StartTimeOrder+`, seq`)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	res := make([]model.Routine, 0)
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

func (q *routines) Get(ctx context.Context, id string) (model.Routine, error) {
	return q.get(ctx, q.s.db, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (q *routines) get(ctx context.Context, db querier, id string) (model.Routine, error) {
	row := db.QueryRowContext(ctx, q.s.rebind(`SELECT `+columns+` FROM routines WHERE id = ?`), id)
	r, err := scanRoutine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Routine{}, model.ErrNotFound
	}
	if err != nil {
		return model.Routine{}, fmt.Errorf("get routine %s: %w", id, err)
	}
	return r, nil
}

func (q *routines) Create(ctx context.Context, r model.Routine) (model.Routine, error) {
	out := r.Clone()
	out.ID = uuid.New().String()
	_, err := q.s.db.ExecContext(ctx, q.s.rebind(`
        INSERT INTO routines (`+columns+`)
        VALUES (?,?,?,?,?,?,?,?,?)
    `), out.ID, out.Name, out.Description, string(out.FrequencyType), out.FrequencyValue,
		out.StartTime, out.Duration, string(out.DurationUnit), out.IsActive)
	if err != nil {
		return model.Routine{}, fmt.Errorf("create routine: %w", err)
	}
	return out, nil
}

func (q *routines) Update(ctx context.Context, id string, patch model.RoutineInput) (model.Routine, error) {
	var sets []string
	var args []interface{}
	add := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.FrequencyType != nil {
		add("frequency_type", string(*patch.FrequencyType))
	}
	if patch.FrequencyValue != nil {
		add("frequency_value", *patch.FrequencyValue)
	}
	if patch.StartTime != nil {
		add("start_time", *patch.StartTime)
	}
	if patch.Duration != nil {
		add("duration", *patch.Duration)
	}
	if patch.DurationUnit != nil {
		add("duration_unit", string(*patch.DurationUnit))
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if len(sets) == 0 {
		return q.Get(ctx, id)
	}
	return q.updateAndFetch(ctx, id, `UPDATE routines SET `+strings.Join(sets, ", ")+` WHERE id = ?`, append(args, id)...)
}

func (q *routines) UpdateStatus(ctx context.Context, id string, isActive bool) (model.Routine, error) {
	return q.updateAndFetch(ctx, id, `UPDATE routines SET is_active = ? WHERE id = ?`, isActive, id)
}

// updateAndFetch applies an UPDATE and reads the row back in one transaction.
func (q *routines) updateAndFetch(ctx context.Context, id, stmt string, args ...interface{}) (model.Routine, error) {
	tx, err := q.s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Routine{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, q.s.rebind(stmt), args...)
	if err != nil {
		return model.Routine{}, fmt.Errorf("update routine %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Routine{}, fmt.Errorf("update routine %s: %w", id, err)
	}
	if n == 0 {
		return model.Routine{}, model.ErrNotFound
	}
	r, err := q.get(ctx, tx, id)
	if err != nil {
		return model.Routine{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Routine{}, fmt.Errorf("commit update: %w", err)
	}
	return r, nil
}

func (q *routines) Delete(ctx context.Context, id string) error {
	res, err := q.s.db.ExecContext(ctx, q.s.rebind(`DELETE FROM routines WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete routine %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete routine %s: %w", id, err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
