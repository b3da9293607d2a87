package store

import (
	"context"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (memory, postgres, sqlite).
type Store interface {
	Routines() Routines
}

// Routines persists routine records. Missing ids are reported as model.ErrNotFound.
type Routines interface {
	// List returns every routine ordered by startTime, ties by insertion order.
	List(ctx context.Context) ([]model.Routine, error)
	Get(ctx context.Context, id string) (model.Routine, error)
	// Create assigns a fresh id and returns the stored record.
	Create(ctx context.Context, r model.Routine) (model.Routine, error)
	// Update merges the present fields of patch onto the stored record.
	Update(ctx context.Context, id string, patch model.RoutineInput) (model.Routine, error)
	UpdateStatus(ctx context.Context, id string, isActive bool) (model.Routine, error)
	Delete(ctx context.Context, id string) error
}
