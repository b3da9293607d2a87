// Package memory is the process-local store used when no database is configured.
// Its contents are lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store"
)

type entry struct {
	seq     uint64
	routine model.Routine
}

type memStore struct {
	mu      sync.RWMutex
	nextSeq uint64
	byID    map[string]*entry
}

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{byID: make(map[string]*entry)}
}

// NewSeeded returns an in-memory store pre-populated with SeedRoutines.
func NewSeeded(ctx context.Context) (store.Store, error) {
	s := New()
	seeds, err := SeedRoutines()
	if err != nil {
		return nil, err
	}
	for _, r := range seeds {
		if _, err := s.Routines().Create(ctx, r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *memStore) Routines() store.Routines { return s }

// HealthPing implements health.HealthPinger; the map is always reachable.
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

func (s *memStore) List(ctx context.Context) ([]model.Routine, error) {
	s.mu.RLock()
	entries := make([]entry, 0, len(s.byID))
	for _, e := range s.byID {
		entries = append(entries, entry{seq: e.seq, routine: e.routine.Clone()})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.routine.StartTime != b.routine.StartTime {
			return a.routine.StartTime < b.routine.StartTime
		}
		return a.seq < b.seq
	})
	out := make([]model.Routine, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.routine)
	}
	return out, nil
}

func (s *memStore) Get(ctx context.Context, id string) (model.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return model.Routine{}, model.ErrNotFound
	}
	return e.routine.Clone(), nil
}

func (s *memStore) Create(ctx context.Context, r model.Routine) (model.Routine, error) {
	r = r.Clone()
	r.ID = uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.byID[r.ID] = &entry{seq: s.nextSeq, routine: r}
	return r.Clone(), nil
}

func (s *memStore) Update(ctx context.Context, id string, patch model.RoutineInput) (model.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return model.Routine{}, model.ErrNotFound
	}
	e.routine = patch.ApplyTo(e.routine)
	e.routine.ID = id
	return e.routine.Clone(), nil
}

func (s *memStore) UpdateStatus(ctx context.Context, id string, isActive bool) (model.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return model.Routine{}, model.ErrNotFound
	}
	e.routine.IsActive = isActive
	return e.routine.Clone(), nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
