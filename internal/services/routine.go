package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/api/validate"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/filter"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/timeline"
)

// RoutineService validates candidates and forwards them to the store.
type RoutineService struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewRoutineService(s store.Store, log zerolog.Logger) *RoutineService {
	return &RoutineService{store: s, log: log, now: time.Now}
}

// WithClock replaces the wall clock used by Timeline.
func (s *RoutineService) WithClock(now func() time.Time) *RoutineService {
	s.now = now
	return s
}

func (s *RoutineService) List(ctx context.Context, c filter.Criteria) ([]model.Routine, error) {
	rs, err := s.store.Routines().List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(rs, c), nil
}

func (s *RoutineService) Get(ctx context.Context, id string) (model.Routine, error) {
	return s.store.Routines().Get(ctx, id)
}

// Create validates a full candidate and persists it.
func (s *RoutineService) Create(ctx context.Context, in model.RoutineInput) (model.Routine, error) {
	if errs := validate.Strict(in); len(errs) > 0 {
		return model.Routine{}, model.NewValidationError(errs)
	}
	r, err := s.store.Routines().Create(ctx, in.Routine())
	if err != nil {
		return model.Routine{}, err
	}
	s.log.Info().Str("routine_id", r.ID).Str("name", r.Name).Msg("routine created")
	return r, nil
}

// Update validates the present fields, then the merged record, before storing.
func (s *RoutineService) Update(ctx context.Context, id string, in model.RoutineInput) (model.Routine, error) {
	if errs := validate.Partial(in); len(errs) > 0 {
		return model.Routine{}, model.NewValidationError(errs)
	}
	existing, err := s.store.Routines().Get(ctx, id)
	if err != nil {
		return model.Routine{}, err
	}
	if errs := validate.Routine(in.ApplyTo(existing)); len(errs) > 0 {
		return model.Routine{}, model.NewValidationError(errs)
	}
	r, err := s.store.Routines().Update(ctx, id, in)
	if err != nil {
		return model.Routine{}, err
	}
	s.log.Info().Str("routine_id", id).Msg("routine updated")
	return r, nil
}

func (s *RoutineService) UpdateStatus(ctx context.Context, id string, in validate.StatusInput) (model.Routine, error) {
	if errs := validate.Status(in); len(errs) > 0 {
		return model.Routine{}, model.NewValidationError(errs)
	}
	r, err := s.store.Routines().UpdateStatus(ctx, id, *in.IsActive)
	if err != nil {
		return model.Routine{}, err
	}
	s.log.Info().Str("routine_id", id).Bool("is_active", r.IsActive).Msg("routine status updated")
	return r, nil
}

func (s *RoutineService) Delete(ctx context.Context, id string) error {
	if err := s.store.Routines().Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("routine_id", id).Msg("routine deleted")
	return nil
}

// Stats returns the dashboard counters over every stored routine.
func (s *RoutineService) Stats(ctx context.Context) (model.Stats, error) {
	rs, err := s.store.Routines().List(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	return model.ComputeStats(rs), nil
}

// Timeline lays out the filtered routine set at the current instant.
func (s *RoutineService) Timeline(ctx context.Context, c filter.Criteria) (timeline.Chart, error) {
	rs, err := s.List(ctx, c)
	if err != nil {
		return timeline.Chart{}, err
	}
	return timeline.Layout(rs, s.now()), nil
}
