// Package storetest holds the compliance suite every store driver must pass.
package storetest

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store"
)

// Run exercises the routine contract against a store.Store implementation.
// makeStore must return a clean, isolated, empty store on every call.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("CreateThenGet", func(t *testing.T) { testCreateThenGet(t, makeStore(t)) })
	t.Run("MissingIDs", func(t *testing.T) { testMissingIDs(t, makeStore(t)) })
	t.Run("ListOrder", func(t *testing.T) { testListOrder(t, makeStore(t)) })
	t.Run("PartialUpdate", func(t *testing.T) { testPartialUpdate(t, makeStore(t)) })
	t.Run("StatusIdempotent", func(t *testing.T) { testStatusIdempotent(t, makeStore(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, makeStore(t)) })
}

func strPtr(s string) *string { return &s }

// Sample returns a valid routine without an id.
func Sample(name, start string) model.Routine {
	return model.Routine{
		Name:           name,
		Description:    strPtr(name + " description"),
		FrequencyType:  model.UnitMinute,
		FrequencyValue: 5,
		StartTime:      start,
		Duration:       30,
		DurationUnit:   model.UnitMinute,
		IsActive:       true,
	}
}

func testCreateThenGet(t *testing.T, s store.Store) {
	ctx := context.Background()
	cases := []model.Routine{
		Sample("with-description", "10:00"),
		{
			Name:           "no-description",
			FrequencyType:  model.UnitSecond,
			FrequencyValue: 30,
			StartTime:      "0:15",
			Duration:       5,
			DurationUnit:   model.UnitSecond,
			IsActive:       false,
		},
	}
	seen := map[string]bool{}
	for _, want := range cases {
		created, err := s.Routines().Create(ctx, want)
		if err != nil {
			t.Fatalf("Create %s: %v", want.Name, err)
		}
		if created.ID == "" {
			t.Fatalf("Create %s: empty id", want.Name)
		}
		if seen[created.ID] {
			t.Fatalf("Create %s: duplicate id %s", want.Name, created.ID)
		}
		seen[created.ID] = true

		got, err := s.Routines().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get %s: %v", created.ID, err)
		}
		want.ID = created.ID
		assertRoutine(t, want, got)
		assertRoutine(t, want, created)
	}
}

func testMissingIDs(t *testing.T, s store.Store) {
	ctx := context.Background()
	if _, err := s.Routines().Create(ctx, Sample("existing", "08:00")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before, err := s.Routines().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	for _, id := range []string{uuid.New().String(), "not-a-uuid", ""} {
		if _, err := s.Routines().Get(ctx, id); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("Get(%q): want ErrNotFound, got %v", id, err)
		}
		name := "changed"
		if _, err := s.Routines().Update(ctx, id, model.RoutineInput{Name: &name}); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("Update(%q): want ErrNotFound, got %v", id, err)
		}
		if _, err := s.Routines().UpdateStatus(ctx, id, false); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("UpdateStatus(%q): want ErrNotFound, got %v", id, err)
		}
		if err := s.Routines().Delete(ctx, id); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("Delete(%q): want ErrNotFound, got %v", id, err)
		}
	}

	after, err := s.Routines().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("missing-id operations mutated the store: before=%d after=%d", len(before), len(after))
	}
	for i := range before {
		assertRoutine(t, before[i], after[i])
	}
}

func testListOrder(t *testing.T, s store.Store) {
	ctx := context.Background()
	starts := []string{"12:00", "02:00", "09:00", "02:00", "00:00", "23:59"}
	var ids []string
	for i, st := range starts {
		r, err := s.Routines().Create(ctx, Sample("r"+string(rune('a'+i)), st))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, r.ID)
	}
	lst, err := s.Routines().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lst) != len(starts) {
		t.Fatalf("List: want %d routines, got %d", len(starts), len(lst))
	}
	if !sort.SliceIsSorted(lst, func(i, j int) bool { return lst[i].StartTime < lst[j].StartTime }) {
		t.Fatalf("List not sorted by startTime: %+v", lst)
	}
	// the two "02:00" routines keep insertion order
	if lst[1].ID != ids[1] || lst[2].ID != ids[3] {
		t.Fatalf("ties not broken by insertion order: got %s,%s want %s,%s", lst[1].ID, lst[2].ID, ids[1], ids[3])
	}
}

func testPartialUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	orig, err := s.Routines().Create(ctx, Sample("before", "06:00"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	name := "after"
	start := "07:30"
	unit := model.UnitHour
	got, err := s.Routines().Update(ctx, orig.ID, model.RoutineInput{Name: &name, StartTime: &start, DurationUnit: &unit})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := orig.Clone()
	want.Name = name
	want.StartTime = start
	want.DurationUnit = unit
	assertRoutine(t, want, got)

	stored, err := s.Routines().Get(ctx, orig.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	assertRoutine(t, want, stored)

	// empty patch leaves the record untouched
	same, err := s.Routines().Update(ctx, orig.ID, model.RoutineInput{})
	if err != nil {
		t.Fatalf("Update empty: %v", err)
	}
	assertRoutine(t, want, same)
}

func testStatusIdempotent(t *testing.T, s store.Store) {
	ctx := context.Background()
	r := Sample("toggle", "05:00")
	r.IsActive = false
	created, err := s.Routines().Create(ctx, r)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	first, err := s.Routines().UpdateStatus(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	second, err := s.Routines().UpdateStatus(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("UpdateStatus twice: %v", err)
	}
	if !first.IsActive || !second.IsActive {
		t.Fatalf("expected active after UpdateStatus(true)")
	}
	assertRoutine(t, first, second)

	want := created.Clone()
	want.IsActive = true
	got, err := s.Routines().Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	assertRoutine(t, want, got)
}

func testDelete(t *testing.T, s store.Store) {
	ctx := context.Background()
	keep, err := s.Routines().Create(ctx, Sample("keep", "01:00"))
	if err != nil {
		t.Fatalf("Create keep: %v", err)
	}
	gone, err := s.Routines().Create(ctx, Sample("gone", "02:00"))
	if err != nil {
		t.Fatalf("Create gone: %v", err)
	}
	if err := s.Routines().Delete(ctx, gone.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Routines().Get(ctx, gone.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get after Delete: want ErrNotFound, got %v", err)
	}
	if err := s.Routines().Delete(ctx, gone.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second Delete: want ErrNotFound, got %v", err)
	}
	lst, err := s.Routines().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lst) != 1 || lst[0].ID != keep.ID {
		t.Fatalf("List after Delete: %+v", lst)
	}

	// ids are never reused
	again, err := s.Routines().Create(ctx, Sample("gone", "02:00"))
	if err != nil {
		t.Fatalf("Create again: %v", err)
	}
	if again.ID == gone.ID {
		t.Fatalf("deleted id %s was reused", gone.ID)
	}
}

func assertRoutine(t *testing.T, want, got model.Routine) {
	t.Helper()
	wd, gd := "<nil>", "<nil>"
	if want.Description != nil {
		wd = *want.Description
	}
	if got.Description != nil {
		gd = *got.Description
	}
	if wd != gd {
		t.Fatalf("description mismatch: want %q got %q", wd, gd)
	}
	want.Description, got.Description = nil, nil
	if want != got {
		t.Fatalf("routine mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}
