package memory

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/api/validate"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestNewSeeded(t *testing.T) {
	s, err := NewSeeded(context.Background())
	require.NoError(t, err)

	lst, err := s.Routines().List(context.Background())
	require.NoError(t, err)
	require.Len(t, lst, 8)

	assert.True(t, sort.SliceIsSorted(lst, func(i, j int) bool { return lst[i].StartTime < lst[j].StartTime }))
	// both "00:00" seeds keep file order
	assert.Equal(t, "Sync de Dados", lst[0].Name)
	assert.Equal(t, "Health Check", lst[1].Name)
	assert.Equal(t, "Verificacao de Seguranca", lst[7].Name)

	for _, r := range lst {
		assert.Empty(t, validate.Routine(r), "seed %q must be a valid routine", r.Name)
		assert.NotNil(t, r.Description)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	created, err := s.Routines().Create(ctx, storetest.Sample("copy", "03:00"))
	require.NoError(t, err)

	*created.Description = "mutated by caller"
	got, err := s.Routines().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "copy description", *got.Description)
}

func TestMemoryStore_ConcurrentStatusUpdates(t *testing.T) {
	ctx := context.Background()
	s := New()
	created, err := s.Routines().Create(ctx, storetest.Sample("race", "04:00"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(active bool) {
			defer wg.Done()
			_, _ = s.Routines().UpdateStatus(ctx, created.ID, active)
			_, _ = s.Routines().List(ctx)
		}(i%2 == 0)
	}
	wg.Wait()

	lst, err := s.Routines().List(ctx)
	require.NoError(t, err)
	require.Len(t, lst, 1)
}
