package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/memory"
)

// listOnly has no HealthPing, so the checker falls back to List.
type listOnly struct {
	routines listRoutines
}

func (l *listOnly) Routines() store.Routines { return &l.routines }

type listRoutines struct {
	store.Routines
	err error
}

func (l *listRoutines) List(context.Context) ([]model.Routine, error) {
	return nil, l.err
}

func TestStoreHealthChecker_Ping(t *testing.T) {
	hc := store.NewStoreHealthChecker(memory.New(), zerolog.Nop(), time.Second)
	assert.False(t, hc.IsHealthy(), "unhealthy until the first probe")
	assert.True(t, hc.Check(context.Background()))
	assert.True(t, hc.IsHealthy())
	assert.Equal(t, "store", hc.Name())
}

func TestStoreHealthChecker_ListFallback(t *testing.T) {
	st := &listOnly{}
	hc := store.NewStoreHealthChecker(st, zerolog.Nop(), time.Second)
	assert.True(t, hc.Check(context.Background()))

	st.routines.err = errors.New("connection reset by peer")
	assert.False(t, hc.Check(context.Background()))
	assert.False(t, hc.IsHealthy())
}

func TestStoreHealthChecker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hc := store.NewStoreHealthChecker(memory.New(), zerolog.Nop(), time.Second)
	assert.False(t, hc.Check(ctx))
}
