package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	name    string
	healthy atomic.Bool
}

func (f *fakeChecker) Name() string                               { return f.name }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) {}

func TestServiceHealthChecker_UnhealthyBeforeFirstEvaluation(t *testing.T) {
	svc := NewServiceHealthChecker(zerolog.Nop())
	assert.False(t, svc.IsHealthy())
	assert.True(t, svc.Evaluate().Healthy, "no dependencies means healthy")
}

func TestServiceHealthChecker_Evaluate(t *testing.T) {
	store := &fakeChecker{name: "store"}
	store.healthy.Store(true)

	clock := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	svc := NewServiceHealthChecker(zerolog.Nop(), store)
	svc.now = func() time.Time { return clock }

	st := svc.Evaluate()
	require.True(t, st.Healthy)
	assert.Equal(t, map[string]bool{"store": true}, st.Components)
	assert.Equal(t, clock, st.Since)

	clock = clock.Add(time.Minute)
	assert.Equal(t, clock.Add(-time.Minute), svc.Evaluate().Since, "Since only moves on a transition")

	store.healthy.Store(false)
	st = svc.Evaluate()
	assert.False(t, st.Healthy)
	assert.False(t, svc.Components()["store"])
	assert.Equal(t, clock, st.Since)
}

func TestServiceHealthChecker_SnapshotIsCopy(t *testing.T) {
	store := &fakeChecker{name: "store"}
	store.healthy.Store(true)
	svc := NewServiceHealthChecker(zerolog.Nop(), store)
	svc.Evaluate()

	snap := svc.Snapshot()
	snap.Components["store"] = false
	assert.True(t, svc.Components()["store"])
}

func TestServiceHealthChecker_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &fakeChecker{name: "store"}
	store.healthy.Store(true)
	svc := NewServiceHealthChecker(zerolog.Nop(), store)
	go svc.Start(ctx, 10*time.Millisecond)

	require.Eventually(t, svc.IsHealthy, time.Second, 5*time.Millisecond)
	store.healthy.Store(false)
	require.Eventually(t, func() bool { return !svc.IsHealthy() }, time.Second, 5*time.Millisecond)
}
