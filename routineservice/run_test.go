package routineservice

import (
	"context"
	"net/http"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/client"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/config"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/memory"
)

func TestCalculateStartupHealthTimeout(t *testing.T) {
	assert.Equal(t, 60, calculateStartupHealthTimeout(1))
	assert.Equal(t, 60, calculateStartupHealthTimeout(30))
	assert.Equal(t, 120, calculateStartupHealthTimeout(60))
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st, err := memory.NewSeeded(ctx)
	require.NoError(t, err)
	svcHealth := startHealthCheckers(ctx, cfg, zerolog.Nop(), st)

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()
	require.NoError(t, waitUntilHealthy(waitCtx, cfg, svcHealth))

	srv := httptest.NewServer(buildRouter(st, svcHealth, cfg, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_HealthAndRoutines(t *testing.T) {
	srv := newTestServer(t, config.NewForTesting())

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/routines")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.MetricsEnabled = true
	srv := newTestServer(t, cfg)

	resp, err := http.Get(srv.URL + "/api/routines/stats")
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `routines_http_requests_total{method="GET",path="/api/routines/stats",status="200"}`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	srv := newTestServer(t, config.NewForTesting())
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	srv := newTestServer(t, cfg)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		resp, err := http.Get(srv.URL + "/api/routines")
		require.NoError(t, err)
		_ = resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_APIPaths(t *testing.T) {
	srv := newTestServer(t, config.NewForTesting())

	for _, tc := range []struct {
		path string
		code int
	}{
		{"/api/routines", http.StatusOK},
		{"/api/routines/stats", http.StatusOK},
		{"/api/timeline", http.StatusOK},
		{"/api/health", http.StatusOK},
		{"/api/api/routines", http.StatusNotFound},
		{"/routines", http.StatusNotFound},
	} {
		resp, err := http.Get(srv.URL + tc.path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, tc.code, resp.StatusCode, tc.path)
	}
}

func TestRouter_ClientRoundTrip(t *testing.T) {
	srv := newTestServer(t, config.NewForTesting())
	ctx := context.Background()

	c, err := client.New(srv.URL, client.WithHTTPTimeout(5*time.Second))
	require.NoError(t, err)

	all, err := c.List(ctx, client.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 8)

	name, every, start, dur, unit, active := "Reindex", 30, "04:15", 10, model.UnitMinute, true
	created, err := c.Create(ctx, model.RoutineInput{
		Name:           &name,
		FrequencyType:  &unit,
		FrequencyValue: &every,
		StartTime:      &start,
		Duration:       &dur,
		DurationUnit:   &unit,
		IsActive:       &active,
	})
	require.NoError(t, err)

	updated, err := c.SetStatus(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, stats.Total)

	require.NoError(t, c.Delete(ctx, created.ID))
	_, err = c.Get(ctx, created.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
}
