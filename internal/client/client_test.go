package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/Eusouovitao/Rotina-Sankhya/internal/api/http"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/services"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/memory"
)

func ptr[T any](v T) *T { return &v }

func newTestClient(t *testing.T) *Client {
	t.Helper()
	r := mux.NewRouter()
	svc := services.NewRoutineService(memory.New(), zerolog.Nop())
	apihttp.RegisterRoutes(r, apihttp.NewRoutineHandler(svc, zerolog.Nop()), nil)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithHTTPTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func TestNew_Options(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
	_, err = New("http://localhost:8080", WithHTTPTimeout(0))
	assert.Error(t, err)
}

func TestClient_Lifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	created, err := c.Create(ctx, model.RoutineInput{
		Name:           ptr("Backup"),
		FrequencyType:  ptr(model.UnitHour),
		FrequencyValue: ptr(1),
		StartTime:      ptr("02:00"),
		Duration:       ptr(2),
		DurationUnit:   ptr(model.UnitHour),
		IsActive:       ptr(true),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := c.Update(ctx, created.ID, model.RoutineInput{Name: ptr("Backup Noturno")})
	require.NoError(t, err)
	assert.Equal(t, "Backup Noturno", updated.Name)

	off, err := c.SetStatus(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	active, err := c.List(ctx, ListOptions{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, 0, st.Active)

	chart, err := c.Timeline(ctx, ListOptions{Frequency: "hour"})
	require.NoError(t, err)
	require.Len(t, chart.Bars, 1)

	require.NoError(t, c.Delete(ctx, created.ID))
	_, err = c.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestClient_ValidationErrors(t *testing.T) {
	c := newTestClient(t)
	_, err := c.Create(context.Background(), model.RoutineInput{Name: ptr("x")})
	require.Error(t, err)

	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.True(t, fields.Has("startTime"))
	assert.False(t, errors.Is(err, ErrNotFound))
}
