package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/store"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/storetest"
)

// postgresDSN returns a DSN from ROUTINES_TEST_POSTGRES_DSN or, when
// ROUTINES_TEST_CONTAINERS=1, from a throwaway postgres container.
func postgresDSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("ROUTINES_TEST_POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	if os.Getenv("ROUTINES_TEST_CONTAINERS") != "1" {
		t.Skip("ROUTINES_TEST_POSTGRES_DSN not set; skipping postgres store integration test")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "routines",
			"POSTGRES_PASSWORD": "routines",
			"POSTGRES_DB":       "routines",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("postgres://routines:routines@%s:%s/routines?sslmode=disable", host, port.Port())
}

func TestPostgresStore_Compliance(t *testing.T) {
	dsn := postgresDSN(t)
	ctx := context.Background()

	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := Bootstrap(ctx, dsn)
		if err != nil {
			t.Fatalf("postgres bootstrap: %v", err)
		}
		if _, err := st.DB().ExecContext(ctx, `TRUNCATE routines`); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		t.Cleanup(func() { _ = st.Close() })
		return st
	})
}
