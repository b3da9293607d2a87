package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/store"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/storetest"
)

func makeSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routines.db")
	st, err := Bootstrap(context.Background(), path)
	if err != nil {
		t.Fatalf("bootstrap sqlite: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSQLiteStore)
}

func TestSQLiteStore_SchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "routines.db")
	st, err := Bootstrap(context.Background(), path)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer func() { _ = st.Close() }()
	if err := st.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
	if err := st.HealthPing(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestPathFromURL(t *testing.T) {
	tests := map[string]string{
		"sqlite:///var/lib/routines.db": "/var/lib/routines.db",
		"sqlite:data/routines.db":       "data/routines.db",
		"file:routines.db?mode=rwc":     "routines.db",
		"./routines.db":                 "./routines.db",
	}
	for in, want := range tests {
		if got := PathFromURL(in); got != want {
			t.Errorf("PathFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
