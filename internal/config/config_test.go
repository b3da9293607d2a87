package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test; envconfig treats an
// empty variable as set, which would shadow the unprefixed fallback.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if prev, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, prev) })
		}
		_ = os.Unsetenv(k)
	}
}

func TestConfigLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ROUTINES_DATABASE_URL", "")
	t.Setenv("ROUTINES_DB_DRIVER", "")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
}

func TestConfigLoad_DatabaseURLSelectsPostgres(t *testing.T) {
	t.Setenv("ROUTINES_DB_DRIVER", "")
	unsetEnv(t, "ROUTINES_DATABASE_URL")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/routines?sslmode=disable")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
}

func TestConfigLoad_PrefixedOverride(t *testing.T) {
	t.Setenv("ROUTINES_DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ROUTINES_DATABASE_URL", "sqlite:///tmp/routines.db")
	t.Setenv("ROUTINES_HTTP_PORT", "9090")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 9090, cfg.HTTPPort)
}

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		driver  string
		wantErr bool
	}{
		{name: "no url is memory", cfg: Config{DBDriver: "auto", HTTPPort: 1}, driver: DriverMemory},
		{name: "postgresql scheme", cfg: Config{DatabaseURL: "postgresql://x/y", HTTPPort: 1}, driver: DriverPostgres},
		{name: "file path is sqlite", cfg: Config{DBDriver: "AUTO", DatabaseURL: "./data/routines.db", HTTPPort: 1}, driver: DriverSQLite},
		{name: "explicit memory ignores url", cfg: Config{DBDriver: "memory", DatabaseURL: "postgres://x", HTTPPort: 1}, driver: DriverMemory},
		{name: "postgres without url", cfg: Config{DBDriver: "postgres", HTTPPort: 1}, wantErr: true},
		{name: "unknown driver", cfg: Config{DBDriver: "mongo", HTTPPort: 1}, wantErr: true},
		{name: "bad port", cfg: Config{HTTPPort: 70000}, wantErr: true},
		{name: "negative rate", cfg: Config{HTTPPort: 1, RateLimitRPS: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.ResolveDefaults()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, cfg.DBDriver)
		})
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	assert.NoError(t, cfg.ResolveDefaults())
}
