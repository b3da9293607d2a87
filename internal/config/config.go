package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the configuration for the routine service.
// Variables use the ROUTINES_ prefix; DATABASE_URL is also read unprefixed.
type Config struct {
	// DBDriver is memory, postgres, sqlite or auto (derived from DatabaseURL).
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// SeedData pre-populates the in-memory store with the illustrative routines.
	SeedData bool `envconfig:"SEED_DATA" default:"true"`

	// Health Configuration
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`

	// RateLimitRPS of 0 disables request rate limiting.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// ResolveDefaults derives DBDriver when set to "auto" or empty and validates the result.
func (c *Config) ResolveDefaults() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = driverFromURL(c.DatabaseURL)
	}

	switch c.DBDriver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if c.HealthIntervalSeconds <= 0 {
		c.HealthIntervalSeconds = 30
	}
	return nil
}

// driverFromURL selects the relational backend only when a connection string is present.
func driverFromURL(u string) string {
	switch {
	case u == "":
		return DriverMemory
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return DriverPostgres
	default:
		return DriverSQLite
	}
}

// New creates a new Config by parsing environment variables, after loading
// an optional .env file from the working directory.
// Example: ROUTINES_HTTP_PORT, ROUTINES_DB_DRIVER, DATABASE_URL
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("ROUTINES", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Bool("database_url_present", cfg.DatabaseURL != "").
		Bool("seed_data", cfg.SeedData).
		Float64("rate_limit_rps", cfg.RateLimitRPS).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		DBDriver:                  DriverMemory,
		Environment:               EnvTesting,
		LogLevel:                  "disabled",
		HTTPPort:                  8080,
		SeedData:                  false,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
		RateLimitBurst:            20,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
