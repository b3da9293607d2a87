package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/config"
	storepkg "github.com/Eusouovitao/Rotina-Sankhya/internal/store"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/store/memory"
	storepg "github.com/Eusouovitao/Rotina-Sankhya/internal/store/postgres"
	storesqlite "github.com/Eusouovitao/Rotina-Sankhya/internal/store/sqlite"
)

const bootstrapTimeout = 30 * time.Second

// NewStore returns the store selected by cfg.DBDriver. The relational drivers
// create their table on first use; the memory driver is seeded when SeedData is set.
// The returned close function releases the backend and is never nil.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.DBDriver {
	case config.DriverMemory:
		if !cfg.SeedData {
			log.Info().Str("driver", cfg.DBDriver).Msg("using empty in-memory store")
			return memory.New(), noop, nil
		}
		st, err := memory.NewSeeded(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("seed memory store: %w", err)
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("using seeded in-memory store")
		return st, noop, nil

	case config.DriverPostgres:
		bctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
		defer cancel()
		st, err := storepg.Bootstrap(bctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres bootstrap: %w", err)
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("postgres store ready")
		return st, st.Close, nil

	case config.DriverSQLite:
		path := storesqlite.PathFromURL(cfg.DatabaseURL)
		bctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
		defer cancel()
		st, err := storesqlite.Bootstrap(bctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite bootstrap: %w", err)
		}
		log.Info().Str("driver", cfg.DBDriver).Str("path", path).Msg("sqlite store ready")
		return st, st.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
}
