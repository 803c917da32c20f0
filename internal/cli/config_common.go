package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/datalake-metadata/dlmeta/internal/config"
	"github.com/datalake-metadata/dlmeta/internal/retry"
	"github.com/datalake-metadata/dlmeta/internal/schema"
	"github.com/datalake-metadata/dlmeta/internal/schema/pgstore"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// loadConfig builds the effective configuration: dlmeta.yaml, then the
// environment (including a .env file), then global flags.
// An explicit --config path must exist; the default one is optional.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	var (
		cfg *config.Config
		err error
	)
	if globals.configPath != "" {
		cfg, err = config.Load(globals.configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", dlmeta.ErrInvalidConfig, globals.configPath, err)
		}
	} else {
		cfg, err = config.LoadOrDefault(".")
		if err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	if globals.schemasDir != "" {
		cfg.UseSchemaDir(globals.schemasDir)
	}
	if globals.databaseURL != "" {
		cfg.UseDatabase(globals.databaseURL)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSource opens the schema source selected by cfg. The returned close
// function must be called when the source is no longer needed.
func openSource(ctx context.Context, cfg *config.Config, logger dlmeta.Logger) (schema.Source, func(), error) {
	switch {
	case cfg.Schemas.DatabaseURL != "":
		pool, err := connect(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		catalog, err := newStore(pool, cfg).Catalog(ctx)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to load schemas from database: %w", err)
		}
		logger.Verbose("Loaded schemas from %s", catalog.Location())
		return catalog, pool.Close, nil
	case cfg.Schemas.Dir != "":
		logger.Verbose("Loading schemas from directory %s", cfg.Schemas.Dir)
		return schema.Dir(cfg.Schemas.Dir), func() {}, nil
	default:
		return schema.Embedded(), func() {}, nil
	}
}

func newStore(pool *pgxpool.Pool, cfg *config.Config) *pgstore.Store {
	var opts []pgstore.Option
	if cfg.Schemas.Table != "" {
		opts = append(opts, pgstore.WithTable(cfg.Schemas.Table))
	}
	return pgstore.New(pool, opts...)
}

// connect opens a pool to the configured schema store, retrying transient
// failures within cfg.Connect.Timeout.
func connect(ctx context.Context, cfg *config.Config, logger dlmeta.Logger) (*pgxpool.Pool, error) {
	if cfg.Connect.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Connect.Timeout)
		defer cancel()
	}

	executor := retry.NewExecutor(
		retry.NewConnectClassifier(),
		retry.NewExponentialBackoff(cfg.Connect.Attempts),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Info("Connection attempt %d failed: %v (retrying in %s)", attempt+1, err, delay.Round(time.Millisecond))
	})

	return pgstore.Connect(ctx, cfg.Schemas.DatabaseURL, executor)
}
