// Package drivers picks a document Store implementation from configuration.
package drivers

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/fs"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/memory"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/postgres"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/s3"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/sqlite"
)

// Config selects and configures one driver. Only the fields of the chosen
// driver are read.
type Config struct {
	Driver store.Driver

	// fs
	DataDir string

	// sqlite
	SQLiteFile string

	// postgres
	PostgresDSN string

	// s3
	S3             s3.Config
	S3CreateBucket bool
}

// Open returns a ready Store for cfg.Driver (fs when empty).
func Open(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Driver {
	case "", store.DriverFS:
		return fs.New(cfg.DataDir)

	case store.DriverMemory:
		return memory.New(), nil

	case store.DriverSQLite:
		st, err := sqlite.NewStore(cfg.SQLiteFile)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLiteFile, err)
		}
		if err := st.ApplyMigrations(); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return st, nil

	case store.DriverPostgres:
		return postgres.NewStore(ctx, cfg.PostgresDSN)

	case store.DriverS3:
		st, err := s3.New(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		if cfg.S3CreateBucket {
			if err := st.EnsureBucket(ctx); err != nil {
				return nil, err
			}
		}
		return st, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
