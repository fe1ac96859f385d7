package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/simaogato/advisordesk-backend/internal/adapter/repository/memory"
	"github.com/simaogato/advisordesk-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/advisordesk-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/advisordesk-backend/internal/adapter/repository/sqlstore"
	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// Supported storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Options selects and configures the document store
type Options struct {
	Driver      string
	PostgresDSN string
	SQLitePath  string
}

// Store is an opened document store together with its transaction support
type Store interface {
	domain.DocumentStore
	domain.Transactor
}

// Storage holds the opened store and releases its resources on Close
type Storage struct {
	Store Store
	close func() error
}

// Close releases the underlying database, if any
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the configured driver and applies its migrations.
// The driver is always chosen explicitly; there is no probing fallback.
func Open(ctx context.Context, opts Options, log zerolog.Logger) (*Storage, error) {
	switch opts.Driver {
	case DriverPostgres:
		db, err := postgres.NewDB(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("driver", opts.Driver).Msg("document store ready")
		return &Storage{Store: sqlstore.New(db.DB, sqlstore.Postgres), close: db.Close}, nil

	case DriverSQLite:
		if dir := filepath.Dir(opts.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		db, err := sqlite.Open(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("driver", opts.Driver).Str("path", opts.SQLitePath).Msg("document store ready")
		return &Storage{Store: sqlstore.New(db, sqlstore.SQLite), close: db.Close}, nil

	case DriverMemory:
		log.Warn().Msg("using in-memory document store, data is lost on exit")
		return &Storage{Store: memory.NewStore()}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q: %w", opts.Driver, domain.ErrInvalidInput)
	}
}
