package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql

	"github.com/guttosm/stabletide/config"
	migrations "github.com/guttosm/stabletide/db"
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens a connection pool for the Postgres cache backend and
// pings it once.
//
// The DSN is cfg.Postgres.URL when set, otherwise it is built from the
// individual Postgres fields.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	dsn := cfg.Postgres.URL
	if dsn == "" {
		dsn = config.PostgresDSN(cfg.Postgres)
	}

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// postgresOpener and migrator are indirections used by openStore; overridden
// in tests to avoid real connections.
var (
	postgresOpener = InitPostgres
	migrator       = func(ctx context.Context, db *sql.DB) error { return migrations.Migrate(ctx, db) }
)
