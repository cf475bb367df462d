package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore keeps documents in the query_cache table, one row per key.
// The table is created by the migrations in db/migrations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open, migrated connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save upserts the document; the previous row for key is replaced entirely.
func (s *PostgresStore) Save(ctx context.Context, key string, doc any) error {
	if key == "" {
		return ErrInvalidKey
	}
	data, err := encode(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO query_cache (cache_key, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (cache_key)
		DO UPDATE SET document = EXCLUDED.document,
					  updated_at = NOW()
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("cache: upsert %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key string, out any) error {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM query_cache WHERE cache_key = $1`, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("cache: select %q: %w", key, err)
	}
	return decode(doc, out)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
