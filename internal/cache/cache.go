// Package cache persists query results as JSON documents under a key.
//
// The application keeps a single reserved key for the latest query, which
// gives the single-slot behaviour: every successful query replaces the whole
// document. Three backends are available: files on local disk (default),
// a Postgres table, and Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Errors returned by Store.Load. Callers treat both as "no data yet".
var (
	ErrNotFound  = errors.New("cache: document not found")
	ErrMalformed = errors.New("cache: document is not valid JSON")
)

// ErrInvalidKey is returned when a key cannot be mapped to a storage location.
var ErrInvalidKey = errors.New("cache: invalid key")

// Store is a keyed JSON document store with full-replace writes.
type Store interface {
	// Save serializes doc and replaces whatever is stored under key.
	Save(ctx context.Context, key string, doc any) error
	// Load decodes the document stored under key into out.
	// Returns ErrNotFound or ErrMalformed (wrapped) instead of panicking.
	Load(ctx context.Context, key string, out any) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// SaveOutcome records the result of a best-effort write. A non-nil Err means
// the document was not persisted; callers are free to ignore it.
type SaveOutcome struct {
	Key     string
	Elapsed time.Duration
	Err     error
}

// OK reports whether the write succeeded.
func (o SaveOutcome) OK() bool { return o.Err == nil }

// Persist calls s.Save and captures the outcome instead of returning an error.
func Persist(ctx context.Context, s Store, key string, doc any) SaveOutcome {
	start := time.Now()
	err := s.Save(ctx, key, doc)
	return SaveOutcome{Key: key, Elapsed: time.Since(start), Err: err}
}

// encode renders doc the way it is stored: UTF-8 JSON with two-space indent.
func encode(doc any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cache: encode document: %w", err)
	}
	return data, nil
}

func decode(data []byte, out any) error {
	if !json.Valid(data) {
		return ErrMalformed
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
