package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(Migrations, "migrations/*.sql")
	if err != nil || len(files) == 0 {
		t.Fatalf("no embedded migrations: %v", err)
	}
	b, err := fs.ReadFile(Migrations, files[0])
	if err != nil {
		t.Fatalf("read %s: %v", files[0], err)
	}
	sql := string(b)
	for _, want := range []string{"-- +goose Up", "-- +goose Down", "CREATE TABLE IF NOT EXISTS query_cache", "cache_key  TEXT PRIMARY KEY"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("%s missing %q", files[0], want)
		}
	}
}
