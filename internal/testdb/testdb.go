//go:build integration

// Package testdb opens a migrated Postgres database for integration tests and
// isolates each test in a transaction that is always rolled back.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/foodbridge/match-api/internal/platform/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// URLEnvVars are checked in order for the test database URL.
var URLEnvVars = []string{"FOODBRIDGE_TEST_DATABASE_URL", "FOODBRIDGE_DATABASE_URL", "DATABASE_URL"}

var migrateOnce sync.Once

// DatabaseURL returns the first configured test database URL, or "".
func DatabaseURL() string {
	for _, name := range URLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Open connects to the test database and applies migrations once per test
// binary. The test is skipped when no database URL is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skip("no test database configured")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("open test database %s: %v", maskURL(dbURL), err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping test database %s: %v", maskURL(dbURL), err)
	}

	var migrateErr error
	migrateOnce.Do(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		migrateErr = postgres.Migrate(ctx, db, "up", logger)
	})
	if migrateErr != nil {
		t.Fatalf("migrate test database: %v", migrateErr)
	}
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards, even
// when fn panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin test transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("rollback test transaction: %v", err)
		}
	}()

	fn(t, tx)
}

func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
