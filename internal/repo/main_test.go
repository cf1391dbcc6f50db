package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pressly/goose/v3"

	"github.com/pkordes/guestdesk/migrations"
	"github.com/pkordes/guestdesk/testutil"
)

// TestMain runs before any test in the repo_test package.
// When a Postgres test database is configured it applies all pending
// migrations so individual tests never need to think about schema state.
// SQLite tests migrate their own throwaway files.
func TestMain(m *testing.M) {
	dsn := os.Getenv(testutil.DSNEnv)
	if dsn == "" {
		os.Exit(m.Run())
	}

	// goose needs database/sql, not a pgx pool.
	db := testutil.MustOpenSQLDB(dsn)

	if _, err := migrations.Up(context.Background(), db, goose.DialectPostgres); err != nil {
		db.Close()
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
