// Package repo contains the persistence logic for guestdesk sessions.
// The entity collections live in memory (see internal/store); only the
// small session key/value table is stored in a database, either Postgres
// or a local SQLite file. No business logic lives here, only SQL.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/guestdesk/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionRepo is a string key/value store for session state such as the
// signed-in user. The service layer depends on this interface, not on a
// concrete backend.
type SessionRepo interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been set or was deleted.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// pgSessionRepo is the Postgres implementation of SessionRepo.
type pgSessionRepo struct {
	db db
}

// NewSessionRepo constructs a SessionRepo backed by the provided Postgres connection.
func NewSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

func (r *pgSessionRepo) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM session_kv WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("repo.SessionRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("repo.SessionRepo.Get: %w", err)
	}
	return value, nil
}

func (r *pgSessionRepo) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO session_kv (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("repo.SessionRepo.Set: %w", err)
	}
	return nil
}

func (r *pgSessionRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM session_kv WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	return nil
}
