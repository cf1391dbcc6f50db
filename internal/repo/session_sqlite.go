package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pkordes/guestdesk/internal/domain"
)

// sqlDB is the subset of *sql.DB, *sql.Conn and *sql.Tx used by the SQLite repo.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteSessionRepo is the SQLite implementation of SessionRepo. It is the
// default backend when no Postgres URL is configured.
type sqliteSessionRepo struct {
	db sqlDB
}

// NewSQLiteSessionRepo constructs a SessionRepo backed by a database/sql
// handle opened with the modernc.org/sqlite driver.
func NewSQLiteSessionRepo(db sqlDB) SessionRepo {
	return &sqliteSessionRepo{db: db}
}

func (r *sqliteSessionRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session_kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("repo.SQLiteSessionRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("repo.SQLiteSessionRepo.Get: %w", err)
	}
	return value, nil
}

func (r *sqliteSessionRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("repo.SQLiteSessionRepo.Set: %w", err)
	}
	return nil
}

func (r *sqliteSessionRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("repo.SQLiteSessionRepo.Delete: %w", err)
	}
	return nil
}
