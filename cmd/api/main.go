// Package main is the entry point for the guestdesk API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for goose
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/pkordes/guestdesk/internal/config"
	"github.com/pkordes/guestdesk/internal/handler"
	"github.com/pkordes/guestdesk/internal/metrics"
	"github.com/pkordes/guestdesk/internal/middleware"
	"github.com/pkordes/guestdesk/internal/repo"
	"github.com/pkordes/guestdesk/internal/seed"
	"github.com/pkordes/guestdesk/internal/service"
	"github.com/pkordes/guestdesk/internal/store"
	"github.com/pkordes/guestdesk/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A local .env is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Session store ----------------------------------------------------
	sessions, closeSessions, err := openSessions(ctx, cfg)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	// --- Entity store -----------------------------------------------------
	st, err := store.New(seed.Data(time.Now().UTC()))
	if err != nil {
		slog.Error("failed to load seed data", "error", err)
		os.Exit(1)
	}
	slog.Info("entity store loaded",
		"users", len(st.Users()),
		"guests", len(st.Guests()),
		"dorms", len(st.Dorms()),
		"updates", len(st.Updates()),
	)

	// --- Services ---------------------------------------------------------
	m := metrics.New()
	srv := handler.NewServer(handler.Deps{
		Guests:    service.NewGuestService(st, m, logger),
		Dorms:     service.NewDormService(st, m, logger),
		Updates:   service.NewUpdateService(st),
		Users:     service.NewUserService(st),
		Sessions:  service.NewSessionService(sessions, st, cfg.LoginPassphrase, logger),
		Dashboard: service.NewDashboardService(st),
		Location:  cfg.Location(),
		Logger:    logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", m.Handler())
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openSessions migrates and opens the session key-value store: Postgres when
// DATABASE_URL is set, otherwise the SQLite file at SQLITE_PATH. The returned
// func releases the underlying connections.
func openSessions(ctx context.Context, cfg config.Config) (repo.SessionRepo, func(), error) {
	if cfg.UsePostgres() {
		return openPostgresSessions(ctx, cfg.DatabaseURL)
	}
	return openSQLiteSessions(ctx, cfg.SQLitePath)
}

func openPostgresSessions(ctx context.Context, dsn string) (repo.SessionRepo, func(), error) {
	// goose drives migrations through database/sql; the app itself uses pgxpool.
	migDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open migration connection: %w", err)
	}
	defer migDB.Close()
	if err := runMigrations(ctx, migDB, goose.DialectPostgres); err != nil {
		return nil, nil, err
	}

	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("create database pool: %w", err)
	}
	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("session store ready", "backend", "postgres")
	return repo.NewSessionRepo(pool), pool.Close, nil
}

func openSQLiteSessions(ctx context.Context, path string) (repo.SessionRepo, func(), error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := runMigrations(ctx, db, goose.DialectSQLite3); err != nil {
		db.Close()
		return nil, nil, err
	}
	slog.Info("session store ready", "backend", "sqlite", "path", path)
	return repo.NewSQLiteSessionRepo(db), func() { db.Close() }, nil
}

func runMigrations(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	results, err := migrations.Up(ctx, db, dialect)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
