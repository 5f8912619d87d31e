// Package store is the raw persistence surface of the People API.
// It owns the connection pool, the schema bootstrap, the health probe, and
// the transaction primitive. No entity knowledge lives here — repos own SQL
// for their own tables; the store only provides the surface to run it on.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/oskarlindh/people-api/migrations"
)

// Querier is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn,
// and pgx.Tx. Repos accept this instead of *pgxpool.Pool directly, so
// integration tests can pass a transaction that is rolled back after each
// test, giving free per-test isolation without any manual cleanup.
//
// Begin is included because some repo operations (person+profile save,
// cascading delete) span multiple statements; on a pgx.Tx it opens a
// savepoint, so nesting works in tests too.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store wraps the pgx pool and exposes the non-entity operations the rest of
// the system needs: schema bootstrap, health probe, and pool access.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store over an already-created pool.
// The caller keeps ownership of the pool and is responsible for closing it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying pool for repo construction.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// EnsureSchema idempotently brings the database schema up to date by running
// the embedded goose migrations. Already-applied migrations are skipped, so
// calling it on every startup is safe.
//
// goose needs a database/sql handle, so a short-lived *sql.DB is opened on
// the pool's connection string and closed before returning.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := sql.Open("pgx", s.pool.Config().ConnString())
	if err != nil {
		return fmt.Errorf("store.Store.EnsureSchema: open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("store.Store.EnsureSchema: provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("store.Store.EnsureSchema: up: %w", err)
	}
	return nil
}

// HealthCheck runs a trivial round-trip query and returns the message it
// selected. A non-nil error means the database is unreachable or unwilling;
// callers decide how to surface that.
func (s *Store) HealthCheck(ctx context.Context) (string, error) {
	const q = `SELECT 'Connection is successful!' AS message`

	var message string
	if err := s.pool.QueryRow(ctx, q).Scan(&message); err != nil {
		return "", fmt.Errorf("store.Store.HealthCheck: %w", err)
	}
	return message, nil
}

// WithinTx runs fn inside a transaction on db, committing on nil return and
// rolling back otherwise. It is the unit-of-work primitive for multi-statement
// repo operations. When db is already a pgx.Tx, Begin opens a savepoint, so
// the outer transaction is unaffected.
func WithinTx(ctx context.Context, db Querier, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store.WithinTx: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store.WithinTx: commit: %w", err)
	}
	return nil
}
