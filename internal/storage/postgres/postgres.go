// Package postgres provides a PostgreSQL implementation of storage.Store on
// database/sql with the pgx driver. The schema is managed by goose.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmynk/grindtracker/internal/dbx"
	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
	"github.com/mmynk/grindtracker/internal/storage/postgres/migrations"
)

var _ storage.Store = (*PostgresStore)(nil)

// PostgresStore implements storage.Store using PostgreSQL.
type PostgresStore struct {
	*ledger
	db *sql.DB
}

type ledger struct {
	db dbx.DBTX
}

// New opens the database at dsn, verifies the connection and applies migrations.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an already opened database. No migrations are run.
func NewWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{ledger: &ledger{db: db}, db: db}
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// WithTx runs fn inside a single PostgreSQL transaction.
func (s *PostgresStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx storage.Ledger) error) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &ledger{db: tx})
	})
}

// CreateUser inserts the user, its bankroll and its settings in one transaction.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.WithTx(ctx, func(ctx context.Context, tx storage.Ledger) error {
		return tx.CreateUser(ctx, user)
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
