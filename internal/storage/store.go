// Package storage defines the ledger store contract consumed by the core.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/grindtracker/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist for the given owner.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("record already exists")
)

// Ledger is the set of row operations available both on the store and
// inside a transaction. Every per-user method is scoped by userID: a row
// owned by someone else is reported as ErrNotFound.
type Ledger interface {
	// CreateUser inserts the user together with a zero bankroll and blank
	// settings. Returns ErrConflict if the username or email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByLogin finds a user by username or email.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UserExists reports whether the username or the email is already used.
	UserExists(ctx context.Context, username, email string) (bool, error)

	// InsertSession persists a session. ID and CreatedAt are generated when empty.
	InsertSession(ctx context.Context, session *models.Session) error

	GetSession(ctx context.Context, userID, sessionID string) (*models.Session, error)

	// ListSessions returns the user's sessions, newest date first.
	ListSessions(ctx context.Context, userID string) ([]*models.Session, error)

	DeleteSession(ctx context.Context, userID, sessionID string) error

	// SumEarnings returns the sum of earnings over the user's sessions.
	SumEarnings(ctx context.Context, userID string) (float64, error)

	GetBankroll(ctx context.Context, userID string) (*models.Bankroll, error)

	// AdjustBankroll adds delta to the user's bankroll amount.
	AdjustBankroll(ctx context.Context, userID string, delta float64) error

	// SetBankroll overwrites the user's bankroll amount.
	SetBankroll(ctx context.Context, userID string, amount float64) error

	InsertNote(ctx context.Context, note *models.PlayerNote) error

	// ListNotes returns the user's notes, newest first.
	ListNotes(ctx context.Context, userID string) ([]*models.PlayerNote, error)

	DeleteNote(ctx context.Context, userID, noteID string) error

	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)

	// UpsertSettings creates or replaces the user's settings row.
	UpsertSettings(ctx context.Context, settings *models.UserSettings) error
}

// Store is a Ledger backed by durable storage.
// This abstraction allows swapping backends (SQLite, PostgreSQL)
// without changing the core.
type Store interface {
	Ledger

	// WithTx runs fn against a transactional Ledger. The transaction commits
	// when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Ledger) error) error

	// Close releases any resources held by the store.
	Close() error
}
