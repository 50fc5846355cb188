package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
)

const userColumns = `id, username, email, password_hash, created_at`

// CreateUser inserts a user row and initializes its bankroll and settings.
// Callers outside a transaction go through SQLiteStore.CreateUser.
func (l *ledger) CreateUser(ctx context.Context, user *models.User) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := l.db.ExecContext(ctx,
		"INSERT INTO bankroll (user_id, amount, updated_at) VALUES (?, 0, ?)",
		user.ID, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to create bankroll: %w", err)
	}

	if _, err := l.db.ExecContext(ctx,
		"INSERT INTO user_settings (user_id, weekly_goals, session_notes) VALUES (?, '', '')",
		user.ID,
	); err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}

	return nil
}

// GetUserByLogin retrieves a user whose username or email equals login.
func (l *ledger) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return l.scanUser(l.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ? LIMIT 1`,
		login, login,
	))
}

// GetUserByID retrieves a user by their ID.
func (l *ledger) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return l.scanUser(l.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	))
}

// UserExists reports whether the username or the email is taken.
func (l *ledger) UserExists(ctx context.Context, username, email string) (bool, error) {
	var exists int
	err := l.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username = ? OR email = ? LIMIT 1",
		username, email,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return true, nil
}

func (l *ledger) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
