package postgres

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

func (l *ledger) CreateUser(ctx context.Context, user *models.User) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := l.db.ExecContext(ctx,
		"INSERT INTO bankroll (user_id, amount, updated_at) VALUES ($1, 0, $2)",
		user.ID, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to create bankroll: %w", err)
	}

	if _, err := l.db.ExecContext(ctx,
		"INSERT INTO user_settings (user_id, weekly_goals, session_notes) VALUES ($1, '', '')",
		user.ID,
	); err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	return nil
}

func (l *ledger) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return scanUser(l.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1 LIMIT 1`, login,
	))
}

func (l *ledger) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(l.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
}

func (l *ledger) UserExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := l.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)",
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
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
