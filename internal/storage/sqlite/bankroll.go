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

// GetBankroll retrieves the user's bankroll row.
func (l *ledger) GetBankroll(ctx context.Context, userID string) (*models.Bankroll, error) {
	b := &models.Bankroll{}
	err := l.db.QueryRowContext(ctx,
		"SELECT user_id, amount, updated_at FROM bankroll WHERE user_id = ?", userID,
	).Scan(&b.UserID, &b.Amount, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bankroll: %w", err)
	}
	return b, nil
}

// AdjustBankroll adds delta to the amount, creating the row if it is missing.
func (l *ledger) AdjustBankroll(ctx context.Context, userID string, delta float64) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO bankroll (user_id, amount, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET amount = amount + excluded.amount, updated_at = excluded.updated_at`,
		userID, delta, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to adjust bankroll: %w", err)
	}
	return nil
}

// SetBankroll overwrites the amount, creating the row if it is missing.
func (l *ledger) SetBankroll(ctx context.Context, userID string, amount float64) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO bankroll (user_id, amount, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at`,
		userID, amount, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set bankroll: %w", err)
	}
	return nil
}
