package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
)

// GetSettings retrieves the user's settings row.
func (l *ledger) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	s := &models.UserSettings{UserID: userID}
	err := l.db.QueryRowContext(ctx,
		"SELECT weekly_goals, session_notes FROM user_settings WHERE user_id = ?", userID,
	).Scan(&s.WeeklyGoals, &s.SessionNotes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// UpsertSettings creates or replaces the user's settings.
func (l *ledger) UpsertSettings(ctx context.Context, s *models.UserSettings) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, weekly_goals, session_notes) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET weekly_goals = excluded.weekly_goals, session_notes = excluded.session_notes`,
		s.UserID, s.WeeklyGoals, s.SessionNotes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
