package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
)

const sessionColumns = `id, user_id, date, play_time, study_time, games, hands, earnings, notes, created_at`

// InsertSession persists a new session to the database.
func (l *ledger) InsertSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.Date, session.PlayTime, session.StudyTime,
		session.Games, session.Hands, session.Earnings, session.Notes, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession retrieves one of the user's sessions.
func (l *ledger) GetSession(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	err := l.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ? AND user_id = ?`,
		sessionID, userID,
	).Scan(&session.ID, &session.UserID, &session.Date, &session.PlayTime, &session.StudyTime,
		&session.Games, &session.Hands, &session.Earnings, &session.Notes, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ListSessions retrieves all of the user's sessions, newest date first.
func (l *ledger) ListSessions(ctx context.Context, userID string) ([]*models.Session, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = ?
		 ORDER BY date DESC, created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session := &models.Session{}
		if err := rows.Scan(&session.ID, &session.UserID, &session.Date, &session.PlayTime, &session.StudyTime,
			&session.Games, &session.Hands, &session.Earnings, &session.Notes, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// DeleteSession removes one of the user's sessions.
func (l *ledger) DeleteSession(ctx context.Context, userID, sessionID string) error {
	res, err := l.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE id = ? AND user_id = ?", sessionID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return affectedOne(res)
}

// SumEarnings totals the earnings column over the user's sessions.
func (l *ledger) SumEarnings(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := l.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(earnings), 0) FROM sessions WHERE user_id = ?", userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum earnings: %w", err)
	}
	return total, nil
}
