package postgres

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

func (l *ledger) InsertSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		session.ID, session.UserID, session.Date, session.PlayTime, session.StudyTime,
		session.Games, session.Hands, session.Earnings, session.Notes, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (l *ledger) GetSession(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	s := &models.Session{}
	err := l.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	).Scan(&s.ID, &s.UserID, &s.Date, &s.PlayTime, &s.StudyTime,
		&s.Games, &s.Hands, &s.Earnings, &s.Notes, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

func (l *ledger) ListSessions(ctx context.Context, userID string) ([]*models.Session, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC, seq DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		s := &models.Session{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.PlayTime, &s.StudyTime,
			&s.Games, &s.Hands, &s.Earnings, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}

func (l *ledger) DeleteSession(ctx context.Context, userID, sessionID string) error {
	res, err := l.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE id = $1 AND user_id = $2", sessionID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return affectedOne(res)
}

func (l *ledger) SumEarnings(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := l.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(earnings), 0) FROM sessions WHERE user_id = $1", userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum earnings: %w", err)
	}
	return total, nil
}
