package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/grindtracker/internal/models"
)

// InsertNote persists a new player note.
func (l *ledger) InsertNote(ctx context.Context, note *models.PlayerNote) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt == 0 {
		note.CreatedAt = time.Now().Unix()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO player_notes (id, user_id, player_name, category, note_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.UserID, note.PlayerName, note.Category, note.NoteText, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// ListNotes retrieves the user's notes, newest first.
func (l *ledger) ListNotes(ctx context.Context, userID string) ([]*models.PlayerNote, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, user_id, player_name, category, note_text, created_at
		 FROM player_notes WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.PlayerNote{}
	for rows.Next() {
		n := &models.PlayerNote{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.PlayerName, &n.Category, &n.NoteText, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

// DeleteNote removes one of the user's notes.
func (l *ledger) DeleteNote(ctx context.Context, userID, noteID string) error {
	res, err := l.db.ExecContext(ctx,
		"DELETE FROM player_notes WHERE id = ? AND user_id = ?", noteID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return affectedOne(res)
}
