package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
)

// NewNote carries the caller-supplied fields of a player note. All three are required.
type NewNote struct {
	PlayerName string
	Category   string
	NoteText   string
}

// NoteBook manages player notes scoped to their owner.
type NoteBook struct {
	store  storage.Ledger
	logger *slog.Logger
}

func NewNoteBook(store storage.Ledger, logger *slog.Logger) *NoteBook {
	return &NoteBook{store: store, logger: logger}
}

// ListNotes returns the user's notes, newest first.
func (b *NoteBook) ListNotes(ctx context.Context, userID string) ([]*models.PlayerNote, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	notes, err := b.store.ListNotes(ctx, userID)
	if err != nil {
		b.logger.Error("ListNotes failed", "user_id", userID, "error", err)
		return nil, storeFailure("list notes", err)
	}
	return notes, nil
}

// CreateNote validates and stores a note.
func (b *NoteBook) CreateNote(ctx context.Context, userID string, in NewNote) (*models.PlayerNote, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	var missing []string
	if strings.TrimSpace(in.PlayerName) == "" {
		missing = append(missing, "playerName")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(in.NoteText) == "" {
		missing = append(missing, "noteText")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	note := &models.PlayerNote{
		UserID:     userID,
		PlayerName: in.PlayerName,
		Category:   in.Category,
		NoteText:   in.NoteText,
	}
	if err := b.store.InsertNote(ctx, note); err != nil {
		b.logger.Error("CreateNote failed", "user_id", userID, "error", err)
		return nil, storeFailure("create note", err)
	}
	return note, nil
}

// DeleteNote removes one of the user's notes.
func (b *NoteBook) DeleteNote(ctx context.Context, userID, noteID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if noteID == "" {
		return ErrNotFound
	}
	if err := b.store.DeleteNote(ctx, userID, noteID); err != nil {
		err = classify("delete note", err)
		if err != ErrNotFound {
			b.logger.Error("DeleteNote failed", "user_id", userID, "note_id", noteID, "error", err)
		}
		return err
	}
	return nil
}
