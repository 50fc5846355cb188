package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
)

// SettingsManager reads and upserts the per-user settings record.
type SettingsManager struct {
	store  storage.Ledger
	logger *slog.Logger
}

func NewSettingsManager(store storage.Ledger, logger *slog.Logger) *SettingsManager {
	return &SettingsManager{store: store, logger: logger}
}

// GetSettings returns the user's settings. A missing row reads as blank settings.
func (m *SettingsManager) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	s, err := m.store.GetSettings(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.UserSettings{UserID: userID}, nil
	}
	if err != nil {
		m.logger.Error("GetSettings failed", "user_id", userID, "error", err)
		return nil, storeFailure("get settings", err)
	}
	return s, nil
}

// UpdateSettings replaces both fields. Blank input stores empty strings.
func (m *SettingsManager) UpdateSettings(ctx context.Context, userID, weeklyGoals, sessionNotes string) (*models.UserSettings, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	s := &models.UserSettings{
		UserID:       userID,
		WeeklyGoals:  weeklyGoals,
		SessionNotes: sessionNotes,
	}
	if err := m.store.UpsertSettings(ctx, s); err != nil {
		m.logger.Error("UpdateSettings failed", "user_id", userID, "error", err)
		return nil, storeFailure("update settings", err)
	}
	return s, nil
}
