package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/grindtracker/internal/calculator"
	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
)

// NewSession carries the caller-supplied fields of a session. Numeric fields
// default to zero; Earnings may be negative.
type NewSession struct {
	Date      string
	PlayTime  int64
	StudyTime int64
	Games     int64
	Hands     int64
	Earnings  float64
	Notes     string
}

// SessionLedger owns session create/delete and the compensating bankroll update.
type SessionLedger struct {
	store  storage.Store
	logger *slog.Logger
}

// NewSessionLedger creates a SessionLedger on the given store.
func NewSessionLedger(store storage.Store, logger *slog.Logger) *SessionLedger {
	return &SessionLedger{store: store, logger: logger}
}

// ListSessions returns the user's sessions, newest date first. An empty
// ledger yields an empty slice.
func (l *SessionLedger) ListSessions(ctx context.Context, userID string) ([]*models.Session, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	sessions, err := l.store.ListSessions(ctx, userID)
	if err != nil {
		l.logger.Error("ListSessions failed", "user_id", userID, "error", err)
		return nil, storeFailure("list sessions", err)
	}
	return sessions, nil
}

// CreateSession records a session and adds its earnings to the bankroll.
func (l *SessionLedger) CreateSession(ctx context.Context, userID string, in NewSession) (*models.Session, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	date, err := calculator.NormalizeSessionDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, &ValidationError{Fields: []string{"date"}}
	}

	session := &models.Session{
		UserID:    userID,
		Date:      date,
		PlayTime:  in.PlayTime,
		StudyTime: in.StudyTime,
		Games:     in.Games,
		Hands:     in.Hands,
		Earnings:  in.Earnings,
		Notes:     in.Notes,
	}

	err = l.store.WithTx(ctx, func(ctx context.Context, tx storage.Ledger) error {
		if err := tx.InsertSession(ctx, session); err != nil {
			return err
		}
		return tx.AdjustBankroll(ctx, userID, session.Earnings)
	})
	if err != nil {
		l.logger.Error("CreateSession failed", "user_id", userID, "error", err)
		return nil, storeFailure("create session", err)
	}

	l.logger.Info("Session recorded",
		"user_id", userID,
		"session_id", session.ID,
		"date", session.Date,
		"earnings", session.Earnings,
	)
	return session, nil
}

// DeleteSession removes one of the user's sessions and subtracts its stored
// earnings from the bankroll.
func (l *SessionLedger) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if sessionID == "" {
		return ErrNotFound
	}

	var removed *models.Session
	err := l.store.WithTx(ctx, func(ctx context.Context, tx storage.Ledger) error {
		session, err := tx.GetSession(ctx, userID, sessionID)
		if err != nil {
			return err
		}
		if err := tx.AdjustBankroll(ctx, userID, -session.Earnings); err != nil {
			return err
		}
		if err := tx.DeleteSession(ctx, userID, sessionID); err != nil {
			return err
		}
		removed = session
		return nil
	})
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		l.logger.Error("DeleteSession failed", "user_id", userID, "session_id", sessionID, "error", err)
		return storeFailure("delete session", err)
	}

	l.logger.Info("Session deleted",
		"user_id", userID,
		"session_id", sessionID,
		"earnings_reverted", removed.Earnings,
	)
	return nil
}

// Bankroll returns the user's current bankroll amount, 0 if the account row
// does not exist.
func (l *SessionLedger) Bankroll(ctx context.Context, userID string) (float64, error) {
	if userID == "" {
		return 0, ErrUnauthenticated
	}
	b, err := l.store.GetBankroll(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		l.logger.Error("GetBankroll failed", "user_id", userID, "error", err)
		return 0, storeFailure("get bankroll", err)
	}
	return b.Amount, nil
}

// ReconcileBankroll recomputes the bankroll from the session ledger and
// stores it. It returns the corrected amount and the drift that was removed
// (previous amount minus corrected amount). This is an explicit operator
// repair; nothing calls it automatically.
func (l *SessionLedger) ReconcileBankroll(ctx context.Context, userID string) (amount, drift float64, err error) {
	if userID == "" {
		return 0, 0, ErrUnauthenticated
	}

	err = l.store.WithTx(ctx, func(ctx context.Context, tx storage.Ledger) error {
		var previous float64
		b, err := tx.GetBankroll(ctx, userID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
		case err != nil:
			return err
		default:
			previous = b.Amount
		}

		sum, err := tx.SumEarnings(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.SetBankroll(ctx, userID, sum); err != nil {
			return err
		}
		amount, drift = sum, previous-sum
		return nil
	})
	if err != nil {
		l.logger.Error("ReconcileBankroll failed", "user_id", userID, "error", err)
		return 0, 0, storeFailure("reconcile bankroll", err)
	}

	if drift != 0 {
		l.logger.Warn("Bankroll drift corrected", "user_id", userID, "amount", amount, "drift", drift)
	}
	return amount, drift, nil
}
