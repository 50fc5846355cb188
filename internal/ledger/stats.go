package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/grindtracker/internal/calculator"
	"github.com/mmynk/grindtracker/internal/models"
	"github.com/mmynk/grindtracker/internal/storage"
)

// StatsAggregator computes rollups straight from the session rows. It never
// reads the bankroll, so its totals double as a consistency check on it.
type StatsAggregator struct {
	store  storage.Ledger
	logger *slog.Logger
	now    func() time.Time
}

// NewStatsAggregator creates a StatsAggregator. now supplies the default
// reference time; nil means time.Now.
func NewStatsAggregator(store storage.Ledger, logger *slog.Logger, now func() time.Time) *StatsAggregator {
	if now == nil {
		now = time.Now
	}
	return &StatsAggregator{store: store, logger: logger, now: now}
}

// ComputeStats returns the user's stats as of asOf. A zero asOf means now.
func (a *StatsAggregator) ComputeStats(ctx context.Context, userID string, asOf time.Time) (models.StatsReport, error) {
	if userID == "" {
		return models.StatsReport{}, ErrUnauthenticated
	}
	if asOf.IsZero() {
		asOf = a.now()
	}

	sessions, err := a.store.ListSessions(ctx, userID)
	if err != nil {
		a.logger.Error("ComputeStats failed", "user_id", userID, "error", err)
		return models.StatsReport{}, storeFailure("list sessions", err)
	}

	report := calculator.ComputeStats(sessions, asOf)
	a.logger.Debug("Stats computed",
		"user_id", userID,
		"as_of", asOf,
		"sessions", len(sessions),
		"week_sessions", report.DaysThisWeek,
	)
	return report, nil
}
