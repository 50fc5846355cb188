package calculator

import (
	"time"

	"github.com/mmynk/grindtracker/internal/models"
)

const (
	// GameCost is the assumed buy-in per game used for the weekly ROI.
	GameCost = 7.5

	// WeekWindow and MonthWindow are flat wall-clock spans, not calendar
	// weeks or months.
	WeekWindow  = 7 * 24 * time.Hour
	MonthWindow = 30 * 24 * time.Hour
)

const (
	dayLayout       = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05Z"
)

// ParseSessionDate parses a session date in either YYYY-MM-DD form
// (midnight UTC) or RFC 3339.
func ParseSessionDate(date string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, date); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, date)
}

// NormalizeSessionDate validates date and returns its stored form: day dates
// are kept as is, timestamps are converted to UTC with second precision.
func NormalizeSessionDate(date string) (string, error) {
	if _, err := time.Parse(dayLayout, date); err == nil {
		return date, nil
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(timestampLayout), nil
}

// inWindow reports whether date is at or after asOf-span. Windows are
// bounded below only, so sessions dated after asOf are included.
func inWindow(date string, asOf time.Time, span time.Duration) bool {
	t, err := ParseSessionDate(date)
	if err != nil {
		return false
	}
	return !t.Before(asOf.Add(-span))
}

// ComputeStats aggregates sessions into all-time, trailing week and trailing
// month figures as of asOf.
//
// Algorithm:
// - All-time: hours and earnings over every session
// - Week (date >= asOf-7d): hours, earnings, games, hands, session count
// - Month (date >= asOf-30d): earnings
// - Rates guard against zero denominators and report 0 instead
func ComputeStats(sessions []*models.Session, asOf time.Time) models.StatsReport {
	var r models.StatsReport

	for _, s := range sessions {
		hours := float64(s.PlayTime) / 3600

		r.TotalHours += hours
		r.TotalEarnings += s.Earnings

		if inWindow(s.Date, asOf, WeekWindow) {
			r.WeekHours += hours
			r.WeekEarnings += s.Earnings
			r.WeekGames += s.Games
			r.WeekHands += s.Hands
			r.DaysThisWeek++
		}

		if inWindow(s.Date, asOf, MonthWindow) {
			r.MonthEarnings += s.Earnings
		}
	}

	if r.TotalHours > 0 {
		r.GlobalHourlyRate = r.TotalEarnings / r.TotalHours
	}
	if r.WeekGames > 0 {
		r.WeekROI = (r.WeekEarnings / (float64(r.WeekGames) * GameCost)) * 100
	}

	return r
}
