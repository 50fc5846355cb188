package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/mmynk/grindtracker/internal/models"
)

var asOf = time.Date(2024, 6, 15, 12, 30, 45, 0, time.UTC)

func at(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name         string
		sessions     []*models.Session
		validateFunc func(t *testing.T, r models.StatsReport)
	}{
		{
			name:     "no sessions reports zeros",
			sessions: nil,
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if r != (models.StatsReport{}) {
					t.Errorf("expected zero report, got %+v", r)
				}
			},
		},
		{
			name: "all-time totals and hourly rate",
			sessions: []*models.Session{
				{Date: "2023-01-01", PlayTime: 7200, Earnings: 100},
				{Date: "2023-02-01", PlayTime: 3600, Earnings: -40},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if !approx(r.TotalHours, 3) {
					t.Errorf("TotalHours = %v, want 3", r.TotalHours)
				}
				if !approx(r.TotalEarnings, 60) {
					t.Errorf("TotalEarnings = %v, want 60", r.TotalEarnings)
				}
				if !approx(r.GlobalHourlyRate, 20) {
					t.Errorf("GlobalHourlyRate = %v, want 20", r.GlobalHourlyRate)
				}
				// Both sessions are far outside the windows.
				if r.WeekEarnings != 0 || r.MonthEarnings != 0 || r.DaysThisWeek != 0 {
					t.Errorf("expected empty windows, got %+v", r)
				}
			},
		},
		{
			name: "zero hours gives zero hourly rate",
			sessions: []*models.Session{
				{Date: "2023-01-01", PlayTime: 0, Earnings: 500},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if r.GlobalHourlyRate != 0 {
					t.Errorf("GlobalHourlyRate = %v, want 0", r.GlobalHourlyRate)
				}
				if math.IsNaN(r.GlobalHourlyRate) || math.IsInf(r.GlobalHourlyRate, 0) {
					t.Error("hourly rate must be finite")
				}
			},
		},
		{
			name: "week window includes exact lower bound",
			sessions: []*models.Session{
				{Date: at(asOf.Add(-WeekWindow)), PlayTime: 3600, Games: 2, Hands: 100, Earnings: 15},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if r.DaysThisWeek != 1 {
					t.Errorf("DaysThisWeek = %d, want 1", r.DaysThisWeek)
				}
				if !approx(r.WeekEarnings, 15) || r.WeekGames != 2 || r.WeekHands != 100 || !approx(r.WeekHours, 1) {
					t.Errorf("unexpected week figures: %+v", r)
				}
			},
		},
		{
			name: "week window excludes one second before bound",
			sessions: []*models.Session{
				{Date: at(asOf.Add(-WeekWindow - time.Second)), Games: 2, Earnings: 15},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if r.DaysThisWeek != 0 || r.WeekEarnings != 0 || r.WeekGames != 0 {
					t.Errorf("expected session outside week window, got %+v", r)
				}
				if !approx(r.MonthEarnings, 15) {
					t.Errorf("MonthEarnings = %v, want 15", r.MonthEarnings)
				}
			},
		},
		{
			name: "month window bounds",
			sessions: []*models.Session{
				{Date: at(asOf.Add(-MonthWindow)), Earnings: 7},
				{Date: at(asOf.Add(-MonthWindow - time.Second)), Earnings: 1000},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if !approx(r.MonthEarnings, 7) {
					t.Errorf("MonthEarnings = %v, want 7", r.MonthEarnings)
				}
				if !approx(r.TotalEarnings, 1007) {
					t.Errorf("TotalEarnings = %v, want 1007", r.TotalEarnings)
				}
			},
		},
		{
			name: "future sessions fall inside both windows",
			sessions: []*models.Session{
				{Date: at(asOf.Add(90 * 24 * time.Hour)), Games: 1, Earnings: 30},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if r.DaysThisWeek != 1 || !approx(r.WeekEarnings, 30) || !approx(r.MonthEarnings, 30) {
					t.Errorf("future session should be windowed in, got %+v", r)
				}
			},
		},
		{
			name: "weekly ROI uses fixed game cost",
			sessions: []*models.Session{
				{Date: "2024-06-14", Games: 4, Earnings: 15},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				// 15 / (4 * 7.5) * 100 = 50
				if !approx(r.WeekROI, 50) {
					t.Errorf("WeekROI = %v, want 50", r.WeekROI)
				}
			},
		},
		{
			name: "zero games forces zero ROI",
			sessions: []*models.Session{
				{Date: "2024-06-14", Games: 0, Earnings: 250},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if r.WeekROI != 0 {
					t.Errorf("WeekROI = %v, want 0", r.WeekROI)
				}
				if !approx(r.WeekEarnings, 250) {
					t.Errorf("WeekEarnings = %v, want 250", r.WeekEarnings)
				}
			},
		},
		{
			name: "days this week counts sessions, not distinct days",
			sessions: []*models.Session{
				{Date: "2024-06-14"},
				{Date: "2024-06-14"},
				{Date: "2024-06-13"},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if r.DaysThisWeek != 3 {
					t.Errorf("DaysThisWeek = %d, want 3", r.DaysThisWeek)
				}
			},
		},
		{
			name: "day dates compare at midnight UTC",
			sessions: []*models.Session{
				// asOf-7d is 2024-06-08 12:30:45, so midnight of the 8th is outside.
				{Date: "2024-06-08", Earnings: 1},
				{Date: "2024-06-09", Earnings: 2},
			},
			validateFunc: func(t *testing.T, r models.StatsReport) {
				if r.DaysThisWeek != 1 || !approx(r.WeekEarnings, 2) {
					t.Errorf("unexpected week figures: %+v", r)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, ComputeStats(tt.sessions, asOf))
		})
	}
}

func TestNormalizeSessionDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-06-15", want: "2024-06-15"},
		{in: "2024-06-15T10:00:00+02:00", want: "2024-06-15T08:00:00Z"},
		{in: "2024-06-15T08:00:00.999Z", want: "2024-06-15T08:00:00Z"},
		{in: "", wantErr: true},
		{in: "15/06/2024", wantErr: true},
		{in: "2024-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeSessionDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeSessionDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeSessionDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
