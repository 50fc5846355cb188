package models

// UserSettings holds per-user free text preferences. Blank fields are empty
// strings, never null.
type UserSettings struct {
	UserID       string `json:"-"`
	WeeklyGoals  string `json:"weekly_goals"`
	SessionNotes string `json:"session_notes"`
}
