package models

// Session is a single ledger entry. Sessions are only ever created or
// deleted; an edit is a delete followed by a create.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Date is either YYYY-MM-DD or a UTC RFC 3339 timestamp with second
	// precision. Both forms sort correctly as strings.
	Date string `json:"date"`

	// PlayTime and StudyTime are durations in seconds.
	PlayTime  int64 `json:"play_time"`
	StudyTime int64 `json:"study_time"`

	Games int64 `json:"games"`
	Hands int64 `json:"hands"`

	// Earnings is the signed result of the session. Negative for a losing session.
	Earnings float64 `json:"earnings"`

	Notes string `json:"notes"`

	// CreatedAt is the Unix timestamp when the row was recorded.
	CreatedAt int64 `json:"created_at"`
}
