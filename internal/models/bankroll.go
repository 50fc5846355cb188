package models

// Bankroll is the running balance of a user. Amount always equals the sum
// of the earnings of the user's sessions.
type Bankroll struct {
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	UpdatedAt int64   `json:"updated_at"`
}
