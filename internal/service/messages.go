package service

import "github.com/mmynk/grindtracker/internal/models"

// Field names follow the JSON bodies of the REST surface so both
// transports decode the same shapes.

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest.Username accepts either the username or the email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

type LogoutRequest struct{}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *models.User `json:"user"`
}

type ListSessionsRequest struct{}

type ListSessionsResponse struct {
	Sessions []*models.Session `json:"sessions"`
}

type CreateSessionRequest struct {
	Date      string  `json:"date"`
	PlayTime  int64   `json:"playTime"`
	StudyTime int64   `json:"studyTime"`
	Games     int64   `json:"games"`
	Hands     int64   `json:"hands"`
	Earnings  float64 `json:"earnings"`
	Notes     string  `json:"notes"`
}

type CreateSessionResponse struct {
	Success bool            `json:"success"`
	Session *models.Session `json:"session"`
}

type DeleteSessionRequest struct {
	ID string `json:"id"`
}

type GetBankrollRequest struct{}

type GetBankrollResponse struct {
	Amount float64 `json:"amount"`
}

type ReconcileBankrollRequest struct{}

type ReconcileBankrollResponse struct {
	Success bool    `json:"success"`
	Amount  float64 `json:"amount"`
	Drift   float64 `json:"drift"`
}

// GetStatsRequest.AsOf is an optional RFC 3339 reference time.
type GetStatsRequest struct {
	AsOf string `json:"asOf,omitempty"`
}

type ListNotesRequest struct{}

type ListNotesResponse struct {
	Notes []*models.PlayerNote `json:"notes"`
}

type CreateNoteRequest struct {
	PlayerName string `json:"playerName"`
	Category   string `json:"category"`
	NoteText   string `json:"noteText"`
}

type CreateNoteResponse struct {
	Success bool               `json:"success"`
	Note    *models.PlayerNote `json:"note"`
}

type DeleteNoteRequest struct {
	ID string `json:"id"`
}

type GetSettingsRequest struct{}

type SettingsResponse struct {
	Settings *models.UserSettings `json:"settings"`
}

type UpdateSettingsRequest struct {
	WeeklyGoals  string `json:"weeklyGoals"`
	SessionNotes string `json:"sessionNotes"`
}
