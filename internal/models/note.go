package models

// PlayerNote is a note about an opponent. PlayerName is free text, there is
// no player entity behind it.
type PlayerNote struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	PlayerName string `json:"player_name"`
	Category   string `json:"category"`
	NoteText   string `json:"note_text"`
	CreatedAt  int64  `json:"created_at"`
}
