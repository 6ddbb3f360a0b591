package entity

import "time"

// HistoryEntry - immutable record of one move attempt, accepted or rejected.
// Entries are only ever appended, and removed solely when the owning game is
// cancelled.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	GameID     string    `json:"game_id"`
	PlayerName string    `json:"player_name"`
	MovesCount int       `json:"moves_count"`
	Cell       int       `json:"cell"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
