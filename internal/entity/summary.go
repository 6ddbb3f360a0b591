package entity

const (
	OutcomeWin  = "WIN"
	OutcomeLose = "LOSE"
	OutcomeDraw = "DRAW"
)

// PlayerGameSummary - denormalized per-player view of one game, created
// together with the game and settled once at termination. Score and ranking
// queries read these instead of joining games and players live.
type PlayerGameSummary struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
	GameOver   bool   `json:"game_over"`
	WinStatus  string `json:"win_status,omitempty"`
	MovesCount int    `json:"moves_count"`
}

func NewPlayerGameSummary(gameID, playerName string) *PlayerGameSummary {
	return &PlayerGameSummary{
		GameID:     gameID,
		PlayerName: playerName,
	}
}

// Settle - records the final outcome and move count.
func (that *PlayerGameSummary) Settle(winStatus string, movesCount int) {
	that.GameOver = true
	that.WinStatus = winStatus
	that.MovesCount = movesCount
}
