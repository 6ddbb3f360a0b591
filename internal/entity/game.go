package entity

import "time"

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = "-"

	BoardSize = 9
)

// Game - one tic-tac-toe match between two registered players. The X player
// always moves first; the move counter equals the number of occupied cells.
// Version backs the optimistic-concurrency check on persist.
type Game struct {
	ID         string            `json:"id"`
	Board      [BoardSize]string `json:"board"`
	XPlayer    string            `json:"x_player"`
	OPlayer    string            `json:"o_player"`
	MovesCount int               `json:"moves_count"`
	GameOver   bool              `json:"game_over"`
	EndDate    *time.Time        `json:"end_date,omitempty"`
	Version    int64             `json:"-"`
}

func NewGame(id, xPlayer, oPlayer string) *Game {
	game := &Game{
		ID:      id,
		XPlayer: xPlayer,
		OPlayer: oPlayer,
	}

	for i := range game.Board {
		game.Board[i] = EmptyCell
	}

	return game
}

func (that *Game) IsFinished() bool {
	return that.GameOver
}

func (that *Game) HasPlayer(name string) bool {
	return name == that.XPlayer || name == that.OPlayer
}

// MarkFor - returns the symbol a player plays with, or "" for outsiders.
func (that *Game) MarkFor(name string) string {
	switch name {
	case that.XPlayer:
		return PlayerX
	case that.OPlayer:
		return PlayerO
	default:
		return EmptyCell
	}
}

// NextMark - whose symbol is due: move numbers are 1-indexed, odd moves
// belong to X and even moves to O.
func (that *Game) NextMark() string {
	if (that.MovesCount+1)%2 == 0 {
		return PlayerO
	}

	return PlayerX
}

// NextPlayer - the name of the player who owes the next move.
func (that *Game) NextPlayer() string {
	if that.NextMark() == PlayerO {
		return that.OPlayer
	}

	return that.XPlayer
}

// Opponent - the other player's name; "" if name is not in the game.
func (that *Game) Opponent(name string) string {
	switch name {
	case that.XPlayer:
		return that.OPlayer
	case that.OPlayer:
		return that.XPlayer
	default:
		return ""
	}
}

// Finish - marks the game terminal. The end date is set exactly once.
func (that *Game) Finish(endedAt time.Time) {
	that.GameOver = true
	that.EndDate = &endedAt
}
