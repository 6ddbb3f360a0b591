package entity

// Player - is the durable per-player aggregate. Counters only grow at game
// end; the derived rates are recomputed from the counters on every change so
// they can never drift out of sync.
type Player struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	MovesOnWins int     `json:"moves_on_wins"`
	WinRate     float64 `json:"win_rate"`
	AvgWinMoves float64 `json:"avg_win_moves"`
}

func NewPlayer(name, email string) *Player {
	return &Player{
		Name:  name,
		Email: email,
	}
}

// RecordWin - credits a won game and folds its move count into the average.
func (that *Player) RecordWin(gameMoves int) {
	that.Wins++
	that.MovesOnWins += gameMoves
	that.AvgWinMoves = float64(that.MovesOnWins) / float64(that.Wins)
	that.recomputeWinRate()
}

func (that *Player) RecordLoss() {
	that.Losses++
	that.recomputeWinRate()
}

func (that *Player) recomputeWinRate() {
	total := that.Wins + that.Losses
	if total == 0 {
		that.WinRate = 0
		return
	}

	that.WinRate = float64(that.Wins) / float64(total) * 100
}
