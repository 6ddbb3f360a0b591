package rest

import (
	"time"

	"github.com/fairline/tictactoe-league/internal/entity"
)

type registerPlayerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type newGameRequest struct {
	XPlayerName string `json:"x_player_name"`
	OPlayerName string `json:"o_player_name"`
}

type makeMoveRequest struct {
	PlayerName string `json:"player_name"`
	Cell       int    `json:"cell"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameResponse struct {
	ID         string                   `json:"id"`
	Board      [entity.BoardSize]string `json:"board"`
	XPlayer    string                   `json:"x_player"`
	OPlayer    string                   `json:"o_player"`
	MovesCount int                      `json:"moves_count"`
	GameOver   bool                     `json:"game_over"`
	EndDate    *time.Time               `json:"end_date,omitempty"`
	Message    string                   `json:"message,omitempty"`
}

func newGameResponse(game *entity.Game, message string) gameResponse {
	return gameResponse{
		ID:         game.ID,
		Board:      game.Board,
		XPlayer:    game.XPlayer,
		OPlayer:    game.OPlayer,
		MovesCount: game.MovesCount,
		GameOver:   game.GameOver,
		EndDate:    game.EndDate,
		Message:    message,
	}
}

type summaryResponse struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
	GameOver   bool   `json:"game_over"`
	WinStatus  string `json:"win_status,omitempty"`
	MovesCount int    `json:"moves_count"`
}

func newSummaryResponses(summaries []*entity.PlayerGameSummary) []summaryResponse {
	items := make([]summaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, summaryResponse{
			GameID:     summary.GameID,
			PlayerName: summary.PlayerName,
			GameOver:   summary.GameOver,
			WinStatus:  summary.WinStatus,
			MovesCount: summary.MovesCount,
		})
	}

	return items
}

type rankingResponse struct {
	Name        string  `json:"name"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	AvgWinMoves float64 `json:"avg_win_moves"`
}

func newRankingResponses(players []*entity.Player) []rankingResponse {
	items := make([]rankingResponse, 0, len(players))
	for _, player := range players {
		items = append(items, rankingResponse{
			Name:        player.Name,
			Wins:        player.Wins,
			Losses:      player.Losses,
			WinRate:     player.WinRate,
			AvgWinMoves: player.AvgWinMoves,
		})
	}

	return items
}

type historyEntryResponse struct {
	PlayerName string    `json:"player_name"`
	MovesCount int       `json:"moves_count"`
	Cell       int       `json:"cell"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func newHistoryResponses(entries []*entity.HistoryEntry) []historyEntryResponse {
	items := make([]historyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyEntryResponse{
			PlayerName: entry.PlayerName,
			MovesCount: entry.MovesCount,
			Cell:       entry.Cell,
			Message:    entry.Message,
			CreatedAt:  entry.CreatedAt,
		})
	}

	return items
}
