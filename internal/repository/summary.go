package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fairline/tictactoe-league/internal/entity"
)

type SummaryRepository interface {
	GetByGame(ctx context.Context, gameID string) ([]*entity.PlayerGameSummary, error)
	ListTerminal(ctx context.Context) ([]*entity.PlayerGameSummary, error)
	ListByPlayer(ctx context.Context, playerName string, gameOver bool) ([]*entity.PlayerGameSummary, error)
}

type summaryRepository struct {
	conn *sql.DB
}

func NewSummaryRepository(conn *sql.DB) SummaryRepository {
	return &summaryRepository{
		conn: conn,
	}
}

func (that *summaryRepository) GetByGame(ctx context.Context, gameID string) ([]*entity.PlayerGameSummary, error) {
	query := `SELECT game_id, player_name, game_over, win_status, moves_count
		FROM player_games WHERE game_id = ?`

	return that.list(ctx, query, gameID)
}

func (that *summaryRepository) ListTerminal(ctx context.Context) ([]*entity.PlayerGameSummary, error) {
	query := `SELECT game_id, player_name, game_over, win_status, moves_count
		FROM player_games WHERE game_over = 1`

	return that.list(ctx, query)
}

func (that *summaryRepository) ListByPlayer(ctx context.Context, playerName string, gameOver bool) ([]*entity.PlayerGameSummary, error) {
	query := `SELECT game_id, player_name, game_over, win_status, moves_count
		FROM player_games WHERE player_name = ? AND game_over = ?`

	return that.list(ctx, query, playerName, gameOver)
}

func (that *summaryRepository) list(ctx context.Context, query string, args ...any) ([]*entity.PlayerGameSummary, error) {
	rows, err := that.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*entity.PlayerGameSummary

	for rows.Next() {
		var summary entity.PlayerGameSummary
		if err = rows.Scan(&summary.GameID, &summary.PlayerName,
			&summary.GameOver, &summary.WinStatus, &summary.MovesCount); err != nil {
			return nil, fmt.Errorf("can't scan summary: %w", err)
		}

		summaries = append(summaries, &summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read summaries: %w", err)
	}

	return summaries, nil
}
