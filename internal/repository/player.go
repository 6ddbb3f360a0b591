package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fairline/tictactoe-league/internal/apperror"
	"github.com/fairline/tictactoe-league/internal/entity"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *entity.Player) error
	GetByName(ctx context.Context, name string) (*entity.Player, error)
	ListAll(ctx context.Context) ([]*entity.Player, error)
}

type playerRepository struct {
	conn *sql.DB
}

func NewPlayerRepository(conn *sql.DB) PlayerRepository {
	return &playerRepository{
		conn: conn,
	}
}

func (that *playerRepository) Create(ctx context.Context, player *entity.Player) error {
	query := `INSERT INTO players (name, email, wins, losses, moves_on_wins, win_rate, avg_win_moves)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		player.Name, player.Email, player.Wins, player.Losses,
		player.MovesOnWins, player.WinRate, player.AvgWinMoves)
	if err != nil {
		return fmt.Errorf("can't save player: %w", err)
	}

	return nil
}

func (that *playerRepository) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	query := `SELECT name, email, wins, losses, moves_on_wins, win_rate, avg_win_moves
		FROM players WHERE name = ?`

	var player entity.Player

	err := that.conn.QueryRowContext(ctx, query, name).Scan(
		&player.Name, &player.Email, &player.Wins, &player.Losses,
		&player.MovesOnWins, &player.WinRate, &player.AvgWinMoves)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find player: %w", err)
	}

	return &player, nil
}

func (that *playerRepository) ListAll(ctx context.Context) ([]*entity.Player, error) {
	query := `SELECT name, email, wins, losses, moves_on_wins, win_rate, avg_win_moves FROM players`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list players: %w", err)
	}
	defer rows.Close()

	var players []*entity.Player

	for rows.Next() {
		var player entity.Player
		if err = rows.Scan(
			&player.Name, &player.Email, &player.Wins, &player.Losses,
			&player.MovesOnWins, &player.WinRate, &player.AvgWinMoves); err != nil {
			return nil, fmt.Errorf("can't scan player: %w", err)
		}

		players = append(players, &player)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read players: %w", err)
	}

	return players, nil
}
