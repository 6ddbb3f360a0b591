package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fairline/tictactoe-league/internal/entity"
)

type HistoryRepository interface {
	Append(ctx context.Context, entry *entity.HistoryEntry) error
	ListByGame(ctx context.Context, gameID string) ([]*entity.HistoryEntry, error)
}

type historyRepository struct {
	conn *sql.DB
}

func NewHistoryRepository(conn *sql.DB) HistoryRepository {
	return &historyRepository{
		conn: conn,
	}
}

func (that *historyRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	query := `INSERT INTO game_history (game_id, player_name, moves_count, cell, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := that.conn.ExecContext(ctx, query,
		entry.GameID, entry.PlayerName, entry.MovesCount,
		entry.Cell, entry.Message, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("can't save history entry: %w", err)
	}

	if entry.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("can't read history entry id: %w", err)
	}

	return nil
}

func (that *historyRepository) ListByGame(ctx context.Context, gameID string) ([]*entity.HistoryEntry, error) {
	query := `SELECT id, game_id, player_name, moves_count, cell, message, created_at
		FROM game_history WHERE game_id = ? ORDER BY id`

	rows, err := that.conn.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("can't list history: %w", err)
	}
	defer rows.Close()

	var entries []*entity.HistoryEntry

	for rows.Next() {
		var entry entity.HistoryEntry
		if err = rows.Scan(&entry.ID, &entry.GameID, &entry.PlayerName,
			&entry.MovesCount, &entry.Cell, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("can't scan history entry: %w", err)
		}

		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read history: %w", err)
	}

	return entries, nil
}
