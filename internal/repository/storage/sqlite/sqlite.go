package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/mattn/go-sqlite3"
)

type Storage struct {
	Connection *sql.DB
}

func New(path string) (*Storage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS players (
			name TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			moves_on_wins INTEGER NOT NULL DEFAULT 0,
			win_rate REAL NOT NULL DEFAULT 0,
			avg_win_moves REAL NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			board TEXT NOT NULL,
			x_player TEXT NOT NULL REFERENCES players(name),
			o_player TEXT NOT NULL REFERENCES players(name),
			moves_count INTEGER NOT NULL DEFAULT 0,
			game_over INTEGER NOT NULL DEFAULT 0,
			end_date TIMESTAMP,
			version INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS player_games (
			game_id TEXT NOT NULL REFERENCES games(id),
			player_name TEXT NOT NULL REFERENCES players(name),
			game_over INTEGER NOT NULL DEFAULT 0,
			win_status TEXT NOT NULL DEFAULT '',
			moves_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (game_id, player_name)
		)`,
		`CREATE TABLE IF NOT EXISTS game_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			moves_count INTEGER NOT NULL,
			cell INTEGER NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := that.Connection.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("can't create table: %w", err)
		}
	}

	return nil
}

func (that *Storage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
