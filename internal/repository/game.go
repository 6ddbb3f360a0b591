package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fairline/tictactoe-league/internal/apperror"
	"github.com/fairline/tictactoe-league/internal/entity"
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game, summaries []*entity.PlayerGameSummary) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Finish(ctx context.Context, game *entity.Game, summaries []*entity.PlayerGameSummary, players []*entity.Player) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*entity.Game, error)
}

type gameRepository struct {
	conn *sql.DB
}

func NewGameRepository(conn *sql.DB) GameRepository {
	return &gameRepository{
		conn: conn,
	}
}

// Create - inserts the game together with both player summaries in one
// transaction, so a crash can't leave a game without its summaries.
func (that *gameRepository) Create(ctx context.Context, game *entity.Game, summaries []*entity.PlayerGameSummary) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `INSERT INTO games (id, board, x_player, o_player, moves_count, game_over, end_date, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		game.ID, encodeBoard(game.Board), game.XPlayer, game.OPlayer,
		game.MovesCount, game.GameOver, nullableTime(game.EndDate), game.Version)
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	for _, summary := range summaries {
		if err = insertSummary(ctx, tx, summary); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit game: %w", err)
	}

	return nil
}

func (that *gameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	query := `SELECT id, board, x_player, o_player, moves_count, game_over, end_date, version
		FROM games WHERE id = ?`

	return scanGame(that.conn.QueryRowContext(ctx, query, id))
}

// Update - persists a mutated game conditioned on the version it was read at.
// A lost race surfaces as ErrVersionConflict instead of a silent lost update.
func (that *gameRepository) Update(ctx context.Context, game *entity.Game) error {
	query := `UPDATE games SET board = ?, moves_count = ?, game_over = ?, end_date = ?, version = version + 1
		WHERE id = ? AND version = ?`

	result, err := that.conn.ExecContext(ctx, query,
		encodeBoard(game.Board), game.MovesCount, game.GameOver,
		nullableTime(game.EndDate), game.ID, game.Version)
	if err != nil {
		return fmt.Errorf("can't update game: %w", err)
	}

	if err = ensureUpdated(ctx, that.conn, result, game.ID); err != nil {
		return err
	}

	game.Version++

	return nil
}

// Finish - settles a terminal game: the game row, both summaries and any
// changed player counters are written in a single transaction.
func (that *gameRepository) Finish(ctx context.Context, game *entity.Game, summaries []*entity.PlayerGameSummary, players []*entity.Player) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `UPDATE games SET board = ?, moves_count = ?, game_over = ?, end_date = ?, version = version + 1
		WHERE id = ? AND version = ?`

	result, err := tx.ExecContext(ctx, query,
		encodeBoard(game.Board), game.MovesCount, game.GameOver,
		nullableTime(game.EndDate), game.ID, game.Version)
	if err != nil {
		return fmt.Errorf("can't update game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't check update result: %w", err)
	}
	if rows == 0 {
		return apperror.ErrVersionConflict
	}

	for _, summary := range summaries {
		query = `UPDATE player_games SET game_over = ?, win_status = ?, moves_count = ?
			WHERE game_id = ? AND player_name = ?`

		if _, err = tx.ExecContext(ctx, query,
			summary.GameOver, summary.WinStatus, summary.MovesCount,
			summary.GameID, summary.PlayerName); err != nil {
			return fmt.Errorf("can't update summary: %w", err)
		}
	}

	for _, player := range players {
		query = `UPDATE players SET wins = ?, losses = ?, moves_on_wins = ?, win_rate = ?, avg_win_moves = ?
			WHERE name = ?`

		if _, err = tx.ExecContext(ctx, query,
			player.Wins, player.Losses, player.MovesOnWins,
			player.WinRate, player.AvgWinMoves, player.Name); err != nil {
			return fmt.Errorf("can't update player: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit game result: %w", err)
	}

	game.Version++

	return nil
}

// Delete - removes the game, its summaries and its history as a unit.
func (that *gameRepository) Delete(ctx context.Context, id string) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err = tx.ExecContext(ctx, `DELETE FROM game_history WHERE game_id = ?`, id); err != nil {
		return fmt.Errorf("can't delete game history: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM player_games WHERE game_id = ?`, id); err != nil {
		return fmt.Errorf("can't delete summaries: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("can't delete game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't check delete result: %w", err)
	}
	if rows == 0 {
		return apperror.ErrGameNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit delete: %w", err)
	}

	return nil
}

func (that *gameRepository) ListActive(ctx context.Context) ([]*entity.Game, error) {
	query := `SELECT id, board, x_player, o_player, moves_count, game_over, end_date, version
		FROM games WHERE game_over = 0`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list active games: %w", err)
	}
	defer rows.Close()

	var games []*entity.Game

	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read games: %w", err)
	}

	return games, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*entity.Game, error) {
	var (
		game    entity.Game
		board   string
		endDate sql.NullTime
	)

	err := row.Scan(&game.ID, &board, &game.XPlayer, &game.OPlayer,
		&game.MovesCount, &game.GameOver, &endDate, &game.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't scan game: %w", err)
	}

	game.Board, err = decodeBoard(board)
	if err != nil {
		return nil, err
	}

	if endDate.Valid {
		game.EndDate = &endDate.Time
	}

	return &game, nil
}

// ensureUpdated - distinguishes a version conflict from a missing game when
// a conditioned UPDATE touched no rows.
func ensureUpdated(ctx context.Context, conn *sql.DB, result sql.Result, gameID string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't check update result: %w", err)
	}

	if rows > 0 {
		return nil
	}

	var exists int
	err = conn.QueryRowContext(ctx, `SELECT COUNT(1) FROM games WHERE id = ?`, gameID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("can't check game existence: %w", err)
	}

	if exists == 0 {
		return apperror.ErrGameNotFound
	}

	return apperror.ErrVersionConflict
}

func insertSummary(ctx context.Context, tx *sql.Tx, summary *entity.PlayerGameSummary) error {
	query := `INSERT INTO player_games (game_id, player_name, game_over, win_status, moves_count)
		VALUES (?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query,
		summary.GameID, summary.PlayerName, summary.GameOver,
		summary.WinStatus, summary.MovesCount)
	if err != nil {
		return fmt.Errorf("can't save summary: %w", err)
	}

	return nil
}

// The board is stored as a 9-character string, one mark per cell.
func encodeBoard(board [entity.BoardSize]string) string {
	return strings.Join(board[:], "")
}

var errMalformedBoard = errors.New("malformed board")

func decodeBoard(raw string) ([entity.BoardSize]string, error) {
	var board [entity.BoardSize]string

	cells := strings.Split(raw, "")
	if len(cells) != entity.BoardSize {
		return board, fmt.Errorf("%w: %q", errMalformedBoard, raw)
	}

	copy(board[:], cells)

	return board, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return *t
}
