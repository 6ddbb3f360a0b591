package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairline/tictactoe-league/internal/apperror"
	"github.com/fairline/tictactoe-league/internal/entity"
	"github.com/fairline/tictactoe-league/internal/tictactoe"
)

const (
	MsgGameAlreadyOver = "Game already over!"
	MsgMoveForOPlayer  = "Move rejected. Next move must be from the O player."
	MsgMoveForXPlayer  = "Move rejected. Next move must be from the X player."
	MsgInvalidCell     = "Invalid move! Choose a cell from 0 to 8."
	MsgCellOccupied    = "Move is no longer available."
	MsgWin             = "You win!"
	MsgDraw            = "Game over! No winner."
	MsgNoWinnerYet     = "No winner yet. Good luck on your next move."
)

type GamePlayService interface {
	MakeMove(ctx context.Context, gameID, playerName string, cell int) (*entity.Game, string, error)
}

type summaryRepo interface {
	GetByGame(ctx context.Context, gameID string) ([]*entity.PlayerGameSummary, error)
	ListTerminal(ctx context.Context) ([]*entity.PlayerGameSummary, error)
	ListByPlayer(ctx context.Context, playerName string, gameOver bool) ([]*entity.PlayerGameSummary, error)
}

type historyRepo interface {
	Append(ctx context.Context, entry *entity.HistoryEntry) error
	ListByGame(ctx context.Context, gameID string) ([]*entity.HistoryEntry, error)
}

type gamePlayService struct {
	logger *slog.Logger

	playerRepo  playerRepo
	gameRepo    gameRepo
	summaryRepo summaryRepo
	historyRepo historyRepo
}

func NewGamePlayService(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, summaryRepo summaryRepo, historyRepo historyRepo) GamePlayService {
	return &gamePlayService{
		logger:      logger,
		playerRepo:  playerRepo,
		gameRepo:    gameRepo,
		summaryRepo: summaryRepo,
		historyRepo: historyRepo,
	}
}

// MakeMove - runs one move attempt through the full pipeline: terminal check,
// membership, turn parity, bounds, occupancy, then application and win
// detection. Every attempt past the membership check lands in the history
// log, accepted or not. Rejections leave the board and move counter untouched.
func (that *gamePlayService) MakeMove(ctx context.Context, gameID, playerName string, cell int) (*entity.Game, string, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.IsFinished() {
		return game, MsgGameAlreadyOver, nil
	}

	player, err := that.playerRepo.GetByName(ctx, playerName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get player by name: %w", err)
	}

	if !game.HasPlayer(player.Name) {
		return nil, "", apperror.ErrNotInGame
	}

	attempt := game.MovesCount + 1

	if game.NextMark() != game.MarkFor(player.Name) {
		msg := MsgMoveForXPlayer
		if game.NextMark() == entity.PlayerO {
			msg = MsgMoveForOPlayer
		}

		if err = that.appendHistory(ctx, game, player.Name, attempt, cell, msg); err != nil {
			return nil, "", err
		}

		return game, msg, apperror.ErrNotYourTurn
	}

	if !tictactoe.ValidCell(cell) {
		if err = that.appendHistory(ctx, game, player.Name, attempt, cell, MsgInvalidCell); err != nil {
			return nil, "", err
		}

		return game, MsgInvalidCell, apperror.ErrInvalidCell
	}

	if game.Board[cell] != entity.EmptyCell {
		if err = that.appendHistory(ctx, game, player.Name, attempt, cell, MsgCellOccupied); err != nil {
			return nil, "", err
		}

		// recoverable: the caller gets the unchanged game back, not an error
		return game, MsgCellOccupied, nil
	}

	game.MovesCount++
	game.Board[cell] = game.MarkFor(player.Name)

	switch {
	case tictactoe.Winner(game.Board) != entity.EmptyCell:
		if err = that.appendHistory(ctx, game, player.Name, game.MovesCount, cell, MsgWin); err != nil {
			return nil, "", err
		}

		if err = that.finishGame(ctx, game, player.Name); err != nil {
			return nil, "", err
		}

		return game, MsgWin, nil

	case game.MovesCount >= entity.BoardSize:
		if err = that.appendHistory(ctx, game, player.Name, game.MovesCount, cell, MsgDraw); err != nil {
			return nil, "", err
		}

		if err = that.finishGame(ctx, game, ""); err != nil {
			return nil, "", err
		}

		return game, MsgDraw, nil

	default:
		if err = that.appendHistory(ctx, game, player.Name, game.MovesCount, cell, MsgNoWinnerYet); err != nil {
			return nil, "", err
		}

		if err = that.gameRepo.Update(ctx, game); err != nil {
			return nil, "", fmt.Errorf("failed to update game: %w", err)
		}

		return game, MsgNoWinnerYet, nil
	}
}

// finishGame - settles a won or drawn game: both summaries get their outcome
// and final move count, and on a win both players' counters are updated. The
// repository persists all of it in one transaction.
func (that *gamePlayService) finishGame(ctx context.Context, game *entity.Game, winnerName string) error {
	game.Finish(time.Now().UTC())

	summaries, err := that.summaryRepo.GetByGame(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to get game summaries: %w", err)
	}

	var players []*entity.Player

	for _, summary := range summaries {
		if winnerName == "" {
			summary.Settle(entity.OutcomeDraw, game.MovesCount)
			continue
		}

		player, err := that.playerRepo.GetByName(ctx, summary.PlayerName)
		if err != nil {
			return fmt.Errorf("failed to get player by name: %w", err)
		}

		if player.Name == winnerName {
			summary.Settle(entity.OutcomeWin, game.MovesCount)
			player.RecordWin(game.MovesCount)
		} else {
			summary.Settle(entity.OutcomeLose, game.MovesCount)
			player.RecordLoss()
		}

		players = append(players, player)
	}

	if err = that.gameRepo.Finish(ctx, game, summaries, players); err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}

	that.logger.Info("game finished", "game_id", game.ID, "winner", winnerName, "moves", game.MovesCount)

	return nil
}

func (that *gamePlayService) appendHistory(ctx context.Context, game *entity.Game, playerName string, movesCount, cell int, message string) error {
	entry := &entity.HistoryEntry{
		GameID:     game.ID,
		PlayerName: playerName,
		MovesCount: movesCount,
		Cell:       cell,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}

	if err := that.historyRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}
