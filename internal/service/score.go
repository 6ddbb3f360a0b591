package service

import (
	"context"
	"fmt"

	"github.com/fairline/tictactoe-league/internal/entity"
)

type ScoreService interface {
	Scores(ctx context.Context) ([]*entity.PlayerGameSummary, error)
	PlayerScores(ctx context.Context, playerName string) ([]*entity.PlayerGameSummary, error)
	PlayerGames(ctx context.Context, playerName string) ([]*entity.PlayerGameSummary, error)
	GameHistory(ctx context.Context, gameID string) ([]*entity.HistoryEntry, error)
}

type scoreService struct {
	playerRepo  playerRepo
	gameRepo    gameRepo
	summaryRepo summaryRepo
	historyRepo historyRepo
}

func NewScoreService(playerRepo playerRepo, gameRepo gameRepo, summaryRepo summaryRepo, historyRepo historyRepo) ScoreService {
	return &scoreService{
		playerRepo:  playerRepo,
		gameRepo:    gameRepo,
		summaryRepo: summaryRepo,
		historyRepo: historyRepo,
	}
}

// Scores - every terminal per-player game summary.
func (that *scoreService) Scores(ctx context.Context) ([]*entity.PlayerGameSummary, error) {
	summaries, err := that.summaryRepo.ListTerminal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list terminal summaries: %w", err)
	}

	return summaries, nil
}

// PlayerScores - one player's terminal summaries.
func (that *scoreService) PlayerScores(ctx context.Context, playerName string) ([]*entity.PlayerGameSummary, error) {
	return that.listForPlayer(ctx, playerName, true)
}

// PlayerGames - one player's still-active summaries.
func (that *scoreService) PlayerGames(ctx context.Context, playerName string) ([]*entity.PlayerGameSummary, error) {
	return that.listForPlayer(ctx, playerName, false)
}

func (that *scoreService) listForPlayer(ctx context.Context, playerName string, gameOver bool) ([]*entity.PlayerGameSummary, error) {
	player, err := that.playerRepo.GetByName(ctx, playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}

	summaries, err := that.summaryRepo.ListByPlayer(ctx, player.Name, gameOver)
	if err != nil {
		return nil, fmt.Errorf("failed to list player summaries: %w", err)
	}

	return summaries, nil
}

// GameHistory - the game's move attempts in insertion order.
func (that *scoreService) GameHistory(ctx context.Context, gameID string) ([]*entity.HistoryEntry, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	entries, err := that.historyRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game history: %w", err)
	}

	return entries, nil
}
