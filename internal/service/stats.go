package service

import (
	"context"
	"fmt"
)

const averageMovesFormat = "The average moves is %.2f"

type StatsService interface {
	RefreshAverageMoves(ctx context.Context) error
	AverageMoves(ctx context.Context) (string, error)
}

type statsCache interface {
	GetAverageMoves(ctx context.Context) (string, error)
	SetAverageMoves(ctx context.Context, value string) error
}

type statsService struct {
	gameRepo gameRepo
	cache    statsCache
}

func NewStatsService(gameRepo gameRepo, cache statsCache) StatsService {
	return &statsService{
		gameRepo: gameRepo,
		cache:    cache,
	}
}

// RefreshAverageMoves - recomputes the mean move count over active games and
// stores the formatted string in the cache. With no active games the cache is
// left as is.
func (that *statsService) RefreshAverageMoves(ctx context.Context) error {
	games, err := that.gameRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active games: %w", err)
	}

	if len(games) == 0 {
		return nil
	}

	var totalMoves int
	for _, game := range games {
		totalMoves += game.MovesCount
	}

	average := float64(totalMoves) / float64(len(games))

	if err = that.cache.SetAverageMoves(ctx, fmt.Sprintf(averageMovesFormat, average)); err != nil {
		return fmt.Errorf("failed to cache average moves: %w", err)
	}

	return nil
}

// AverageMoves - the cached string; empty when never computed.
func (that *statsService) AverageMoves(ctx context.Context) (string, error) {
	value, err := that.cache.GetAverageMoves(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get cached average moves: %w", err)
	}

	return value, nil
}
