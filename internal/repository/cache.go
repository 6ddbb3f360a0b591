package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const averageMovesKey = "stats:average-moves"

// StatsCache - fast read cache for the precomputed average-moves string.
type StatsCache interface {
	GetAverageMoves(ctx context.Context) (string, error)
	SetAverageMoves(ctx context.Context, value string) error
}

type statsCache struct {
	client *redis.Client
}

func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{
		client: client,
	}
}

// GetAverageMoves - returns the cached string, or "" when it was never set.
func (that *statsCache) GetAverageMoves(ctx context.Context) (string, error) {
	response, err := that.client.Get(ctx, averageMovesKey).Result()

	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to get average moves: %w", err)
	}

	return response, nil
}

func (that *statsCache) SetAverageMoves(ctx context.Context, value string) error {
	if err := that.client.Set(ctx, averageMovesKey, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set average moves: %w", err)
	}

	return nil
}
