package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/fairline/tictactoe-league/internal/apperror"
	"github.com/fairline/tictactoe-league/internal/entity"
)

// emailPattern - a syntactic plausibility check, not full RFC validation.
var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

type PlayerService interface {
	Register(ctx context.Context, name, email string) (*entity.Player, error)
	GetByName(ctx context.Context, name string) (*entity.Player, error)
	Rankings(ctx context.Context) ([]*entity.Player, error)
}

type playerRepo interface {
	Create(ctx context.Context, player *entity.Player) error
	GetByName(ctx context.Context, name string) (*entity.Player, error)
	ListAll(ctx context.Context) ([]*entity.Player, error)
}

type playerService struct {
	playerRepo playerRepo
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

// Register - creates a player with a unique name and a plausible email.
func (that *playerService) Register(ctx context.Context, name, email string) (*entity.Player, error) {
	if !emailPattern.MatchString(email) {
		return nil, apperror.ErrInvalidEmail
	}

	_, err := that.playerRepo.GetByName(ctx, name)
	if err == nil {
		return nil, apperror.ErrPlayerAlreadyExists
	}
	if !errors.Is(err, apperror.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to check player name: %w", err)
	}

	player := entity.NewPlayer(name, email)
	if err = that.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *playerService) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}

	return player, nil
}

// Rankings - a fresh projection over all players: win rate descending, then
// win count descending, then average winning moves ascending.
func (that *playerService) Rankings(ctx context.Context) ([]*entity.Player, error) {
	players, err := that.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.AvgWinMoves < b.AvgWinMoves
	})

	return players, nil
}
