package service

import (
	"context"
	"fmt"

	"github.com/fairline/tictactoe-league/internal/apperror"
	"github.com/fairline/tictactoe-league/internal/entity"
	"github.com/google/uuid"
)

type GameService interface {
	StartGame(ctx context.Context, xPlayerName, oPlayerName string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	CancelGame(ctx context.Context, id string) error
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game, summaries []*entity.PlayerGameSummary) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Finish(ctx context.Context, game *entity.Game, summaries []*entity.PlayerGameSummary, players []*entity.Player) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*entity.Game, error)
}

type gameService struct {
	playerRepo playerRepo
	gameRepo   gameRepo
}

func NewGameService(playerRepo playerRepo, gameRepo gameRepo) GameService {
	return &gameService{
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
	}
}

// StartGame - pairs two registered players into a fresh game. The game and
// both player summaries are created together.
func (that *gameService) StartGame(ctx context.Context, xPlayerName, oPlayerName string) (*entity.Game, error) {
	xPlayer, err := that.playerRepo.GetByName(ctx, xPlayerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get X player: %w", err)
	}

	oPlayer, err := that.playerRepo.GetByName(ctx, oPlayerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get O player: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), xPlayer.Name, oPlayer.Name)
	summaries := []*entity.PlayerGameSummary{
		entity.NewPlayerGameSummary(game.ID, xPlayer.Name),
		entity.NewPlayerGameSummary(game.ID, oPlayer.Name),
	}

	if err = that.gameRepo.Create(ctx, game, summaries); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// CancelGame - removes an in-progress game with its summaries and history.
// Terminal games are immutable and can't be cancelled.
func (that *gameService) CancelGame(ctx context.Context, id string) error {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err = that.gameRepo.Delete(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
