package service

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	reminderSubject = "This is a reminder!"
	firstMoveBody   = "Hello %s, Make your first move!"
	yourTurnBody    = "Hello %s, %s just made a move. It is your turn to win the game!"
)

type ReminderService interface {
	SendReminders(ctx context.Context) error
}

type mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type reminderService struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	mailer     mailer
}

func NewReminderService(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, mailer mailer) ReminderService {
	return &reminderService{
		logger:     logger,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		mailer:     mailer,
	}
}

// SendReminders - sweeps all active games and mails whichever player owes the
// next move. A failed mail is logged and the sweep continues.
func (that *reminderService) SendReminders(ctx context.Context) error {
	log := that.logger.With("component", "reminder")

	games, err := that.gameRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active games: %w", err)
	}

	for _, game := range games {
		nextPlayer := game.NextPlayer()

		player, err := that.playerRepo.GetByName(ctx, nextPlayer)
		if err != nil {
			log.Error("failed to get player", "player", nextPlayer, "error", err)
			continue
		}

		body := fmt.Sprintf(firstMoveBody, player.Name)
		if game.MovesCount > 0 {
			body = fmt.Sprintf(yourTurnBody, player.Name, game.Opponent(player.Name))
		}

		if err = that.mailer.Send(ctx, player.Email, reminderSubject, body); err != nil {
			log.Error("failed to send reminder", "player", player.Name, "error", err)
			continue
		}

		log.Debug("reminder sent", "game_id", game.ID, "player", player.Name)
	}

	return nil
}
