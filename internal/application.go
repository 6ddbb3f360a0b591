package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fairline/tictactoe-league/internal/config"
	"github.com/fairline/tictactoe-league/internal/mailer"
	"github.com/fairline/tictactoe-league/internal/repository"
	"github.com/fairline/tictactoe-league/internal/repository/storage"
	"github.com/fairline/tictactoe-league/internal/repository/storage/sqlite"
	"github.com/fairline/tictactoe-league/internal/scheduler"
	"github.com/fairline/tictactoe-league/internal/service"
	"github.com/fairline/tictactoe-league/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(sqliteStorage.Connection)
	gameRepo := repository.NewGameRepository(sqliteStorage.Connection)
	summaryRepo := repository.NewSummaryRepository(sqliteStorage.Connection)
	historyRepo := repository.NewHistoryRepository(sqliteStorage.Connection)
	statsCache := repository.NewStatsCache(redisStorage)

	appMailer := buildMailer(logger, conf)

	playerService := service.NewPlayerService(playerRepo)
	gameService := service.NewGameService(playerRepo, gameRepo)
	gamePlayService := service.NewGamePlayService(logger, playerRepo, gameRepo, summaryRepo, historyRepo)
	scoreService := service.NewScoreService(playerRepo, gameRepo, summaryRepo, historyRepo)
	statsService := service.NewStatsService(gameRepo, statsCache)
	reminderService := service.NewReminderService(logger, playerRepo, gameRepo, appMailer)

	jobs, err := startJobs(ctx, logger, conf, reminderService, statsService)
	if err != nil {
		return err
	}

	defer func() {
		if err = jobs.Stop(); err != nil {
			log.Error("could not stop scheduler", "error", err)
		}
	}()

	handlers := rest.NewHandlers(logger, playerService, gameService, gamePlayService, scoreService, statsService)
	server := rest.New(logger, handlers, conf.HTTPPort)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := server.Start(ctx); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func buildMailer(logger *slog.Logger, conf *config.Config) mailer.Mailer {
	if conf.SMTP.Host == "" {
		return mailer.NewLog(logger)
	}

	smtpMailer, err := mailer.NewSMTP(conf.SMTP)
	if err != nil {
		logger.Error("could not create SMTP mailer, falling back to log mailer", "error", err)
		return mailer.NewLog(logger)
	}

	return smtpMailer
}

func startJobs(ctx context.Context, logger *slog.Logger, conf *config.Config, reminderService service.ReminderService, statsService service.StatsService) (*scheduler.Scheduler, error) {
	log := logger.With("component", "jobs")

	jobs, err := scheduler.New(logger)
	if err != nil {
		return nil, fmt.Errorf("could not create scheduler: %w", err)
	}

	err = jobs.AddJob("send-reminders", conf.Scheduler.ReminderInterval, func() {
		if err := reminderService.SendReminders(ctx); err != nil {
			log.Error("reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	err = jobs.AddJob("refresh-average-moves", conf.Scheduler.AverageMovesInterval, func() {
		if err := statsService.RefreshAverageMoves(ctx); err != nil {
			log.Error("average moves refresh failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	jobs.Start()

	return jobs, nil
}
