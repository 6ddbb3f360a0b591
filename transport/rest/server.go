package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

func New(logger *slog.Logger, handlers *Handlers, port string) *Server {
	router := newRouter(handlers)

	return &Server{
		logger: logger.With("component", "rest"),
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

func newRouter(handlers *Handlers) chi.Router {
	router := chi.NewRouter()

	router.Get("/ping", handlers.Ping)

	router.Post("/players", handlers.RegisterPlayer)
	router.Route("/players/{name}", func(r chi.Router) {
		r.Get("/scores", handlers.GetPlayerScores)
		r.Get("/games", handlers.GetPlayerGames)
	})

	router.Post("/games", handlers.StartGame)
	router.Get("/games/average-moves", handlers.GetAverageMoves)
	router.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", handlers.GetGame)
		r.Put("/moves", handlers.MakeMove)
		r.Delete("/", handlers.CancelGame)
		r.Get("/history", handlers.GetGameHistory)
	})

	router.Get("/scores", handlers.GetScores)
	router.Get("/rankings", handlers.GetRankings)

	return router
}

// Start - serves until the context is cancelled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := that.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := that.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		that.logger.Info("server stopped")

		return nil
	}
}
