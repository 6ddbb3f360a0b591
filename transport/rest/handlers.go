package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fairline/tictactoe-league/internal/apperror"
	"github.com/fairline/tictactoe-league/internal/entity"
	"github.com/go-chi/chi/v5"
)

const (
	msgPlayerCreated = "User %s created!"
	msgWelcome       = "Good luck playing Tic-Tac-Toe!"
	msgGotGame       = "You got game!"
	msgGameCancelled = "Game cancelled!"
	msgCannotCancel  = "Cannot cancel game. Game is over."
	msgNoHistory     = "No game history found."
)

type playerService interface {
	Register(ctx context.Context, name, email string) (*entity.Player, error)
	Rankings(ctx context.Context) ([]*entity.Player, error)
}

type gameService interface {
	StartGame(ctx context.Context, xPlayerName, oPlayerName string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	CancelGame(ctx context.Context, id string) error
}

type gamePlayService interface {
	MakeMove(ctx context.Context, gameID, playerName string, cell int) (*entity.Game, string, error)
}

type scoreService interface {
	Scores(ctx context.Context) ([]*entity.PlayerGameSummary, error)
	PlayerScores(ctx context.Context, playerName string) ([]*entity.PlayerGameSummary, error)
	PlayerGames(ctx context.Context, playerName string) ([]*entity.PlayerGameSummary, error)
	GameHistory(ctx context.Context, gameID string) ([]*entity.HistoryEntry, error)
}

type statsService interface {
	AverageMoves(ctx context.Context) (string, error)
}

type Handlers struct {
	logger *slog.Logger

	playerService   playerService
	gameService     gameService
	gamePlayService gamePlayService
	scoreService    scoreService
	statsService    statsService
}

func NewHandlers(logger *slog.Logger, playerService playerService, gameService gameService, gamePlayService gamePlayService, scoreService scoreService, statsService statsService) *Handlers {
	return &Handlers{
		logger:          logger.With("component", "handlers"),
		playerService:   playerService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
		scoreService:    scoreService,
		statsService:    statsService,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req registerPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := that.playerService.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, messageResponse{Message: fmt.Sprintf(msgPlayerCreated, player.Name)})
}

func (that *Handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.gameService.StartGame(r.Context(), req.XPlayerName, req.OPlayerName)
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameResponse(game, msgWelcome))
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game, msgGotGame))
}

func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req makeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gameID := chi.URLParam(r, "id")

	game, message, err := that.gamePlayService.MakeMove(r.Context(), gameID, req.PlayerName, req.Cell)
	if err != nil {
		// turn and bounds rejections carry a message for the caller
		if message != "" {
			that.writeError(w, statusFor(err), message)
			return
		}

		that.respondError(w, err)

		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game, message))
}

func (that *Handlers) CancelGame(w http.ResponseWriter, r *http.Request) {
	err := that.gameService.CancelGame(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, apperror.ErrGameFinished) {
		that.writeError(w, http.StatusNotFound, msgCannotCancel)
		return
	}
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, messageResponse{Message: msgGameCancelled})
}

func (that *Handlers) GetScores(w http.ResponseWriter, r *http.Request) {
	summaries, err := that.scoreService.Scores(r.Context())
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSummaryResponses(summaries))
}

func (that *Handlers) GetPlayerScores(w http.ResponseWriter, r *http.Request) {
	summaries, err := that.scoreService.PlayerScores(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSummaryResponses(summaries))
}

func (that *Handlers) GetPlayerGames(w http.ResponseWriter, r *http.Request) {
	summaries, err := that.scoreService.PlayerGames(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSummaryResponses(summaries))
}

func (that *Handlers) GetRankings(w http.ResponseWriter, r *http.Request) {
	players, err := that.playerService.Rankings(r.Context())
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newRankingResponses(players))
}

func (that *Handlers) GetGameHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := that.scoreService.GameHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.respondError(w, err)
		return
	}

	if len(entries) == 0 {
		that.writeJSON(w, http.StatusOK, messageResponse{Message: msgNoHistory})
		return
	}

	that.writeJSON(w, http.StatusOK, newHistoryResponses(entries))
}

func (that *Handlers) GetAverageMoves(w http.ResponseWriter, r *http.Request) {
	value, err := that.statsService.AverageMoves(r.Context())
	if err != nil {
		that.respondError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, messageResponse{Message: value})
}

// respondError - maps application errors onto HTTP statuses.
func (that *Handlers) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeError(w, status, "internal server error")

		return
	}

	that.writeError(w, status, rootCause(err).Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrPlayerNotFound),
		errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrNotInGame),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrPlayerAlreadyExists),
		errors.Is(err, apperror.ErrInvalidEmail),
		errors.Is(err, apperror.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// rootCause - unwraps to the sentinel so the response carries the short
// reason, not the whole wrap chain.
func rootCause(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, errorResponse{Error: message})
}
