package service

import (
	"context"

	"github.com/fairline/tictactoe-league/internal/apperror"
	"github.com/fairline/tictactoe-league/internal/entity"
)

// memStore - in-memory stand-in for the sqlite repositories. Values are
// copied in and out so tests catch accidental mutation through shared
// pointers, the same way the real store would.
type memStore struct {
	players   map[string]entity.Player
	games     map[string]entity.Game
	summaries map[string][]entity.PlayerGameSummary
	history   map[string][]entity.HistoryEntry
}

func newMemStore() *memStore {
	return &memStore{
		players:   make(map[string]entity.Player),
		games:     make(map[string]entity.Game),
		summaries: make(map[string][]entity.PlayerGameSummary),
		history:   make(map[string][]entity.HistoryEntry),
	}
}

type memPlayerRepo struct{ store *memStore }

func (that *memPlayerRepo) Create(_ context.Context, player *entity.Player) error {
	that.store.players[player.Name] = *player
	return nil
}

func (that *memPlayerRepo) GetByName(_ context.Context, name string) (*entity.Player, error) {
	player, ok := that.store.players[name]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return &player, nil
}

func (that *memPlayerRepo) ListAll(_ context.Context) ([]*entity.Player, error) {
	players := make([]*entity.Player, 0, len(that.store.players))
	for name := range that.store.players {
		player := that.store.players[name]
		players = append(players, &player)
	}

	return players, nil
}

type memGameRepo struct{ store *memStore }

func (that *memGameRepo) Create(_ context.Context, game *entity.Game, summaries []*entity.PlayerGameSummary) error {
	that.store.games[game.ID] = *game
	for _, summary := range summaries {
		that.store.summaries[game.ID] = append(that.store.summaries[game.ID], *summary)
	}

	return nil
}

func (that *memGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.store.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &game, nil
}

func (that *memGameRepo) Update(_ context.Context, game *entity.Game) error {
	stored, ok := that.store.games[game.ID]
	if !ok {
		return apperror.ErrGameNotFound
	}

	if stored.Version != game.Version {
		return apperror.ErrVersionConflict
	}

	game.Version++
	that.store.games[game.ID] = *game

	return nil
}

func (that *memGameRepo) Finish(ctx context.Context, game *entity.Game, summaries []*entity.PlayerGameSummary, players []*entity.Player) error {
	if err := that.Update(ctx, game); err != nil {
		return err
	}

	updated := make([]entity.PlayerGameSummary, 0, len(summaries))
	for _, summary := range summaries {
		updated = append(updated, *summary)
	}
	that.store.summaries[game.ID] = updated

	for _, player := range players {
		that.store.players[player.Name] = *player
	}

	return nil
}

func (that *memGameRepo) Delete(_ context.Context, id string) error {
	if _, ok := that.store.games[id]; !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.store.games, id)
	delete(that.store.summaries, id)
	delete(that.store.history, id)

	return nil
}

func (that *memGameRepo) ListActive(_ context.Context) ([]*entity.Game, error) {
	var games []*entity.Game
	for id := range that.store.games {
		game := that.store.games[id]
		if !game.GameOver {
			games = append(games, &game)
		}
	}

	return games, nil
}

type memSummaryRepo struct{ store *memStore }

func (that *memSummaryRepo) GetByGame(_ context.Context, gameID string) ([]*entity.PlayerGameSummary, error) {
	return copySummaries(that.store.summaries[gameID], func(entity.PlayerGameSummary) bool { return true }), nil
}

func (that *memSummaryRepo) ListTerminal(_ context.Context) ([]*entity.PlayerGameSummary, error) {
	var summaries []*entity.PlayerGameSummary
	for gameID := range that.store.summaries {
		summaries = append(summaries, copySummaries(that.store.summaries[gameID], func(s entity.PlayerGameSummary) bool {
			return s.GameOver
		})...)
	}

	return summaries, nil
}

func (that *memSummaryRepo) ListByPlayer(_ context.Context, playerName string, gameOver bool) ([]*entity.PlayerGameSummary, error) {
	var summaries []*entity.PlayerGameSummary
	for gameID := range that.store.summaries {
		summaries = append(summaries, copySummaries(that.store.summaries[gameID], func(s entity.PlayerGameSummary) bool {
			return s.PlayerName == playerName && s.GameOver == gameOver
		})...)
	}

	return summaries, nil
}

func copySummaries(stored []entity.PlayerGameSummary, keep func(entity.PlayerGameSummary) bool) []*entity.PlayerGameSummary {
	var summaries []*entity.PlayerGameSummary
	for i := range stored {
		if keep(stored[i]) {
			summary := stored[i]
			summaries = append(summaries, &summary)
		}
	}

	return summaries
}

type memHistoryRepo struct{ store *memStore }

func (that *memHistoryRepo) Append(_ context.Context, entry *entity.HistoryEntry) error {
	entry.ID = int64(len(that.store.history[entry.GameID]) + 1)
	that.store.history[entry.GameID] = append(that.store.history[entry.GameID], *entry)

	return nil
}

func (that *memHistoryRepo) ListByGame(_ context.Context, gameID string) ([]*entity.HistoryEntry, error) {
	stored := that.store.history[gameID]

	entries := make([]*entity.HistoryEntry, 0, len(stored))
	for i := range stored {
		entry := stored[i]
		entries = append(entries, &entry)
	}

	return entries, nil
}

type memCache struct {
	value string
	isSet bool
}

func (that *memCache) GetAverageMoves(_ context.Context) (string, error) {
	return that.value, nil
}

func (that *memCache) SetAverageMoves(_ context.Context, value string) error {
	that.value = value
	that.isSet = true

	return nil
}

type recordingMailer struct {
	recipients []string
	subjects   []string
	bodies     []string
}

func (that *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	that.recipients = append(that.recipients, to)
	that.subjects = append(that.subjects, subject)
	that.bodies = append(that.bodies, body)

	return nil
}
