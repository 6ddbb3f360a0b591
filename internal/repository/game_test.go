package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/fairline/tictactoe-league/internal/apperror"
	"github.com/fairline/tictactoe-league/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGame(t *testing.T, ctx context.Context, conn *sql.DB, id string) *entity.Game {
	t.Helper()

	playerRepo := NewPlayerRepository(conn)
	_ = playerRepo.Create(ctx, entity.NewPlayer("alice", "alice@example.com"))
	_ = playerRepo.Create(ctx, entity.NewPlayer("bob", "bob@example.com"))

	gameRepo := NewGameRepository(conn)
	game := entity.NewGame(id, "alice", "bob")
	summaries := []*entity.PlayerGameSummary{
		entity.NewPlayerGameSummary(id, "alice"),
		entity.NewPlayerGameSummary(id, "bob"),
	}
	require.NoError(t, gameRepo.Create(ctx, game, summaries))

	return game
}

func TestGameRepository_CreateAndGet(t *testing.T) {
	t.Run("Round-trips a fresh game with its summaries", func(t *testing.T) {
		ctx, conn := newTestDB(t)

		// Given: a stored game
		game := seedGame(t, ctx, conn, "game-1")

		// When: it is read back
		retrieved, err := NewGameRepository(conn).GetByID(ctx, "game-1")

		// Then: board, players and counters survive the round trip
		require.NoError(t, err)
		assert.Equal(t, game, retrieved)

		// And: both summaries were created with it
		summaries, err := NewSummaryRepository(conn).GetByGame(ctx, "game-1")
		require.NoError(t, err)
		assert.Len(t, summaries, 2)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, conn := newTestDB(t)

		retrieved, err := NewGameRepository(conn).GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestGameRepository_Update(t *testing.T) {
	t.Run("Update persists the move and bumps the version", func(t *testing.T) {
		ctx, conn := newTestDB(t)
		gameRepo := NewGameRepository(conn)

		// Given: a stored game
		game := seedGame(t, ctx, conn, "game-1")

		// When: a move is applied and persisted
		game.Board[0] = entity.PlayerX
		game.MovesCount = 1
		err := gameRepo.Update(ctx, game)

		// Then: the stored game reflects the move and the new version
		require.NoError(t, err)
		assert.Equal(t, int64(1), game.Version)

		retrieved, err := gameRepo.GetByID(ctx, "game-1")
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, retrieved.Board[0])
		assert.Equal(t, 1, retrieved.MovesCount)
		assert.Equal(t, int64(1), retrieved.Version)
	})

	t.Run("A stale version is a conflict", func(t *testing.T) {
		ctx, conn := newTestDB(t)
		gameRepo := NewGameRepository(conn)

		// Given: two copies of the same game read at the same version
		seedGame(t, ctx, conn, "game-1")
		first, err := gameRepo.GetByID(ctx, "game-1")
		require.NoError(t, err)
		second, err := gameRepo.GetByID(ctx, "game-1")
		require.NoError(t, err)

		// When: both are written back
		first.Board[0] = entity.PlayerX
		first.MovesCount = 1
		require.NoError(t, gameRepo.Update(ctx, first))

		second.Board[4] = entity.PlayerX
		second.MovesCount = 1
		err = gameRepo.Update(ctx, second)

		// Then: the second write loses with ErrVersionConflict
		require.ErrorIs(t, err, apperror.ErrVersionConflict)

		// And: the stored board carries only the first write
		retrieved, err := gameRepo.GetByID(ctx, "game-1")
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, retrieved.Board[0])
		assert.Equal(t, entity.EmptyCell, retrieved.Board[4])
	})

	t.Run("Updating a missing game is not found", func(t *testing.T) {
		ctx, conn := newTestDB(t)

		game := entity.NewGame("missing", "alice", "bob")
		err := NewGameRepository(conn).Update(ctx, game)

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_Finish(t *testing.T) {
	ctx, conn := newTestDB(t)
	gameRepo := NewGameRepository(conn)
	playerRepo := NewPlayerRepository(conn)

	// Given: a game alice just won in 5 moves
	game := seedGame(t, ctx, conn, "game-1")
	game.MovesCount = 5
	game.Finish(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	summaries, err := NewSummaryRepository(conn).GetByGame(ctx, "game-1")
	require.NoError(t, err)

	alice, err := playerRepo.GetByName(ctx, "alice")
	require.NoError(t, err)
	bob, err := playerRepo.GetByName(ctx, "bob")
	require.NoError(t, err)

	for _, summary := range summaries {
		if summary.PlayerName == "alice" {
			summary.Settle(entity.OutcomeWin, 5)
		} else {
			summary.Settle(entity.OutcomeLose, 5)
		}
	}
	alice.RecordWin(5)
	bob.RecordLoss()

	// When: the result is persisted
	err = gameRepo.Finish(ctx, game, summaries, []*entity.Player{alice, bob})
	require.NoError(t, err)

	// Then: the game is terminal with its end date
	retrieved, err := gameRepo.GetByID(ctx, "game-1")
	require.NoError(t, err)
	assert.True(t, retrieved.GameOver)
	require.NotNil(t, retrieved.EndDate)

	// And: summaries carry the outcomes
	settled, err := NewSummaryRepository(conn).GetByGame(ctx, "game-1")
	require.NoError(t, err)
	for _, summary := range settled {
		assert.True(t, summary.GameOver)
		assert.Equal(t, 5, summary.MovesCount)
	}

	// And: both players' counters were written
	storedAlice, err := playerRepo.GetByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, storedAlice.Wins)
	assert.InDelta(t, 100.0, storedAlice.WinRate, 0.0001)

	storedBob, err := playerRepo.GetByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, storedBob.Losses)
}

func TestGameRepository_Delete(t *testing.T) {
	t.Run("Delete removes game, summaries and history", func(t *testing.T) {
		ctx, conn := newTestDB(t)
		gameRepo := NewGameRepository(conn)
		historyRepo := NewHistoryRepository(conn)

		// Given: a game with a history entry
		seedGame(t, ctx, conn, "game-1")
		require.NoError(t, historyRepo.Append(ctx, &entity.HistoryEntry{
			GameID:     "game-1",
			PlayerName: "alice",
			MovesCount: 1,
			Cell:       0,
			Message:    "No winner yet. Good luck on your next move.",
			CreatedAt:  time.Now().UTC(),
		}))

		// When: the game is deleted
		require.NoError(t, gameRepo.Delete(ctx, "game-1"))

		// Then: nothing of it remains
		_, err := gameRepo.GetByID(ctx, "game-1")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		summaries, err := NewSummaryRepository(conn).GetByGame(ctx, "game-1")
		require.NoError(t, err)
		assert.Empty(t, summaries)

		entries, err := historyRepo.ListByGame(ctx, "game-1")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Deleting a missing game is not found", func(t *testing.T) {
		ctx, conn := newTestDB(t)

		err := NewGameRepository(conn).Delete(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_ListActive(t *testing.T) {
	ctx, conn := newTestDB(t)
	gameRepo := NewGameRepository(conn)

	// Given: one active and one finished game
	seedGame(t, ctx, conn, "game-1")
	finished := seedGame(t, ctx, conn, "game-2")
	finished.Finish(time.Now().UTC())
	require.NoError(t, gameRepo.Update(ctx, finished))

	// When: active games are listed
	games, err := gameRepo.ListActive(ctx)

	// Then: only the active one comes back
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "game-1", games[0].ID)
}
