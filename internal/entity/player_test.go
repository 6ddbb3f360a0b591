package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayer_RecordWin(t *testing.T) {
	t.Run("First win sets rate and average from scratch", func(t *testing.T) {
		// Given: a fresh player
		player := NewPlayer("alice", "alice@example.com")

		// When: a 5-move win is recorded
		player.RecordWin(5)

		// Then: counters and derived stats follow
		assert.Equal(t, 1, player.Wins)
		assert.Equal(t, 5, player.MovesOnWins)
		assert.InDelta(t, 5.0, player.AvgWinMoves, 0.0001)
		assert.InDelta(t, 100.0, player.WinRate, 0.0001)
	})

	t.Run("Average folds in every winning game's moves", func(t *testing.T) {
		// Given: a player with one 5-move win
		player := NewPlayer("alice", "alice@example.com")
		player.RecordWin(5)

		// When: a 7-move win is recorded
		player.RecordWin(7)

		// Then: the average is over both wins
		assert.Equal(t, 2, player.Wins)
		assert.Equal(t, 12, player.MovesOnWins)
		assert.InDelta(t, 6.0, player.AvgWinMoves, 0.0001)
	})
}

func TestPlayer_RecordLoss(t *testing.T) {
	t.Run("Loss only moves the rate", func(t *testing.T) {
		// Given: a player with one win
		player := NewPlayer("bob", "bob@example.com")
		player.RecordWin(5)

		// When: a loss is recorded
		player.RecordLoss()

		// Then: win counters are untouched and the rate is halved
		assert.Equal(t, 1, player.Wins)
		assert.Equal(t, 1, player.Losses)
		assert.Equal(t, 5, player.MovesOnWins)
		assert.InDelta(t, 50.0, player.WinRate, 0.0001)
	})
}

func TestPlayer_WinRate(t *testing.T) {
	t.Run("Zero games means zero rate", func(t *testing.T) {
		// Given: a fresh player
		player := NewPlayer("carol", "carol@example.com")

		// Then: no division by zero, rate is 0
		assert.Zero(t, player.WinRate)
		assert.Zero(t, player.AvgWinMoves)
	})

	t.Run("Rate always equals wins over games times 100", func(t *testing.T) {
		// Given: a player with 3 wins and 1 loss
		player := NewPlayer("carol", "carol@example.com")
		player.RecordWin(5)
		player.RecordWin(6)
		player.RecordWin(7)
		player.RecordLoss()

		// Then: 3/4 * 100
		assert.InDelta(t, 75.0, player.WinRate, 0.0001)
	})
}
