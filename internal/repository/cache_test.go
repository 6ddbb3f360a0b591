package repository

import (
	"testing"

	"github.com/fairline/tictactoe-league/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCache_GetAverageMoves(t *testing.T) {
	t.Run("Returns empty when never set", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsCache := NewStatsCache(st.Storage)

		// When: the cache was never populated
		value, err := statsCache.GetAverageMoves(ctx)

		// Then: an empty string, no error
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Round-trips the cached string", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsCache := NewStatsCache(st.Storage)

		// Given: a cached average
		err := statsCache.SetAverageMoves(ctx, "The average moves is 4.50")
		require.NoError(t, err)

		// When: it is read back
		value, err := statsCache.GetAverageMoves(ctx)

		// Then: the same string comes back
		require.NoError(t, err)
		assert.Equal(t, "The average moves is 4.50", value)
	})
}
