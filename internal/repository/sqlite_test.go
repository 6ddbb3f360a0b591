package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fairline/tictactoe-league/internal/repository/storage/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestDB - opens a throwaway sqlite database with the full schema.
func newTestDB(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()

	ctx := context.Background()

	storage, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, storage.Close())
	})

	require.NoError(t, storage.Init(ctx))

	return ctx, storage.Connection
}
