package sqlite_test

import (
	"testing"

	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/internal/workspace/store/drivers/sqlite"
	"github.com/hypolab/workspace/internal/workspace/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := sqlite.NewStore(":memory:")
		require.NoError(t, err)
		require.NoError(t, s.ApplyMigrations())
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
}
