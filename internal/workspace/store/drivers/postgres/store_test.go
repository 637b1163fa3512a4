package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/internal/workspace/store/drivers/postgres"
	"github.com/hypolab/workspace/internal/workspace/store/storetest"
	"github.com/stretchr/testify/require"
)

// Set WORKSPACE_TEST_POSTGRES_DSN to a scratch database to run these. Each
// subtest truncates the tables first.
func TestStore(t *testing.T) {
	dsn := os.Getenv("WORKSPACE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("WORKSPACE_TEST_POSTGRES_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		s, err := postgres.NewStore(ctx, dsn)
		require.NoError(t, err)
		require.NoError(t, s.ApplyMigrations())
		_, err = s.DB().ExecContext(ctx, `TRUNCATE invitations, memberships, workspaces, users`)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
