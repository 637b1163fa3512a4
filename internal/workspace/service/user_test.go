package service_test

import (
	"testing"
	"time"

	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/stretchr/testify/require"
)

func TestSyncUser(t *testing.T) {
	f := newFixture(t)
	created := f.clock.Now()

	u, err := f.users.Sync(f.ctx, "u-bob", " Bob@Example.com ", " Bob ")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", u.Email)
	require.Equal(t, "Bob", u.DisplayName)

	f.clock.Advance(time.Hour)
	u, err = f.users.Sync(f.ctx, "u-bob", "bob@example.com", "Robert")
	require.NoError(t, err)
	require.Equal(t, "Robert", u.DisplayName)

	got, err := f.users.Get(f.ctx, "u-bob")
	require.NoError(t, err)
	require.Equal(t, "Robert", got.DisplayName)
	require.True(t, got.CreatedAt.Equal(created), "created_at survives updates")
	require.True(t, got.UpdatedAt.Equal(f.clock.Now()))

	// Unchanged claims do not touch the row.
	f.clock.Advance(time.Hour)
	_, err = f.users.Sync(f.ctx, "u-bob", "bob@example.com", "Robert")
	require.NoError(t, err)
	got, err = f.users.Get(f.ctx, "u-bob")
	require.NoError(t, err)
	require.False(t, got.UpdatedAt.Equal(f.clock.Now()))
}

func TestSyncUserRejectsIncompleteIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Sync(f.ctx, "", "bob@example.com", "Bob")
	require.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.users.Sync(f.ctx, "u-bob", "bob", "Bob")
	require.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.users.Get(f.ctx, "u-bob")
	require.ErrorIs(t, err, service.ErrUserUnknown)
}
