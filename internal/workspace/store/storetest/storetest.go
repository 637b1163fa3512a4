// Package storetest is a conformance suite every store driver runs.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/pkg/idx"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/stretchr/testify/require"
)

// Run exercises a freshly migrated, empty store from newStore.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("workspaces and members", func(t *testing.T) { testMemberships(t, newStore(t)) })
	t.Run("invitation uniqueness", func(t *testing.T) { testInvitationUniqueness(t, newStore(t)) })
	t.Run("invitation transitions", func(t *testing.T) { testInvitationTransitions(t, newStore(t)) })
	t.Run("invitation listing", func(t *testing.T) { testInvitationListing(t, newStore(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
}

var base = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, s store.Store, id, email string) domain.User {
	t.Helper()
	u := domain.User{ID: id, Email: email, DisplayName: id, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, s.Users().UpsertUser(context.Background(), u))
	return u
}

func seedWorkspace(t *testing.T, s store.Store, owner string) domain.Workspace {
	t.Helper()
	ctx := context.Background()
	w := domain.Workspace{ID: idx.New().String(), Name: "Growth", CreatedBy: owner, CreatedAt: base}
	require.NoError(t, s.Workspaces().CreateWorkspace(ctx, w))
	require.NoError(t, s.Memberships().AddMember(ctx, domain.Membership{
		WorkspaceID: w.ID, UserID: owner, Role: rbac.RoleAdmin, CreatedAt: base, UpdatedAt: base,
	}))
	return w
}

func newInvitation(workspaceID, email, token string, created time.Time) domain.Invitation {
	return domain.Invitation{
		ID:          idx.NewAt(created).String(),
		WorkspaceID: workspaceID,
		Email:       email,
		Role:        rbac.RoleMember,
		Token:       token,
		Status:      domain.StatusPending,
		CreatedAt:   created,
		ExpiresAt:   created.Add(domain.DefaultInvitationValidity),
		UpdatedAt:   created,
	}
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Users().GetUser(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	seedUser(t, s, "u1", "old@example.com")

	later := base.Add(time.Hour)
	require.NoError(t, s.Users().UpsertUser(ctx, domain.User{
		ID: "u1", Email: "new@example.com", DisplayName: "New", CreatedAt: later, UpdatedAt: later,
	}))

	got, err := s.Users().GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "new@example.com", got.Email)
	require.Equal(t, "New", got.DisplayName)
	require.Equal(t, base, got.CreatedAt, "upsert keeps the original creation time")
	require.Equal(t, later, got.UpdatedAt)
}

func testMemberships(t *testing.T, s store.Store) {
	ctx := context.Background()
	seedUser(t, s, "owner", "owner@example.com")
	seedUser(t, s, "bob", "bob@example.com")
	w := seedWorkspace(t, s, "owner")

	got, err := s.Workspaces().GetWorkspace(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, w, got)

	m := domain.Membership{WorkspaceID: w.ID, UserID: "bob", Role: rbac.RoleViewer, CreatedAt: base.Add(time.Minute), UpdatedAt: base}
	require.NoError(t, s.Memberships().AddMember(ctx, m))
	require.ErrorIs(t, s.Memberships().AddMember(ctx, m), store.ErrAlreadyExists)

	byEmail, err := s.Memberships().GetMemberByEmail(ctx, w.ID, "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, "bob", byEmail.UserID)
	require.Equal(t, rbac.RoleViewer, byEmail.Role)

	_, err = s.Memberships().GetMemberByEmail(ctx, w.ID, "carol@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	members, err := s.Memberships().ListMembers(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "owner", members[0].UserID)

	require.NoError(t, s.Memberships().UpdateMemberRole(ctx, w.ID, "bob", rbac.RoleAdmin, base.Add(time.Hour)))
	n, err := s.Memberships().LockMembersWithRole(ctx, w.ID, rbac.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	mine, err := s.Workspaces().ListWorkspacesForUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, rbac.RoleAdmin, mine[0].Role)

	require.NoError(t, s.Memberships().RemoveMember(ctx, w.ID, "bob"))
	require.ErrorIs(t, s.Memberships().RemoveMember(ctx, w.ID, "bob"), store.ErrNotFound)
	require.ErrorIs(t, s.Memberships().UpdateMemberRole(ctx, w.ID, "bob", rbac.RoleViewer, base), store.ErrNotFound)

	_, err = s.Memberships().GetMember(ctx, w.ID, "bob")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testInvitationUniqueness(t *testing.T, s store.Store) {
	ctx := context.Background()
	seedUser(t, s, "owner", "owner@example.com")
	w := seedWorkspace(t, s, "owner")
	other := seedWorkspace(t, s, "owner")

	first := newInvitation(w.ID, "dana@example.com", "tok-1", base)
	first.InvitedBy = "owner"
	require.NoError(t, s.Invitations().CreateInvitation(ctx, first))

	dup := newInvitation(w.ID, "dana@example.com", "tok-2", base.Add(time.Minute))
	require.ErrorIs(t, s.Invitations().CreateInvitation(ctx, dup), store.ErrAlreadyExists)

	// Same address in another workspace is fine
	require.NoError(t, s.Invitations().CreateInvitation(ctx, newInvitation(other.ID, "dana@example.com", "tok-3", base)))

	// Once the first lapses and is expired, a new one may be created
	after := first.ExpiresAt
	n, err := s.Invitations().ExpireStale(ctx, w.ID, "dana@example.com", after)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	again := newInvitation(w.ID, "dana@example.com", "tok-4", after)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, again))

	old, err := s.Invitations().GetInvitation(ctx, w.ID, first.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusExpired, old.Status)
	require.Equal(t, "owner", old.InvitedBy)

	byToken, err := s.Invitations().GetInvitationByToken(ctx, "tok-4")
	require.NoError(t, err)
	require.Equal(t, again.ID, byToken.ID)

	_, err = s.Invitations().GetInvitationByToken(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Invitations().GetInvitation(ctx, other.ID, first.ID)
	require.ErrorIs(t, err, store.ErrNotFound, "lookups are scoped to the workspace")
}

func testInvitationTransitions(t *testing.T, s store.Store) {
	ctx := context.Background()
	seedUser(t, s, "owner", "owner@example.com")
	seedUser(t, s, "erin", "erin@example.com")
	w := seedWorkspace(t, s, "owner")

	inv := newInvitation(w.ID, "erin@example.com", "tok-e", base)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))

	now := base.Add(time.Hour)
	newExpiry := now.Add(domain.DefaultInvitationValidity)

	ok, err := s.Invitations().ExtendExpiry(ctx, inv.ID, newExpiry, now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Invitations().MarkAccepted(ctx, inv.ID, "erin", now)
	require.NoError(t, err)
	require.True(t, ok)

	// Every further transition loses the compare-and-set
	ok, err = s.Invitations().MarkAccepted(ctx, inv.ID, "erin", now)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = s.Invitations().MarkRevoked(ctx, inv.ID, now)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := s.Invitations().GetInvitation(ctx, w.ID, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAccepted, got.Status)
	require.Equal(t, "erin", got.AcceptedBy)
	require.NotNil(t, got.AcceptedAt)
	require.Equal(t, now, *got.AcceptedAt)
	require.Equal(t, newExpiry, got.ExpiresAt)
	require.Nil(t, got.RevokedAt)

	// A lapsed row cannot transition even before it is materialised
	stale := newInvitation(w.ID, "frank@example.com", "tok-f", base)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, stale))
	ok, err = s.Invitations().MarkRevoked(ctx, stale.ID, stale.ExpiresAt)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.Invitations().MarkRevoked(ctx, stale.ID, stale.ExpiresAt.Add(-time.Millisecond))
	require.NoError(t, err)
	require.True(t, ok)
}

func testInvitationListing(t *testing.T, s store.Store) {
	ctx := context.Background()
	seedUser(t, s, "owner", "owner@example.com")
	w := seedWorkspace(t, s, "owner")

	var ids []string
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		inv := newInvitation(w.ID, email, "tok-"+email, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))
		ids = append(ids, inv.ID)
	}
	ok, err := s.Invitations().MarkRevoked(ctx, ids[0], base.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, ok)

	page, total, err := s.Invitations().ListInvitations(ctx, store.InvitationFilter{WorkspaceID: w.ID, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page, 2)
	require.Equal(t, ids[2], page[0].ID, "newest first")
	require.Equal(t, ids[1], page[1].ID)

	page, _, err = s.Invitations().ListInvitations(ctx, store.InvitationFilter{WorkspaceID: w.ID, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, ids[0], page[0].ID)

	page, total, err = s.Invitations().ListInvitations(ctx, store.InvitationFilter{
		WorkspaceID: w.ID, Status: domain.StatusRevoked, Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, ids[0], page[0].ID)

	n, err := s.Invitations().ExpireStale(ctx, w.ID, "", base.Add(30*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func testTransactions(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().UpsertUser(ctx, domain.User{ID: "ghost", Email: "g@example.com", CreatedAt: base, UpdatedAt: base}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUser(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound, "rolled back")

	err = s.WithTx(ctx, func(tx store.Tx) error {
		require.Error(t, tx.WithTx(ctx, func(store.Tx) error { return nil }), "no nesting")
		return tx.Users().UpsertUser(ctx, domain.User{ID: "kept", Email: "k@example.com", CreatedAt: base, UpdatedAt: base})
	})
	require.NoError(t, err)

	_, err = s.Users().GetUser(ctx, "kept")
	require.NoError(t, err)

	require.NoError(t, s.Ping(ctx))
}
