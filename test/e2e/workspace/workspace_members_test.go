//go:build e2e

package workspace_test

import (
	"context"
	"testing"

	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/wsclient"
	"github.com/stretchr/testify/require"
)

func TestMembersAndGate(t *testing.T) {
	baseURL := setupWorkspaceContainer(t, withEnv(relaxedLimits))
	ctx := context.Background()

	admin := newSession(t, baseURL, "u-admin", "ada@example.com", "Ada")
	ws, err := admin.CreateWorkspace(ctx, wsclient.CreateWorkspaceRequest{Name: "Lab"})
	require.NoError(t, err)

	created, err := admin.CreateInvitation(ctx, ws.ID, wsclient.CreateInvitationRequest{Email: "vi@example.com", Role: "viewer"})
	require.NoError(t, err)
	vi := newSession(t, baseURL, "u-vi", "vi@example.com", "Vi")
	_, err = vi.AcceptInvitation(ctx, acceptToken(t, created.AcceptURL))
	require.NoError(t, err)

	gate := wsclient.NewGate()
	require.NoError(t, gate.Refresh(ctx, vi, ws.ID))
	require.Equal(t, rbac.RoleViewer, gate.Role())
	require.True(t, gate.Can(rbac.PermRead, rbac.ResourceExperiment))
	require.False(t, gate.Can(rbac.PermWrite, rbac.ResourceExperiment))
	require.False(t, gate.Can(rbac.PermManageTeam))

	// The gate agrees with the server.
	_, err = vi.CreateInvitation(ctx, ws.ID, wsclient.CreateInvitationRequest{Email: "x@example.com", Role: "viewer"})
	requireAPIError(t, err, wsclient.ErrorCodeForbidden)

	member, err := admin.ChangeMemberRole(ctx, ws.ID, "u-vi", "member")
	require.NoError(t, err)
	require.Equal(t, rbac.RoleMember, member.Role)

	require.NoError(t, gate.Refresh(ctx, vi, ws.ID))
	require.True(t, gate.Can(rbac.PermWrite, rbac.ResourceExperiment))
	require.False(t, gate.Can(rbac.PermManageTeam))

	members, err := admin.ListMembers(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, members.Members, 2)

	_, err = admin.ChangeMemberRole(ctx, ws.ID, "u-admin", "member")
	requireAPIError(t, err, wsclient.ErrorCodeConflict)

	require.NoError(t, admin.RemoveMember(ctx, ws.ID, "u-vi"))

	require.Error(t, gate.Refresh(ctx, vi, ws.ID))
	require.False(t, gate.Loaded())
	require.False(t, gate.Can(rbac.PermRead, rbac.ResourceExperiment))
}

func TestPermissionTableMatchesEngine(t *testing.T) {
	baseURL := setupWorkspaceContainer(t, withEnv(relaxedLimits))
	ctx := context.Background()

	session := newSession(t, baseURL, "u-any", "any@example.com", "Any")
	table, err := session.PermissionTable(ctx)
	require.NoError(t, err)

	want := rbac.NewEngine(rbac.DefaultTable()).Views()
	require.Len(t, table.Roles, len(want))
	for i, v := range want {
		got := table.Roles[i]
		require.Equal(t, v.Role, got.Role)
		require.ElementsMatch(t, v.Global, got.Global, v.Role)
		for res, perms := range v.Resources {
			require.ElementsMatch(t, perms, got.Resources[res], "%s on %s", v.Role, res)
		}
	}
}
