//go:build e2e

package workspace_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/wsclient"
	"github.com/stretchr/testify/require"
)

// acceptToken pulls the token out of an accept link.
func acceptToken(t *testing.T, acceptURL string) string {
	t.Helper()
	u, err := url.Parse(acceptURL)
	require.NoError(t, err)
	tok := u.Query().Get("token")
	require.NotEmpty(t, tok)
	return tok
}

func TestInvitationLifecycle(t *testing.T) {
	baseURL := setupWorkspaceContainer(t, withEnv(relaxedLimits))
	ctx := context.Background()

	admin := newSession(t, baseURL, "u-admin", "ada@example.com", "Ada")
	ws, err := admin.CreateWorkspace(ctx, wsclient.CreateWorkspaceRequest{Name: "Pricing"})
	require.NoError(t, err)
	require.Equal(t, rbac.RoleAdmin, ws.Role)

	created, err := admin.CreateInvitation(ctx, ws.ID, wsclient.CreateInvitationRequest{
		Email:   "Ana@Example.com",
		Role:    "member",
		Message: "Come help",
	})
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", created.Invitation.Email)
	require.Equal(t, "pending", created.Invitation.Status)
	require.Contains(t, created.AcceptURL, testBaseURL)

	_, err = admin.CreateInvitation(ctx, ws.ID, wsclient.CreateInvitationRequest{Email: "ana@example.com", Role: "viewer"})
	requireAPIError(t, err, wsclient.ErrorCodeConflict)

	token := acceptToken(t, created.AcceptURL)

	t.Run("preview is public", func(t *testing.T) {
		preview, err := wsclient.NewClient(baseURL).PreviewInvitation(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "Pricing", preview.WorkspaceName)
		require.Equal(t, "Ada", preview.InviterName)
		require.Equal(t, rbac.RoleMember, preview.Role)
		require.False(t, preview.Expired)
	})

	t.Run("other user cannot accept", func(t *testing.T) {
		other := newSession(t, baseURL, "u-bob", "bob@example.com", "Bob")
		_, err := other.AcceptInvitation(ctx, token)
		requireAPIError(t, err, wsclient.ErrorCodeForbidden)
	})

	ana := newSession(t, baseURL, "u-ana", "ana@example.com", "Ana")
	accepted, err := ana.AcceptInvitation(ctx, token)
	require.NoError(t, err)
	require.Equal(t, ws.ID, accepted.WorkspaceID)
	require.Equal(t, rbac.RoleMember, accepted.Role)
	require.Equal(t, "accepted", accepted.Invitation.Status)

	_, err = ana.AcceptInvitation(ctx, token)
	requireAPIError(t, err, wsclient.ErrorCodeConflict)

	mine, err := ana.ListWorkspaces(ctx)
	require.NoError(t, err)
	require.Len(t, mine.Workspaces, 1)
	require.Equal(t, rbac.RoleMember, mine.Workspaces[0].Role)

	list, err := admin.ListInvitations(ctx, ws.ID, wsclient.ListInvitationsOptions{Status: "accepted"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
}

func TestRevokeAndResend(t *testing.T) {
	baseURL := setupWorkspaceContainer(t, withEnv(relaxedLimits))
	ctx := context.Background()

	admin := newSession(t, baseURL, "u-admin", "ada@example.com", "Ada")
	ws, err := admin.CreateWorkspace(ctx, wsclient.CreateWorkspaceRequest{Name: "Lab"})
	require.NoError(t, err)

	created, err := admin.CreateInvitation(ctx, ws.ID, wsclient.CreateInvitationRequest{Email: "cy@example.com", Role: "viewer"})
	require.NoError(t, err)

	resent, err := admin.ResendInvitation(ctx, ws.ID, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, created.AcceptURL, resent.AcceptURL)
	require.False(t, resent.Invitation.ExpiresAt.Before(created.Invitation.ExpiresAt))

	revoked, err := admin.RevokeInvitation(ctx, ws.ID, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, "revoked", revoked.Status)

	_, err = admin.RevokeInvitation(ctx, ws.ID, created.Invitation.ID)
	requireAPIError(t, err, wsclient.ErrorCodeConflict)

	cy := newSession(t, baseURL, "u-cy", "cy@example.com", "Cy")
	_, err = cy.AcceptInvitation(ctx, acceptToken(t, created.AcceptURL))
	requireAPIError(t, err, wsclient.ErrorCodeConflict)

	_, err = wsclient.NewClient(baseURL).PreviewInvitation(ctx, "unknown-token")
	requireAPIError(t, err, wsclient.ErrorCodeNotFound)
}
