package wsclient

import (
	"context"
	"errors"
	"testing"

	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	resp *PermissionsResponse
	err  error
}

func (f fakeSource) MyPermissions(context.Context, string) (*PermissionsResponse, error) {
	return f.resp, f.err
}

func memberView() rbac.PermissionsView {
	return rbac.NewEngine(rbac.DefaultTable()).View(rbac.RoleMember)
}

func TestGateDeniesUntilLoaded(t *testing.T) {
	t.Parallel()

	var nilGate *Gate
	g := NewGate()
	for _, gate := range []*Gate{nilGate, g} {
		require.False(t, gate.Loaded())
		require.False(t, gate.Can(rbac.PermRead))
		require.False(t, gate.CanAny([]rbac.Permission{rbac.PermRead}))
		require.False(t, gate.CanAll(nil), "vacuous truth needs a loaded view")
		require.False(t, gate.HasRole(rbac.RoleMember))
	}
}

func TestGateMirrorsServerEngine(t *testing.T) {
	t.Parallel()

	server := rbac.NewEngine(rbac.DefaultTable())
	g := NewGate()
	require.NoError(t, g.Refresh(context.Background(), fakeSource{resp: &PermissionsResponse{
		WorkspaceID:     "ws",
		PermissionsView: memberView(),
	}}, "ws"))

	require.True(t, g.Loaded())
	require.Equal(t, rbac.RoleMember, g.Role())
	require.True(t, g.HasRole(rbac.RoleMember))
	require.False(t, g.HasRole(rbac.RoleAdmin))

	for _, p := range rbac.Permissions() {
		require.Equal(t, server.HasPermission(rbac.RoleMember, p), g.Can(p), p)
		for _, res := range rbac.Resources() {
			require.Equal(t, server.HasPermission(rbac.RoleMember, p, res), g.Can(p, res), "%s on %s", p, res)
		}
	}
	require.True(t, g.CanAll(nil))
	require.True(t, g.CanAny([]rbac.Permission{rbac.PermManageTeam, rbac.PermWrite}, rbac.ResourceDocument))
}

func TestGateResetsOnFailedRefresh(t *testing.T) {
	t.Parallel()

	g := NewGate()
	g.Load(memberView())
	require.True(t, g.Can(rbac.PermRead))

	err := g.Refresh(context.Background(), fakeSource{err: errors.New("offline")}, "ws")
	require.Error(t, err)
	require.False(t, g.Loaded())
	require.False(t, g.Can(rbac.PermRead))
}

func TestGateRejectsEscalatedView(t *testing.T) {
	t.Parallel()

	v := memberView()
	v.Global = append(v.Global, rbac.PermManageTeam)

	g := NewGate()
	g.Load(v)
	require.False(t, g.Can(rbac.PermManageTeam))
	require.False(t, g.Can(rbac.PermRead), "a tampered view denies everything")
}
