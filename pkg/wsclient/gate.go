package wsclient

import (
	"context"
	"sync"

	"github.com/hypolab/workspace/pkg/rbac"
)

// PermissionsSource is anything that can fetch the caller's permissions
// view for a workspace. *Session is one.
type PermissionsSource interface {
	MyPermissions(ctx context.Context, workspaceID string) (*PermissionsResponse, error)
}

// Gate answers permission questions locally from a fetched view so a UI can
// hide what the user cannot do. It is advisory only; the server re-checks
// every request. Until a view has been loaded, and after any failed
// refresh, it denies everything. A nil *Gate denies everything too.
type Gate struct {
	mu     sync.RWMutex
	role   rbac.Role
	engine *rbac.Engine
}

func NewGate() *Gate { return &Gate{} }

// Refresh fetches the view for workspaceID and loads it. On error the gate
// is reset and the error returned.
func (g *Gate) Refresh(ctx context.Context, src PermissionsSource, workspaceID string) error {
	resp, err := src.MyPermissions(ctx, workspaceID)
	if err != nil {
		g.Reset()
		return err
	}
	g.Load(resp.PermissionsView)
	return nil
}

// Load replaces the current view. A view the rbac package refuses (unknown
// role, grants beyond the role's ceiling) loads as deny-all.
func (g *Gate) Load(v rbac.PermissionsView) {
	engine := v.Engine()
	g.mu.Lock()
	g.role = v.Role
	g.engine = engine
	g.mu.Unlock()
}

func (g *Gate) Reset() {
	g.mu.Lock()
	g.role = ""
	g.engine = nil
	g.mu.Unlock()
}

// Loaded reports whether a view is in place.
func (g *Gate) Loaded() bool {
	if g == nil {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.engine != nil
}

func (g *Gate) Role() rbac.Role {
	if g == nil {
		return ""
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.role
}

func (g *Gate) state() (rbac.Role, *rbac.Engine) {
	if g == nil {
		return "", nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.role, g.engine
}

func (g *Gate) Can(perm rbac.Permission, resource ...rbac.Resource) bool {
	role, engine := g.state()
	return engine.HasPermission(role, perm, resource...)
}

func (g *Gate) CanAny(perms []rbac.Permission, resource ...rbac.Resource) bool {
	role, engine := g.state()
	return engine.HasAnyPermission(role, perms, resource...)
}

// CanAll follows the engine: an empty list is satisfied, but only once a
// view is loaded.
func (g *Gate) CanAll(perms []rbac.Permission, resource ...rbac.Resource) bool {
	role, engine := g.state()
	if engine == nil {
		return false
	}
	return engine.HasAllPermissions(role, perms, resource...)
}

func (g *Gate) HasRole(required rbac.Role) bool {
	role, engine := g.state()
	if engine == nil {
		return false
	}
	return engine.HasRole(role, required)
}
