package rbac

// Engine answers allow/deny questions against a Table. It has no state of its
// own beyond the table pointer, never errors, and denies whenever it lacks
// the data to say yes. A nil *Engine denies everything.
type Engine struct {
	table *Table
}

// NewEngine returns an Engine over t. A nil table yields an Engine that
// denies every check.
func NewEngine(t *Table) *Engine {
	return &Engine{table: t}
}

// Table returns the table the engine evaluates.
func (e *Engine) Table() *Table {
	if e == nil {
		return nil
	}
	return e.table
}

// HasPermission reports whether role holds perm globally or, when a resource
// is given, on that resource. Only the first resource argument is used.
func (e *Engine) HasPermission(role Role, perm Permission, resource ...Resource) bool {
	if e == nil {
		return false
	}
	res, hasRes := firstResource(resource)
	return e.table.allows(role, perm, res, hasRes)
}

// HasAnyPermission reports whether at least one of perms is held. An empty
// list is never satisfied.
func (e *Engine) HasAnyPermission(role Role, perms []Permission, resource ...Resource) bool {
	for _, p := range perms {
		if e.HasPermission(role, p, resource...) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every one of perms is held. An empty list
// is vacuously satisfied; callers gating on it must check len(perms) first.
func (e *Engine) HasAllPermissions(role Role, perms []Permission, resource ...Resource) bool {
	for _, p := range perms {
		if !e.HasPermission(role, p, resource...) {
			return false
		}
	}
	return true
}

// HasRole is an exact role comparison. There is no hierarchy: admin does not
// satisfy a member check.
func (e *Engine) HasRole(userRole, required Role) bool {
	return userRole.Valid() && userRole == required
}

// View returns a detached copy of what role holds, for driving UI state.
// Unknown roles get an empty view.
func (e *Engine) View(role Role) PermissionsView {
	v := PermissionsView{
		Role:      role,
		Global:    []Permission{},
		Resources: map[Resource][]Permission{},
	}
	g, ok := e.Table().Grants(role)
	if !ok {
		return v
	}
	v.Global = g.Global
	v.Resources = g.Resources
	return v
}

// Views returns one view per role in the table.
func (e *Engine) Views() []PermissionsView {
	roles := e.Table().Roles()
	out := make([]PermissionsView, 0, len(roles))
	for _, r := range roles {
		out = append(out, e.View(r))
	}
	return out
}

func firstResource(resource []Resource) (Resource, bool) {
	if len(resource) == 0 || resource[0] == "" {
		return "", false
	}
	return resource[0], true
}
