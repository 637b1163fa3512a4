package rbac

// PermissionsView is a read-only projection of one role's grants. It is what
// the API hands to clients; changing it has no effect on any Table.
type PermissionsView struct {
	Role      Role                      `json:"role"`
	Global    []Permission              `json:"global"`
	Resources map[Resource][]Permission `json:"resources"`
}

// Engine rebuilds an evaluator from the view so a client can answer the same
// questions the server does. A view naming an unknown role, or holding
// anything beyond the role's ceiling, yields an engine that denies all.
func (v PermissionsView) Engine() *Engine {
	t, err := NewTable(map[Role]Grants{
		v.Role: {Global: v.Global, Resources: v.Resources},
	})
	if err != nil {
		return NewEngine(nil)
	}
	return NewEngine(t)
}

// Allows is a shorthand for v.Engine().HasPermission(v.Role, perm, resource...).
func (v PermissionsView) Allows(perm Permission, resource ...Resource) bool {
	return v.Engine().HasPermission(v.Role, perm, resource...)
}
