// Package rbac evaluates role based permissions against a static
// role-to-permission table. The same evaluator backs the server side checks
// and the advisory client side gate in pkg/wsclient.
package rbac

import "strings"

// Role is the coarse trust level a user holds within a workspace.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Permission is a named capability. Permissions are flat, holding one never
// implies holding another.
type Permission string

const (
	PermRead              Permission = "read"
	PermWrite             Permission = "write"
	PermDelete            Permission = "delete"
	PermManageTeam        Permission = "manage_team"
	PermManageWorkspace   Permission = "manage_workspace"
	PermManageBilling     Permission = "manage_billing"
	PermManageExperiments Permission = "manage_experiments"
	PermManageDocuments   Permission = "manage_documents"
)

// Resource is the kind of object a permission is checked against.
type Resource string

const (
	ResourceHypothesis Resource = "hypothesis"
	ResourceExperiment Resource = "experiment"
	ResourceDocument   Resource = "document"
	ResourceWorkspace  Resource = "workspace"
	ResourceUser       Resource = "user"
	ResourceSettings   Resource = "settings"
	ResourceInvitation Resource = "invitation"
	ResourceTeam       Resource = "team"
)

var (
	allRoles = []Role{RoleAdmin, RoleMember, RoleViewer}

	allPermissions = []Permission{
		PermRead,
		PermWrite,
		PermDelete,
		PermManageTeam,
		PermManageWorkspace,
		PermManageBilling,
		PermManageExperiments,
		PermManageDocuments,
	}

	allResources = []Resource{
		ResourceHypothesis,
		ResourceExperiment,
		ResourceDocument,
		ResourceWorkspace,
		ResourceUser,
		ResourceSettings,
		ResourceInvitation,
		ResourceTeam,
	}
)

// Roles returns every known role, most trusted first.
func Roles() []Role { return append([]Role(nil), allRoles...) }

// Permissions returns every known permission in declaration order.
func Permissions() []Permission { return append([]Permission(nil), allPermissions...) }

// Resources returns every known resource kind in declaration order.
func Resources() []Resource { return append([]Resource(nil), allResources...) }

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// ParsePermission normalizes s and reports whether it names a known permission.
func ParsePermission(s string) (Permission, bool) {
	p := Permission(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// ParseResource normalizes s and reports whether it names a known resource kind.
func ParseResource(s string) (Resource, bool) {
	r := Resource(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

func (p Permission) Valid() bool {
	return permissionIndex(p) >= 0
}

func (r Resource) Valid() bool {
	for _, known := range allResources {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string       { return string(r) }
func (p Permission) String() string { return string(p) }
func (r Resource) String() string   { return string(r) }

// permissionIndex gives permissions a stable order for views and listings.
func permissionIndex(p Permission) int {
	for i, known := range allPermissions {
		if p == known {
			return i
		}
	}
	return -1
}
