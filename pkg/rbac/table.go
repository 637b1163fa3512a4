package rbac

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownRole       = errors.New("rbac: unknown role")
	ErrUnknownPermission = errors.New("rbac: unknown permission")
	ErrUnknownResource   = errors.New("rbac: unknown resource")
	ErrExceedsCeiling    = errors.New("rbac: permission exceeds role trust ceiling")
	ErrDuplicateName     = errors.New("rbac: name defined more than once")
)

// Grants is the plain description of what a role holds. It is the input
// format for NewTable and the output format for Table.Grants.
type Grants struct {
	Global    []Permission
	Resources map[Resource][]Permission
}

type permSet map[Permission]struct{}

type grantSet struct {
	global    permSet
	resources map[Resource]permSet
}

// Table maps roles to their global and per-resource permissions. A Table is
// immutable once built; share it by pointer.
type Table struct {
	roles map[Role]grantSet
}

// ceilings caps what each role may ever be granted, anywhere in the table.
var ceilings = map[Role]permSet{
	RoleAdmin: toSet(allPermissions),
	RoleMember: toSet([]Permission{
		PermRead,
		PermWrite,
		PermDelete,
		PermManageExperiments,
		PermManageDocuments,
	}),
	RoleViewer: toSet([]Permission{PermRead}),
}

// NewTable copies def into an immutable Table after checking every name and
// every role's trust ceiling. Roles absent from def hold nothing.
func NewTable(def map[Role]Grants) (*Table, error) {
	t := &Table{roles: make(map[Role]grantSet, len(def))}

	for role, g := range def {
		ceiling, ok := ceilings[role]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
		}

		gs := grantSet{
			global:    make(permSet, len(g.Global)),
			resources: make(map[Resource]permSet, len(g.Resources)),
		}

		for _, p := range g.Global {
			if err := checkPermission(role, p, ceiling); err != nil {
				return nil, err
			}
			gs.global[p] = struct{}{}
		}

		for res, perms := range g.Resources {
			if !res.Valid() {
				return nil, fmt.Errorf("%w: %q", ErrUnknownResource, res)
			}
			set := make(permSet, len(perms))
			for _, p := range perms {
				if err := checkPermission(role, p, ceiling); err != nil {
					return nil, fmt.Errorf("%s: %w", res, err)
				}
				set[p] = struct{}{}
			}
			gs.resources[res] = set
		}

		t.roles[role] = gs
	}

	return t, nil
}

// MustNewTable is NewTable for compiled-in definitions.
func MustNewTable(def map[Role]Grants) *Table {
	t, err := NewTable(def)
	if err != nil {
		panic(err)
	}
	return t
}

func checkPermission(role Role, p Permission, ceiling permSet) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPermission, p)
	}
	if _, ok := ceiling[p]; !ok {
		return fmt.Errorf("%w: %s may not hold %s", ErrExceedsCeiling, role, p)
	}
	return nil
}

// DefaultTable is the built-in role table used when no table file is
// configured.
func DefaultTable() *Table {
	return MustNewTable(map[Role]Grants{
		RoleAdmin: {
			Global: Permissions(),
		},
		RoleMember: {
			Global: []Permission{PermRead},
			Resources: map[Resource][]Permission{
				ResourceHypothesis: {PermWrite, PermDelete},
				ResourceExperiment: {PermWrite, PermDelete, PermManageExperiments},
				ResourceDocument:   {PermWrite, PermDelete, PermManageDocuments},
			},
		},
		RoleViewer: {
			Global: []Permission{PermRead},
		},
	})
}

// Grants returns a deep copy of what role holds, with permissions in
// declaration order. The second result is false for roles not in the table.
func (t *Table) Grants(role Role) (Grants, bool) {
	if t == nil {
		return Grants{}, false
	}
	gs, ok := t.roles[role]
	if !ok {
		return Grants{}, false
	}

	out := Grants{
		Global:    sortedPerms(gs.global),
		Resources: make(map[Resource][]Permission, len(gs.resources)),
	}
	for res, set := range gs.resources {
		out.Resources[res] = sortedPerms(set)
	}
	return out, true
}

// Roles lists the roles present in the table, most trusted first.
func (t *Table) Roles() []Role {
	if t == nil {
		return nil
	}
	var out []Role
	for _, r := range allRoles {
		if _, ok := t.roles[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (t *Table) allows(role Role, p Permission, res Resource, hasRes bool) bool {
	if t == nil {
		return false
	}
	gs, ok := t.roles[role]
	if !ok {
		return false
	}
	if _, ok := gs.global[p]; ok {
		return true
	}
	if !hasRes {
		return false
	}
	set, ok := gs.resources[res]
	if !ok {
		return false
	}
	_, ok = set[p]
	return ok
}

func toSet(perms []Permission) permSet {
	s := make(permSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

func sortedPerms(s permSet) []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Permission) int {
		return permissionIndex(a) - permissionIndex(b)
	})
	return out
}
