package rbac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk shape of a role table:
//
//	roles:
//	  member:
//	    global: [read]
//	    resources:
//	      hypothesis: [write, delete]
type tableFile struct {
	Roles map[string]struct {
		Global    []string            `yaml:"global"`
		Resources map[string][]string `yaml:"resources"`
	} `yaml:"roles"`
}

// ParseTable decodes a YAML role table. Names are case-insensitive, so keys
// that differ only in case are duplicates. Duplicates, unknown names and
// ceiling violations are errors.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("rbac: decode table: %w", err)
	}
	if len(f.Roles) == 0 {
		return nil, fmt.Errorf("rbac: table defines no roles")
	}

	def := make(map[Role]Grants, len(f.Roles))
	for name, entry := range f.Roles {
		role, ok := ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, name)
		}
		if _, dup := def[role]; dup {
			return nil, fmt.Errorf("%w: role %q", ErrDuplicateName, role)
		}

		global, err := parsePerms(entry.Global)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", role, err)
		}

		resources := make(map[Resource][]Permission, len(entry.Resources))
		for resName, permNames := range entry.Resources {
			res, ok := ParseResource(resName)
			if !ok {
				return nil, fmt.Errorf("%s: %w: %q", role, ErrUnknownResource, resName)
			}
			if _, dup := resources[res]; dup {
				return nil, fmt.Errorf("%s: %w: resource %q", role, ErrDuplicateName, res)
			}
			perms, err := parsePerms(permNames)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", role, res, err)
			}
			resources[res] = perms
		}

		def[role] = Grants{Global: global, Resources: resources}
	}

	return NewTable(def)
}

// LoadTableFile reads and parses a YAML role table from path.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rbac: read table: %w", err)
	}
	return ParseTable(data)
}

func parsePerms(names []string) ([]Permission, error) {
	out := make([]Permission, 0, len(names))
	for _, n := range names {
		p, ok := ParsePermission(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPermission, n)
		}
		out = append(out, p)
	}
	return out, nil
}
