package groups

import (
	"fmt"
	"strings"
)

// Catalog is the immutable registry of group identifiers. It is built once
// at startup from configuration; every group label stored in the database
// must resolve against it.
type Catalog struct {
	names []string
	index map[string]struct{}
}

// DefaultNames is the deployment's fixed five-group list, used when the
// configuration does not override it.
func DefaultNames() []string {
	return []string{"CodEx", "Netac", "Source Code", "Robotix", "Graphicos"}
}

// NewCatalog builds a catalog from the configured group names.
func NewCatalog(names []string) (*Catalog, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("group catalog requires at least one group")
	}
	index := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("group name cannot be empty")
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate group name %q", name)
		}
		index[name] = struct{}{}
		out = append(out, name)
	}
	return &Catalog{names: out, index: index}, nil
}

// All returns the group names in configuration order.
func (c *Catalog) All() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Contains reports whether name is a known group.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of groups.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Slug derives the seed-account username prefix for a group:
// lowercase with spaces removed, e.g. "Source Code" -> "sourcecode".
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}
