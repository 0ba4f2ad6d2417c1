package model

// NameKind distinguishes the two identifier namespaces.
type NameKind string

const (
	// KindValue marks a locally scoped value identifier, e.g. %arg0.
	KindValue NameKind = "value"
	// KindAttribute marks a globally scoped attribute identifier, e.g. #map.
	KindAttribute NameKind = "attribute"
)

// NameBinding records the display name assigned to a source identifier.
type NameBinding struct {
	Kind    NameKind `yaml:"kind"`
	Source  string   `yaml:"source"`
	Display string   `yaml:"display"`
}

// Group is the ordered set of assertion lines generated for one top-level
// scope unit. Group 0 collects whatever precedes the first unit and is
// usually empty.
type Group struct {
	Index    int
	Label    string
	Lines    []string
	Bindings []NameBinding
}

// Empty reports whether the group produced no assertion lines.
func (g *Group) Empty() bool {
	return len(g.Lines) == 0
}

// Checks is the complete result of transforming one input.
type Checks struct {
	// Preamble holds attribute definition assertions. They are emitted right
	// after the banner.
	Preamble   []string
	Groups     []Group
	Attributes []NameBinding
}

// NonEmptyGroups returns the groups that carry at least one line.
func (c *Checks) NonEmptyGroups() []Group {
	groups := make([]Group, 0, len(c.Groups))

	for _, g := range c.Groups {
		if !g.Empty() {
			groups = append(groups, g)
		}
	}

	return groups
}
