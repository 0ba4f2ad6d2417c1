package model

import "strings"

// GroupSummary describes one generated group for display purposes.
type GroupSummary struct {
	Index      int
	Label      string
	Assertions int
	Values     int
}

// RunSummary describes the outcome of a single conversion run.
type RunSummary struct {
	Input      Path
	Output     Path
	Merged     bool
	Preamble   int
	Attributes int
	Groups     []GroupSummary
}

// NewRunSummary condenses checks into a RunSummary.
func NewRunSummary(input, output Path, merged bool, checks *Checks) RunSummary {
	summary := RunSummary{
		Input:      input,
		Output:     output,
		Merged:     merged,
		Preamble:   len(checks.Preamble),
		Attributes: len(checks.Attributes),
	}

	for _, g := range checks.NonEmptyGroups() {
		summary.Groups = append(summary.Groups, GroupSummary{
			Index:      g.Index,
			Label:      g.Label,
			Assertions: len(g.Lines),
			Values:     len(g.Bindings),
		})
	}

	return summary
}

// GroupNames lists the value bindings of one group.
type GroupNames struct {
	Group  int           `yaml:"group"`
	Label  string        `yaml:"label,omitempty"`
	Values []NameBinding `yaml:"values"`
}

// NameMap is the persisted form of every display name assigned in a run.
type NameMap struct {
	Input      string        `yaml:"input"`
	Attributes []NameBinding `yaml:"attributes,omitempty"`
	Groups     []GroupNames  `yaml:"groups,omitempty"`
}

// NewNameMap collects the bindings of checks into a NameMap.
func NewNameMap(input Path, checks *Checks) NameMap {
	names := NameMap{
		Input:      input.String(),
		Attributes: checks.Attributes,
	}

	for _, g := range checks.NonEmptyGroups() {
		names.Groups = append(names.Groups, GroupNames{
			Group:  g.Index,
			Label:  g.Label,
			Values: g.Bindings,
		})
	}

	return names
}

// ValueOverrides returns the value display names in order of assignment as a
// comma separated override list.
func (n NameMap) ValueOverrides() string {
	var names []string

	for _, g := range n.Groups {
		for _, b := range g.Values {
			names = append(names, b.Display)
		}
	}

	return strings.Join(names, ",")
}

// AttributeOverrides returns the attribute display names without their global
// marker as a comma separated override list.
func (n NameMap) AttributeOverrides() string {
	names := make([]string, 0, len(n.Attributes))
	for _, b := range n.Attributes {
		names = append(names, strings.TrimPrefix(b.Display, "$"))
	}

	return strings.Join(names, ",")
}
