package domain

import "log/slog"

const (
	attributeNamePrefix = "ATTR_"
	// attributeMarker distinguishes global attribute names from value names.
	attributeMarker = "$"
	// unknownAttribute is rendered for references without a prior definition.
	unknownAttribute = "?"
)

// AttributeNamer assigns display names to globally scoped attribute
// identifiers. Names are flat and are never reset within a run.
type AttributeNamer struct {
	overrides []string
	names     map[string]string
	used      map[string]struct{}
	counter   int
}

// NewAttributeNamer creates a namer with the comma separated override list.
func NewAttributeNamer(overrides string) *AttributeNamer {
	return &AttributeNamer{
		overrides: parseOverrides(overrides),
		names:     make(map[string]string),
		used:      make(map[string]struct{}),
	}
}

// Define assigns a new display name to id at its defining occurrence.
func (a *AttributeNamer) Define(id string) (string, error) {
	name := attributeMarker + nextName(&a.overrides, &a.counter, attributeNamePrefix)

	if _, dup := a.used[name]; dup {
		return "", &DuplicateNameError{Kind: "attribute", Name: name}
	}

	a.names[id] = name
	a.used[name] = struct{}{}

	slog.Debug("assigned attribute name", "id", id, "name", name)

	return name, nil
}

// Reference returns the display name of id, or a wildcard when id was never
// defined. Forward references and external attributes are expected.
func (a *AttributeNamer) Reference(id string) string {
	if name, ok := a.names[id]; ok {
		return name
	}

	return unknownAttribute
}
