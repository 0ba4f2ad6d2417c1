package domain

import (
	"log/slog"
	"strconv"
	"strings"
)

const valueNamePrefix = "VAL_"

// ValueNamer assigns display names to locally scoped value identifiers.
//
// Frames form a stack with the innermost frame last. Frame 0 is a permanent
// root frame that is not counted by Depth, so values defined outside of any
// block still have a home. A display name is never handed out twice until
// Reset is called.
type ValueNamer struct {
	scopes    []map[string]string
	overrides []string
	used      map[string]struct{}
	counter   int
	deferLeft int
}

// NewValueNamer creates a namer that consumes the comma separated override
// list front to back before synthesizing names.
func NewValueNamer(overrides string) *ValueNamer {
	return &ValueNamer{
		scopes:    []map[string]string{{}},
		overrides: parseOverrides(overrides),
		used:      make(map[string]struct{}),
	}
}

// EnterScope pushes an empty frame.
func (n *ValueNamer) EnterScope() {
	n.scopes = append(n.scopes, map[string]string{})
}

// ExitScope pops the innermost frame.
func (n *ValueNamer) ExitScope() error {
	if len(n.scopes) <= 1 {
		return ErrScopeUnderflow
	}

	n.scopes = n.scopes[:len(n.scopes)-1]

	return nil
}

// Depth returns the number of open scopes.
func (n *ValueNamer) Depth() int {
	return len(n.scopes) - 1
}

// DeferToParent stores the next count fresh names in the parent frame.
func (n *ValueNamer) DeferToParent(count int) {
	n.deferLeft = count
}

// Reset restarts synthesized names from zero and forgets which display names
// were used. Recorded identifiers stay visible.
func (n *ValueNamer) Reset() {
	n.counter = 0
	n.used = make(map[string]struct{})
}

// Lookup returns the display name of id if any visible frame records it.
func (n *ValueNamer) Lookup(id string) (string, bool) {
	for i := len(n.scopes) - 1; i >= 0; i-- {
		if name, ok := n.scopes[i][id]; ok {
			return name, true
		}
	}

	return "", false
}

// Resolve returns the display name of id, assigning a new one if id is not
// visible yet. fresh is true when the name was assigned by this call.
func (n *ValueNamer) Resolve(id string) (name string, fresh bool, err error) {
	if name, ok := n.Lookup(id); ok {
		return name, false, nil
	}

	name = nextName(&n.overrides, &n.counter, valueNamePrefix)

	if _, dup := n.used[name]; dup {
		return "", false, &DuplicateNameError{Kind: "variable", Name: name}
	}

	scope := len(n.scopes) - 1
	if n.deferLeft > 0 {
		n.deferLeft--
		scope = max(scope-1, 0)
	}

	n.scopes[scope][id] = name
	n.used[name] = struct{}{}

	slog.Debug("assigned value name", "id", id, "name", name, "scope", scope)

	return name, true, nil
}

func parseOverrides(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	names := strings.Split(list, ",")
	for i, name := range names {
		names[i] = strings.ToUpper(strings.TrimSpace(name))
	}

	return names
}

// nextName pops the next override, falling back to prefix plus counter when
// the list is exhausted or the entry is empty.
func nextName(overrides *[]string, counter *int, prefix string) string {
	name := ""
	if len(*overrides) > 0 {
		name = (*overrides)[0]
		*overrides = (*overrides)[1:]
	}

	if name == "" {
		name = prefix + strconv.Itoa(*counter)
		*counter++
	}

	return name
}
