package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

const (
	valueSigil = "%"
	labelWidth = len("-LABEL")
)

// valueIDPattern matches an SSA identifier without its sigil.
const valueIDPattern = `(?:[0-9]+|[a-zA-Z$._-][a-zA-Z0-9$._-]*)`

var (
	valueIDRe          = regexp.MustCompile(`^` + valueIDPattern)
	resultsRe          = regexp.MustCompile(`^\s*(%` + valueIDPattern + `)(\s*,\s*(%` + valueIDPattern + `))*\s*=`)
	attributeRe        = regexp.MustCompile(`#[a-zA-Z._-][a-zA-Z0-9._-]*`)
	attributeDefRe     = regexp.MustCompile(`^\s*(#[a-zA-Z._-][a-zA-Z0-9._-]*)\s*=`)
	checkEscapeReplace = strings.NewReplacer(
		"[[", `{{\[\[}}`,
		"[%", `{{\[}}%`,
	)
)

// Transformer rewrites IR dump lines into FileCheck assertion lines. It owns
// the naming state of exactly one run and must not be shared.
//
// Block structure is detected lexically: a line ending in '{' opens a scope
// and a line starting with '}' closes one. The dialect grammar is never
// parsed.
type Transformer struct {
	opts   Options
	values *ValueNamer
	attrs  *AttributeNamer
	checks m.Checks
	lineNo int
}

// NewTransformer prepares a fresh run.
func NewTransformer(opts Options) *Transformer {
	opts = opts.withDefaults()

	return &Transformer{
		opts:   opts,
		values: NewValueNamer(opts.VariableNames),
		attrs:  NewAttributeNamer(opts.AttributeNames),
		checks: m.Checks{Groups: []m.Group{{Index: 0}}},
	}
}

// Transform processes all lines and returns the generated checks.
func (t *Transformer) Transform(lines []string) (*m.Checks, error) {
	for _, line := range lines {
		if err := t.TransformLine(line); err != nil {
			return nil, err
		}
	}

	slog.Debug("transformed input",
		"lines", t.lineNo,
		"groups", len(t.checks.Groups),
		"depth", t.values.Depth())

	return &t.checks, nil
}

// Depth returns the current scope nesting of the run.
func (t *Transformer) Depth() int {
	return t.values.Depth()
}

// TransformLine processes one input line.
func (t *Transformer) TransformLine(raw string) error {
	t.lineNo++

	if err := t.transform(raw); err != nil {
		slog.Error("transformation failed", "line", t.lineNo, "error", err)
		return &LineError{Line: t.lineNo, Err: err}
	}

	return nil
}

func (t *Transformer) transform(raw string) error {
	line := strings.TrimRightFunc(raw, unicode.IsSpace)
	if line == "" {
		return nil
	}

	if err := t.defineAttribute(line); err != nil {
		return err
	}

	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

	// Block labels carry a trailing predecessor comment.
	if trimmed[0] == '^' {
		if i := strings.LastIndex(line, "//"); i >= 0 {
			line = strings.TrimRightFunc(line[:i], unicode.IsSpace)
		}
	}

	level := t.values.Depth()

	if trimmed[0] == '}' {
		if err := t.values.ExitScope(); err != nil {
			return err
		}

		level = t.values.Depth()
	}

	if strings.HasSuffix(line, "{") {
		t.values.EnterScope()

		if level == t.opts.StartsFromScope {
			t.openGroup()
		}

		// Results of a region op must stay visible after the region closes.
		t.values.DeferToParent(countResults(line))
	}

	if level < t.opts.StartsFromScope {
		return nil
	}

	group := &t.checks.Groups[len(t.checks.Groups)-1]
	first := group.Empty()

	if first {
		t.values.Reset()
	}

	line = t.renameAttributes(escapeLine(line))
	chunks := strings.Split(line, valueSigil)

	// A label needs literal text to anchor on; value definitions are not
	// allowed in it.
	if !first || strings.TrimSpace(chunks[0]) == "" {
		rest, err := t.renameValues(group, chunks[1:])
		if err != nil {
			return err
		}

		if first {
			group.Label = strings.TrimSpace(chunks[0] + rest)
		}

		group.Lines = append(group.Lines, t.ordinaryLine(chunks[0]+rest))

		return nil
	}

	group.Label = strings.TrimSpace(chunks[0])
	group.Lines = append(group.Lines, t.labelLine(chunks[0]))
	pad := strings.Repeat(" ", utf8.RuneCountInString(chunks[0]))

	for _, chunk := range chunks[1:] {
		text, err := t.renameValues(group, []string{chunk})
		if err != nil {
			return err
		}

		group.Lines = append(group.Lines, t.sameLine(pad+text))
	}

	return nil
}

func (t *Transformer) openGroup() {
	index := len(t.checks.Groups)
	t.checks.Groups = append(t.checks.Groups, m.Group{Index: index})

	slog.Debug("opened output group", "group", index, "line", t.lineNo)
}

func (t *Transformer) defineAttribute(line string) error {
	match := attributeDefRe.FindStringSubmatch(line)
	if match == nil {
		return nil
	}

	name, err := t.attrs.Define(match[1])
	if err != nil {
		return err
	}

	t.checks.Attributes = append(t.checks.Attributes, m.NameBinding{
		Kind:    m.KindAttribute,
		Source:  match[1],
		Display: name,
	})
	t.checks.Preamble = append(t.checks.Preamble, trimRight(fmt.Sprintf(
		"// %s: #[[%s:.+]] =%s", t.opts.CheckPrefix, name, escapeLine(line[len(match[0]):]),
	)))

	return nil
}

func (t *Transformer) renameAttributes(line string) string {
	return attributeRe.ReplaceAllStringFunc(line, func(id string) string {
		return "#[[" + t.attrs.Reference(id) + "]]"
	})
}

// renameValues substitutes the identifier at the start of each chunk. Every
// chunk followed a value sigil in the original line.
func (t *Transformer) renameValues(group *m.Group, chunks []string) (string, error) {
	var b strings.Builder

	for _, chunk := range chunks {
		id := valueIDRe.FindString(chunk)
		if id == "" {
			b.WriteString(valueSigil)
			b.WriteString(chunk)

			continue
		}

		name, fresh, err := t.values.Resolve(id)
		if err != nil {
			return "", err
		}

		if fresh {
			group.Bindings = append(group.Bindings, m.NameBinding{
				Kind:    m.KindValue,
				Source:  valueSigil + id,
				Display: name,
			})
			b.WriteString("%[[" + name + ":.*]]")
		} else {
			b.WriteString("%[[" + name + "]]")
		}

		b.WriteString(chunk[len(id):])
	}

	return b.String(), nil
}

func (t *Transformer) labelLine(text string) string {
	return trimRight("// " + t.opts.CheckPrefix + "-LABEL: " + text)
}

func (t *Transformer) sameLine(text string) string {
	return trimRight("// " + t.opts.CheckPrefix + "-SAME:  " + text)
}

func (t *Transformer) ordinaryLine(text string) string {
	return trimRight("// " + t.opts.CheckPrefix + ": " + strings.Repeat(" ", labelWidth) + text)
}

// escapeLine hides sequences that FileCheck would read as substitution
// blocks.
func escapeLine(line string) string {
	return checkEscapeReplace.Replace(line)
}

// countResults returns the number of values defined on the left-hand side of
// an assignment such as "%0, %1 = ...".
func countResults(line string) int {
	match := resultsRe.FindString(line)

	return strings.Count(match, valueSigil)
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
