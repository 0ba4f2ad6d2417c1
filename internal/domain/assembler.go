package domain

import (
	"bufio"
	"io"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

const bannerTool = "checkgen"

// Banner returns the provenance note written at the top of every output.
func Banner() []string {
	return []string{
		"// NOTE: Assertions have been autogenerated by " + bannerTool,
		"",
		"// The tool is designed to make adding checks to",
		"// a test case fast, it is *not* designed to be authoritative",
		"// about what constitutes a good test! The CHECK should be",
		"// minimized and named to reflect the test intent.",
		"",
	}
}

// Assembler writes generated checks, optionally interleaved with source
// segments.
type Assembler struct {
	w *bufio.Writer
}

// NewAssembler wraps w.
func NewAssembler(w io.Writer) *Assembler {
	return &Assembler{w: bufio.NewWriter(w)}
}

// WriteStandalone writes the banner and every non-empty group, each preceded
// by a blank line.
func (a *Assembler) WriteStandalone(checks *m.Checks) error {
	a.header(checks)

	for _, segment := range OutputSegments(checks, false) {
		a.line("")
		a.lines(segment)
	}

	a.line("")

	return a.w.Flush()
}

// WriteMerged writes the banner and then group i of the generated checks
// directly followed by source segment i.
func (a *Assembler) WriteMerged(checks *m.Checks, source [][]string) error {
	output := OutputSegments(checks, true)
	if err := Align(output, source); err != nil {
		return err
	}

	a.header(checks)

	for i := range output {
		a.lines(output[i])
		a.lines(source[i])
	}

	return a.w.Flush()
}

func (a *Assembler) header(checks *m.Checks) {
	a.lines(Banner())
	a.lines(checks.Preamble)
}

func (a *Assembler) lines(lines []string) {
	for _, l := range lines {
		a.line(l)
	}
}

// line ignores write errors; bufio.Writer keeps the first one and Flush
// reports it.
func (a *Assembler) line(l string) {
	_, _ = a.w.WriteString(l)
	_ = a.w.WriteByte('\n')
}
