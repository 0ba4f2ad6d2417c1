package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

const maxLabelWidth = 48

// SimpleUI implements UI by printing to the command's error stream, leaving
// stdout free for generated assertions.
type SimpleUI struct {
	cmd    *cobra.Command
	mu     sync.Mutex
	styled bool

	heading lipgloss.Style
	failure lipgloss.Style
	success lipgloss.Style
	removed lipgloss.Style
	added   lipgloss.Style
}

// NewSimpleUI creates a new SimpleUI. With styled set, headings and diff
// lines are colored.
func NewSimpleUI(cmd *cobra.Command, styled bool) *SimpleUI {
	s := &SimpleUI{cmd: cmd, styled: styled}

	if styled {
		s.heading = lipgloss.NewStyle().Bold(true)
		s.failure = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		s.success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		s.removed = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		s.added = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	}

	return s
}

// DisplaySummary prints one table row per generated group.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mode := "standalone"
	if summary.Merged {
		mode = "merged"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s\n", s.render(s.heading, fmt.Sprintf("%s -> %s (%s)", summary.Input, summary.Output, mode)))
	s.printf("%s", renderSummaryTable(summary))

	return nil
}

func renderSummaryTable(summary m.RunSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Group", "Label", "Assertions", "Values"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	assertions := summary.Preamble

	for _, g := range summary.Groups {
		table.Append([]string{
			fmt.Sprintf("%d", g.Index),
			truncate(g.Label, maxLabelWidth),
			fmt.Sprintf("%d", g.Assertions),
			fmt.Sprintf("%d", g.Values),
		})

		assertions += g.Assertions
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d", len(summary.Groups)),
		fmt.Sprintf("%d attributes", summary.Attributes),
		fmt.Sprintf("%d", assertions),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayDiff prints the unified diff of an out-of-date source.
func (s *SimpleUI) DisplayDiff(ctx context.Context, source m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s\n", s.render(s.failure, fmt.Sprintf("%s: assertions are out of date", source)))

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			s.printf("%s", line)
		case strings.HasPrefix(line, "-"):
			s.printf("%s\n", s.render(s.removed, strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "+"):
			s.printf("%s\n", s.render(s.added, strings.TrimSuffix(line, "\n")))
		default:
			s.printf("%s", line)
		}
	}
}

// DisplayUpToDate confirms that source needs no regeneration.
func (s *SimpleUI) DisplayUpToDate(ctx context.Context, source m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("%s\n", s.render(s.success, fmt.Sprintf("%s: assertions are up to date", source)))
}

// DisplayBatchResult reports the outcome of one batch conversion.
func (s *SimpleUI) DisplayBatchResult(ctx context.Context, input, output m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.printf("%s\n", s.render(s.failure, fmt.Sprintf("FAIL %s: %v", input, err)))
		return
	}

	s.printf("ok   %s -> %s\n", input, output)
}

func (s *SimpleUI) render(style lipgloss.Style, text string) string {
	if !s.styled {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}

	return string(r[:width-1]) + "…"
}
