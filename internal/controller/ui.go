// Package controller provides the user-facing output of the checkgen CLI.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

// UI defines how workflow progress is reported to the user. Generated
// assertions never go through the UI; it only carries diagnostics and
// summaries. Implementations must be safe for concurrent use.
type UI interface {
	DisplaySummary(ctx context.Context, summary m.RunSummary) error
	DisplayDiff(ctx context.Context, source m.Path, diff string)
	DisplayUpToDate(ctx context.Context, source m.Path)
	DisplayBatchResult(ctx context.Context, input, output m.Path, err error)
}

// NewUI returns the UI for cmd. Styling is only applied on terminals.
func NewUI(cmd *cobra.Command, tty bool) UI {
	return NewSimpleUI(cmd, tty)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
