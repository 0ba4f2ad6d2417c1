package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"checkgen.dev/pkg/checkgen/internal/adapter"
	"checkgen.dev/pkg/checkgen/internal/controller"
	m "checkgen.dev/pkg/checkgen/internal/model"
)

var errBatchStdin = errors.New("batch inputs must be files, not stdin")

const (
	defaultFilePerm  = 0o644
	diffContextLines = 3
)

// GenerateArgs contains the arguments for a single conversion.
type GenerateArgs struct {
	Options
	// Input is the IR dump; empty means stdin.
	Input m.Path
	// Output is the destination; empty means stdout.
	Output m.Path
	// Source is the annotated file to merge into; empty means standalone.
	Source m.Path
	// InPlace rewrites Source instead of writing to Output.
	InPlace bool
	// NamesOut receives a YAML map of the assigned display names.
	NamesOut m.Path
	// NamesFrom supplies display names from an earlier name map. Explicit
	// override lists take precedence.
	NamesFrom m.Path
	// Summary prints a per-group table after writing.
	Summary bool
}

// VerifyArgs contains the arguments for checking a source file.
type VerifyArgs struct {
	Options
	Input  m.Path
	Source m.Path
	// NamesFrom is the name map the source was generated with, if any.
	NamesFrom m.Path
}

// BatchArgs contains the arguments for converting many inputs.
type BatchArgs struct {
	Options
	Inputs   []m.Path
	Suffix   string
	Parallel int
}

// Workflow defines the user-level operations of checkgen.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	Verify(ctx context.Context, args VerifyArgs) error
	Batch(ctx context.Context, args BatchArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.NameMapStore
	ui controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	nameStore adapter.NameMapStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		NameMapStore:    nameStore,
		ui:              ui,
	}
}

func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	if err := validateGenerateArgs(args); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	output := args.Output
	if args.InPlace {
		output = args.Source
	}

	slog.Info("generating checks", "input", args.Input.String(), "source", string(args.Source), "output", output.String())

	opts, err := w.applyNameMap(args.Options, args.NamesFrom)
	if err != nil {
		return err
	}

	content, checks, err := w.render(opts, args.Input, args.Source)
	if err != nil {
		return err
	}

	if err := w.WriteFile(output, content, w.permFor(output)); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	if args.NamesOut != "" {
		if err := w.SaveNameMap(args.NamesOut, m.NewNameMap(args.Input, checks)); err != nil {
			return fmt.Errorf("save name map: %w", err)
		}
	}

	if args.Summary {
		return w.ui.DisplaySummary(ctx, m.NewRunSummary(args.Input, output, args.Source != "", checks))
	}

	return nil
}

func validateGenerateArgs(args GenerateArgs) error {
	if !args.InPlace {
		return nil
	}

	if args.Output != "" {
		return ErrConflictingOutput
	}

	if args.Source == "" {
		return ErrMissingSource
	}

	return nil
}

func (w *workflow) applyNameMap(opts Options, path m.Path) (Options, error) {
	if path == "" {
		return opts, nil
	}

	names, err := w.LoadNameMap(path)
	if err != nil {
		return opts, fmt.Errorf("load name map: %w", err)
	}

	if opts.VariableNames == "" {
		opts.VariableNames = names.ValueOverrides()
	}

	if opts.AttributeNames == "" {
		opts.AttributeNames = names.AttributeOverrides()
	}

	return opts, nil
}

// render reads input and the optional source completely and returns the
// assembled output.
func (w *workflow) render(opts Options, input, source m.Path) ([]byte, *m.Checks, error) {
	lines, err := w.ReadLines(input)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}

	var sourceLines []string

	if source != "" {
		if sourceLines, err = w.ReadLines(source); err != nil {
			return nil, nil, fmt.Errorf("read source: %w", err)
		}

		if sourceLines == nil {
			sourceLines = []string{}
		}
	}

	var buf bytes.Buffer

	checks, err := Convert(opts, lines, sourceLines, &buf)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", input, err)
	}

	return buf.Bytes(), checks, nil
}

func (w *workflow) permFor(path m.Path) os.FileMode {
	if path.Stdio() {
		return defaultFilePerm
	}

	info, err := w.FileInfo(path)
	if err != nil {
		return defaultFilePerm
	}

	return info.Mode().Perm()
}

func (w *workflow) Verify(ctx context.Context, args VerifyArgs) error {
	if args.Source == "" {
		return ErrMissingSource
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	opts, err := w.applyNameMap(args.Options, args.NamesFrom)
	if err != nil {
		return err
	}

	regenerated, _, err := w.render(opts, args.Input, args.Source)
	if err != nil {
		return err
	}

	current, err := w.ReadFile(args.Source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	if bytes.Equal(current, regenerated) {
		slog.Info("assertions up to date", "source", string(args.Source))
		w.ui.DisplayUpToDate(ctx, args.Source)

		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(regenerated)),
		FromFile: string(args.Source),
		ToFile:   string(args.Source) + " (regenerated)",
		Context:  diffContextLines,
	})
	if err != nil {
		return fmt.Errorf("diff %s: %w", args.Source, err)
	}

	slog.Warn("assertions out of date", "source", string(args.Source))
	w.ui.DisplayDiff(ctx, args.Source, diff)

	return fmt.Errorf("%s: %w", args.Source, ErrOutOfDate)
}

// Batch converts every input independently. Each conversion owns its own
// engine state, so runs may proceed concurrently.
func (w *workflow) Batch(ctx context.Context, args BatchArgs) error {
	if args.Suffix == "" {
		return ErrEmptySuffix
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(args.Parallel, 1))

	for _, input := range args.Inputs {
		output := m.Path(string(input) + args.Suffix)

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			err := w.convertOne(args.Options, input, output)
			w.ui.DisplayBatchResult(groupCtx, input, output, err)

			return err
		})
	}

	return group.Wait()
}

func (w *workflow) convertOne(opts Options, input, output m.Path) error {
	if input.Stdio() {
		return errBatchStdin
	}

	content, _, err := w.render(opts, input, "")
	if err != nil {
		return err
	}

	slog.Debug("writing batch output", "input", string(input), "output", string(output))

	return w.WriteFile(output, content, defaultFilePerm)
}
