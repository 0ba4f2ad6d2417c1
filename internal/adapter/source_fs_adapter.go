// Package adapter contains the infrastructure adapters of the checkgen CLI.
package adapter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

// maxLineSize bounds a single input line. IR dumps can carry very long
// attribute dictionaries on one line.
const maxLineSize = 16 * 1024 * 1024

// SourceFSAdapter abstracts filesystem and standard stream access so the
// workflow logic can be tested without touching the disk. The empty path (or
// "-") refers to the standard stream of the respective direction.
type SourceFSAdapter interface {
	// ReadLines loads a text file (or stdin) and returns its lines without
	// line separators.
	ReadLines(path m.Path) ([]string, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file (or stdout) with the given
	// permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path so the domain can check existence
	// or keep the permissions of a rewritten file.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalSourceFSAdapter is the os backed SourceFSAdapter.
type LocalSourceFSAdapter struct {
	stdin  io.Reader
	stdout io.Writer
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter bound to the
// process' standard streams.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return NewStdioSourceFSAdapter(os.Stdin, os.Stdout)
}

// NewStdioSourceFSAdapter constructs a LocalSourceFSAdapter with explicit
// standard streams.
func NewStdioSourceFSAdapter(stdin io.Reader, stdout io.Writer) *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{stdin: stdin, stdout: stdout}
}

// ReadLines loads all lines of path.
func (a *LocalSourceFSAdapter) ReadLines(path m.Path) ([]string, error) {
	if path.Stdio() {
		return ScanLines(a.stdin)
	}

	// #nosec G304 - path is supplied by the user on purpose
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() { _ = f.Close() }()

	lines, err := ScanLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return lines, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	if path.Stdio() {
		return io.ReadAll(a.stdin)
	}

	return os.ReadFile(string(path))
}

// WriteFile writes content to path.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if path.Stdio() {
		_, err := a.stdout.Write(content)
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ScanLines reads r to the end and splits it into lines. Both "\n" and
// "\r\n" separators are accepted.
func ScanLines(r io.Reader) ([]string, error) {
	scn := bufio.NewScanner(r)
	scn.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scn.Scan() {
		lines = append(lines, scn.Text())
	}

	if err := scn.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
