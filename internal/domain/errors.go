package domain

import (
	"errors"
	"fmt"
)

// Fatal conditions of a conversion run. None of them is recoverable; the run
// aborts and nothing is written.
var (
	// ErrScopeUnderflow is returned for a closing marker without an open scope.
	ErrScopeUnderflow = errors.New("scope underflow: closing marker without open scope")
	// ErrDuplicateName is returned when a display name would be assigned twice.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrSegmentCountMismatch is returned when the source delimiter does not
	// split the source into one segment per generated group.
	ErrSegmentCountMismatch = errors.New("segment count mismatch")
)

// Usage errors reported before any input is processed.
var (
	ErrConflictingOutput = errors.New("in-place rewrite cannot be combined with an explicit output")
	ErrMissingSource     = errors.New("in-place rewrite requires a source file")
	ErrOutOfDate         = errors.New("assertions are out of date")
	ErrEmptySuffix       = errors.New("batch output suffix must not be empty")
)

// DuplicateNameError identifies the offending display name.
type DuplicateNameError struct {
	Kind string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate %s name", e.Name, e.Kind)
}

func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// SegmentCountMismatchError carries both segment counts.
type SegmentCountMismatchError struct {
	Output int
	Source int
}

func (e *SegmentCountMismatchError) Error() string {
	return fmt.Sprintf("%d generated groups but %d source segments", e.Output, e.Source)
}

func (e *SegmentCountMismatchError) Unwrap() error { return ErrSegmentCountMismatch }

// LineError attaches the 1-based input line number to a transformation error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
