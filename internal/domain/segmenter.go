package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

// Segmenter splits a previously annotated source file into segments that line
// up with the generated groups.
type Segmenter struct {
	delim  *regexp.Regexp
	prefix string
	banner map[string]struct{}
}

// NewSegmenter compiles the delimiter pattern.
func NewSegmenter(delimRegex, checkPrefix string) (*Segmenter, error) {
	delim, err := regexp.Compile(delimRegex)
	if err != nil {
		return nil, fmt.Errorf("source delimiter %q: %w", delimRegex, err)
	}

	banner := make(map[string]struct{})

	for _, line := range Banner() {
		if line != "" {
			banner[line] = struct{}{}
		}
	}

	return &Segmenter{delim: delim, prefix: checkPrefix, banner: banner}, nil
}

// SplitSource drops banner lines and stale assertions, then starts a new
// segment at every line matching the delimiter. The first segment holds the
// lines before the first delimiter and may be empty.
func (s *Segmenter) SplitSource(lines []string) [][]string {
	segments := [][]string{{}}
	afterBanner := false

	for _, line := range lines {
		line = trimRight(line)

		if _, ok := s.banner[line]; ok {
			afterBanner = true
			continue
		}

		if line == "" && afterBanner {
			afterBanner = false
			continue
		}

		afterBanner = false

		if strings.Contains(line, s.prefix) {
			continue
		}

		if s.delim.MatchString(line) {
			segments = append(segments, []string{})
		}

		segments[len(segments)-1] = append(segments[len(segments)-1], line)
	}

	return segments
}

// OutputSegments returns the line groups of checks. In merge mode every group
// is kept, including the leading one, so that it pairs with the source
// header. Standalone output skips empty groups.
func OutputSegments(checks *m.Checks, merge bool) [][]string {
	groups := checks.Groups
	if !merge {
		groups = checks.NonEmptyGroups()
	}

	segments := make([][]string, 0, len(groups))
	for _, g := range groups {
		segments = append(segments, g.Lines)
	}

	return segments
}

// Align verifies that generated and source segments correspond one to one.
func Align(output, source [][]string) error {
	if len(output) != len(source) {
		err := &SegmentCountMismatchError{Output: len(output), Source: len(source)}
		slog.Error("segment alignment failed", "output", err.Output, "source", err.Source)

		return err
	}

	slog.Debug("segments aligned", "count", len(output))

	return nil
}
