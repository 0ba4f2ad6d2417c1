package domain

import (
	"io"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

// Convert runs the complete engine on input. If source is non-nil the checks
// are merged into it; otherwise standalone output is written. Nothing is
// written to w when transformation or alignment fails.
func Convert(opts Options, input, source []string, w io.Writer) (*m.Checks, error) {
	opts = opts.withDefaults()

	var segments [][]string

	if source != nil {
		segmenter, err := NewSegmenter(opts.SourceDelimRegex, opts.CheckPrefix)
		if err != nil {
			return nil, err
		}

		segments = segmenter.SplitSource(source)
	}

	checks, err := NewTransformer(opts).Transform(input)
	if err != nil {
		return nil, err
	}

	asm := NewAssembler(w)

	if source == nil {
		if err := asm.WriteStandalone(checks); err != nil {
			return nil, err
		}

		return checks, nil
	}

	if err := asm.WriteMerged(checks, segments); err != nil {
		return nil, err
	}

	return checks, nil
}
