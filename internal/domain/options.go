package domain

// Default engine settings.
const (
	DefaultCheckPrefix      = "CHECK"
	DefaultSourceDelimRegex = "func @"
	DefaultStartsFromScope  = 1
)

// Options configures one conversion run.
type Options struct {
	// CheckPrefix is the FileCheck prefix used for generated lines.
	CheckPrefix string
	// SourceDelimRegex splits the companion source into segments.
	SourceDelimRegex string
	// StartsFromScope omits the given number of outermost scope levels,
	// e.g. "module {".
	StartsFromScope int
	// VariableNames and AttributeNames are comma separated override lists.
	// Empty entries fall back to synthesized names.
	VariableNames  string
	AttributeNames string
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		CheckPrefix:      DefaultCheckPrefix,
		SourceDelimRegex: DefaultSourceDelimRegex,
		StartsFromScope:  DefaultStartsFromScope,
	}
}

func (o Options) withDefaults() Options {
	if o.CheckPrefix == "" {
		o.CheckPrefix = DefaultCheckPrefix
	}

	if o.SourceDelimRegex == "" {
		o.SourceDelimRegex = DefaultSourceDelimRegex
	}

	if o.StartsFromScope < 0 {
		o.StartsFromScope = 0
	}

	return o
}
