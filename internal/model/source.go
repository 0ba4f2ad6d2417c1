// Package model defines the data structures shared by the checkgen engine,
// its adapters and the CLI.
package model

// Path represents a file system path. The empty path stands for the standard
// stream of the respective direction.
type Path string

// Stdio reports whether p refers to the process' standard stream.
func (p Path) Stdio() bool {
	return p == "" || p == "-"
}

// String returns a display name for p.
func (p Path) String() string {
	if p.Stdio() {
		return "<stdio>"
	}

	return string(p)
}
