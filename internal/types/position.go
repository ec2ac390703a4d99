// internal/types/position.go
package types

// Position represents a caret or text position within a document.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Region is a half-open byte span [Start, End) over a document's text.
type Region struct {
	Start int // inclusive
	End   int // exclusive
}

// IsEmpty reports whether the region covers zero bytes.
func (r Region) IsEmpty() bool {
	return r.End <= r.Start
}

// Len returns the number of bytes covered by the region.
func (r Region) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

// Intersects reports whether r and other share at least one byte.
func (r Region) Intersects(other Region) bool {
	return r.Start < other.End && other.Start < r.End
}
