// Package modlines computes which lines of a document changed relative to an
// earlier snapshot and narrows trailing regions to those lines.
package modlines

import (
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/trailspace/internal/types"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineSet is a set of zero-based line numbers.
type LineSet map[int]struct{}

// Has reports whether line is in the set.
func (s LineSet) Has(line int) bool {
	_, ok := s[line]
	return ok
}

// Add inserts line into the set.
func (s LineSet) Add(line int) {
	s[line] = struct{}{}
}

// Len returns the number of lines in the set.
func (s LineSet) Len() int {
	return len(s)
}

// Sorted returns the lines in ascending order.
func (s LineSet) Sorted() []int {
	lines := make([]int, 0, len(s))
	for line := range s {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// ModifiedLines returns the line numbers of newText that were inserted or
// changed relative to oldText. Lines only removed from oldText leave no mark.
func ModifiedLines(oldText, newText string) LineSet {
	dmp := diffmatchpatch.New()
	rOld, rNew, _ := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	set := make(LineSet)
	lineNumber := 0
	for _, d := range diffs {
		// Each rune of d.Text stands for one whole line.
		count := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			if count == 0 {
				set.Add(lineNumber)
			}
			for i := 0; i < count; i++ {
				set.Add(lineNumber + i)
			}
			lineNumber += count
		case diffmatchpatch.DiffEqual:
			lineNumber += count
		}
	}
	return set
}

// FilterByModifiedLines keeps the regions whose first line is in set. lineOf
// maps a byte offset to its line number. Order is preserved.
func FilterByModifiedLines(regions []types.Region, set LineSet, lineOf func(offset int) int) []types.Region {
	out := make([]types.Region, 0, len(regions))
	for _, r := range regions {
		if set.Has(lineOf(r.Start)) {
			out = append(out, r)
		}
	}
	return out
}
