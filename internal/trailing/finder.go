package trailing

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/trailspace/internal/types"
	"github.com/dlclark/regexp2"
)

// Regions is the result of one scan.
//
// Every highlightable region derives from an offending one; highlightable
// regions touching the active line are narrower or missing when the active
// line is excluded.
type Regions struct {
	Offending     []types.Region
	Highlightable []types.Region
}

// IsEmpty reports whether the scan found nothing to delete.
func (r Regions) IsEmpty() bool {
	return len(r.Offending) == 0
}

// Matcher is a compiled Settings pattern. It is safe for concurrent use.
type Matcher struct {
	re       *regexp2.Regexp
	settings Settings
}

// Expression returns the full regular expression built from s.
// `$` matches before '\n'; an optional '\r' in front of it lets CRLF text
// behave like LF text.
func Expression(s Settings) string {
	expr := "(" + s.Pattern + `)(?=\r?$)`
	if !s.IncludeEmptyLines {
		expr = `\S` + expr
	}
	return expr
}

// Compile builds a Matcher for s.
func Compile(s Settings) (*Matcher, error) {
	if s.Pattern == "" {
		return nil, ErrMissingPattern
	}
	re, err := regexp2.Compile(Expression(s), regexp2.Multiline)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, s.Pattern, err)
	}
	if s.MatchTimeout > 0 {
		re.MatchTimeout = s.MatchTimeout
	}
	return &Matcher{re: re, settings: s}, nil
}

// Settings returns the policy the matcher was compiled from.
func (m *Matcher) Settings() Settings {
	return m.settings
}

// FindTrailingRegions compiles s and scans text in one step.
func FindTrailingRegions(text string, s Settings, activeLine *types.Region) (Regions, error) {
	m, err := Compile(s)
	if err != nil {
		return Regions{}, err
	}
	return m.Find(text, activeLine)
}

// Find scans text and returns its trailing regions in ascending order.
// activeLine, when non-nil, is the byte span of the line holding the caret,
// terminator included.
func (m *Matcher) Find(text string, activeLine *types.Region) (Regions, error) {
	offending, err := m.offending(text)
	if err != nil {
		return Regions{}, err
	}

	result := Regions{Offending: offending, Highlightable: offending}
	if !m.settings.HighlightCurrentLine && activeLine != nil {
		result.Highlightable = ExcludeLine(offending, *activeLine)
	}
	return result, nil
}

// offending runs the expression over the whole text. Zero-width groups (a
// pattern that can match nothing, e.g. `[\s]*`) are dropped.
func (m *Matcher) offending(text string) ([]types.Region, error) {
	offsets := newRuneOffsets(text)

	var regions []types.Region
	match, err := m.re.FindStringMatch(text)
	for ; match != nil && err == nil; match, err = m.re.FindNextMatch(match) {
		group := match.GroupByNumber(1)
		if group == nil {
			continue
		}
		end := match.Index + match.Length
		start := end - group.Length
		if start == end {
			continue
		}
		regions = append(regions, types.Region{Start: offsets.byteAt(start), End: offsets.byteAt(end)})
	}
	if err != nil {
		return nil, fmt.Errorf("scanning for trailing spaces: %w", err)
	}
	return regions, nil
}

// ExcludeLine returns the parts of regions lying outside line. A region is
// split at the line boundaries; parts inside the line are dropped.
func ExcludeLine(regions []types.Region, line types.Region) []types.Region {
	out := make([]types.Region, 0, len(regions))
	for _, r := range regions {
		if !r.Intersects(line) {
			out = append(out, r)
			continue
		}
		if r.Start < line.Start {
			out = append(out, types.Region{Start: r.Start, End: line.Start})
		}
		if r.End > line.End {
			out = append(out, types.Region{Start: line.End, End: r.End})
		}
	}
	return out
}

// Reverse returns a bottom-to-top copy of regions, the order in which they
// can be deleted one after another without invalidating offsets.
func Reverse(regions []types.Region) []types.Region {
	out := make([]types.Region, len(regions))
	for i, r := range regions {
		out[len(regions)-1-i] = r
	}
	return out
}

// runeOffsets maps the rune indexes regexp2 reports back to byte offsets.
type runeOffsets struct {
	table []int // nil when the text is pure ASCII
}

func newRuneOffsets(text string) runeOffsets {
	if utf8.RuneCountInString(text) == len(text) {
		return runeOffsets{}
	}
	table := make([]int, 0, len(text)+1)
	for i := range text {
		table = append(table, i)
	}
	table = append(table, len(text))
	return runeOffsets{table: table}
}

func (o runeOffsets) byteAt(runeIndex int) int {
	if o.table == nil {
		return runeIndex
	}
	if runeIndex >= len(o.table) {
		return o.table[len(o.table)-1]
	}
	return o.table[runeIndex]
}
