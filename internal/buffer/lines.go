package buffer

import (
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/trailspace/internal/types"
)

// indexLines returns the byte offset where each line starts. Only "\n"
// ends a line, so "\r\n" is one terminator and a lone "\r" is content, the
// same model the finder's "$" anchor and the line diff use.
func indexLines(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineCount returns the number of lines. An empty buffer has one line, and
// text ending in a terminator has an empty last line.
func (tb *TextBuffer) LineCount() int {
	return len(tb.lineStarts)
}

// LineSpan returns the byte span of line including its terminator.
func (tb *TextBuffer) LineSpan(line int) types.Region {
	line = tb.clampLine(line)
	end := len(tb.text)
	if line+1 < len(tb.lineStarts) {
		end = tb.lineStarts[line+1]
	}
	return types.Region{Start: tb.lineStarts[line], End: end}
}

// Line returns the content of line without its terminator.
func (tb *TextBuffer) Line(line int) string {
	span := tb.contentSpan(line)
	return tb.text[span.Start:span.End]
}

// contentSpan is LineSpan minus the terminator. A "\r" belongs to the
// terminator only before "\n" or at the end of the text, matching the
// finder's `\r?$` lookahead.
func (tb *TextBuffer) contentSpan(line int) types.Region {
	span := tb.LineSpan(line)
	end := span.End
	switch {
	case end > span.Start && tb.text[end-1] == '\n':
		end--
		if end > span.Start && tb.text[end-1] == '\r' {
			end--
		}
	case end > span.Start && end == len(tb.text) && tb.text[end-1] == '\r':
		end--
	}
	return types.Region{Start: span.Start, End: end}
}

// LineAt returns the line holding offset, clamped to the buffer.
func (tb *TextBuffer) LineAt(offset int) int {
	if offset <= 0 {
		return 0
	}
	return sort.Search(len(tb.lineStarts), func(i int) bool {
		return tb.lineStarts[i] > offset
	}) - 1
}

// PositionAt converts a byte offset into a line and rune column.
func (tb *TextBuffer) PositionAt(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(tb.text) {
		offset = len(tb.text)
	}
	line := tb.LineAt(offset)
	content := tb.contentSpan(line)
	if offset > content.End {
		offset = content.End
	}
	return types.Position{Line: line, Col: utf8.RuneCountInString(tb.text[content.Start:offset])}
}

// OffsetAt converts a position into a byte offset after clamping it.
func (tb *TextBuffer) OffsetAt(pos types.Position) int {
	_, offset := tb.ValidatePosition(pos)
	return offset
}

// ValidatePosition clamps pos to the buffer (line first, then rune column)
// and returns it with its byte offset.
func (tb *TextBuffer) ValidatePosition(pos types.Position) (types.Position, int) {
	line := tb.clampLine(pos.Line)
	content := tb.contentSpan(line)
	text := tb.text[content.Start:content.End]

	col := pos.Col
	if col < 0 {
		col = 0
	}
	if runes := utf8.RuneCountInString(text); col >= runes {
		return types.Position{Line: line, Col: runes}, content.End
	}
	n := 0
	for i := range text {
		if n == col {
			return types.Position{Line: line, Col: col}, content.Start + i
		}
		n++
	}
	return types.Position{Line: line, Col: col}, content.End
}

func (tb *TextBuffer) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(tb.lineStarts) {
		return len(tb.lineStarts) - 1
	}
	return line
}
