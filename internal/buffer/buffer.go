// internal/buffer/buffer.go
package buffer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/bethropolis/trailspace/internal/types"
)

// Document URI schemes reported by Scheme.
const (
	SchemeFile     = "file"
	SchemeUntitled = "untitled"
)

var untitledSeq atomic.Int64

// versionSeq is shared by all buffers, so a version is never reused even
// when two buffers hold the same file.
var versionSeq atomic.Int64

// ErrRangeOrder is returned by DeleteRanges for ranges that are out of
// bounds, overlapping or not sorted bottom-to-top.
var ErrRangeOrder = errors.New("ranges must be in bounds, disjoint and sorted bottom-to-top")

// TextBuffer holds a document as one string plus a line-start index.
// It is not safe for concurrent mutation; the viewer mutates it only from
// its event goroutine.
type TextBuffer struct {
	text       string
	lineStarts []int

	filePath   string // absolute; empty for untitled buffers
	untitledID int64
	languageID string

	modified bool
	version  int
}

// New creates an empty untitled buffer.
func New() *TextBuffer {
	return NewUntitled("")
}

// NewUntitled creates an untitled buffer holding text.
func NewUntitled(text string) *TextBuffer {
	tb := &TextBuffer{untitledID: untitledSeq.Add(1)}
	tb.bump()
	tb.setText(text)
	return tb
}

// Open loads filePath into a new buffer. A missing file yields an empty
// buffer bound to that path.
func Open(filePath string) (*TextBuffer, error) {
	tb := &TextBuffer{}
	if err := tb.Load(filePath); err != nil {
		return nil, err
	}
	return tb, nil
}

// Load reads a file into the buffer, replacing its content.
func (tb *TextBuffer) Load(filePath string) error {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("resolving path '%s': %w", filePath, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	tb.filePath = abs
	tb.modified = false
	tb.bump()
	tb.setText(string(data))
	return nil
}

// Save writes the buffer to filePath, or to its own path when filePath is
// empty. Saving an untitled buffer to a path binds it to that path.
func (tb *TextBuffer) Save(filePath string) error {
	path := tb.filePath
	if filePath != "" {
		abs, err := filepath.Abs(filePath)
		if err != nil {
			return fmt.Errorf("resolving path '%s': %w", filePath, err)
		}
		path = abs
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}
	if err := os.WriteFile(path, []byte(tb.text), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	tb.filePath = path
	tb.modified = false
	return nil
}

// SetText replaces the whole content and marks the buffer modified.
func (tb *TextBuffer) SetText(text string) {
	if text == tb.text {
		return
	}
	tb.setText(text)
	tb.modified = true
	tb.bump()
}

func (tb *TextBuffer) bump() {
	tb.version = int(versionSeq.Add(1))
}

func (tb *TextBuffer) setText(text string) {
	tb.text = text
	tb.lineStarts = indexLines(text)
}

// Key identifies the document in caches: its absolute path, or
// "untitled:N" for buffers without one.
func (tb *TextBuffer) Key() string {
	if tb.filePath != "" {
		return tb.filePath
	}
	return SchemeUntitled + ":" + strconv.FormatInt(tb.untitledID, 10)
}

func (tb *TextBuffer) Text() string       { return tb.text }
func (tb *TextBuffer) Version() int       { return tb.version }
func (tb *TextBuffer) Path() string       { return tb.filePath }
func (tb *TextBuffer) IsUntitled() bool   { return tb.filePath == "" }
func (tb *TextBuffer) IsModified() bool   { return tb.modified }
func (tb *TextBuffer) LanguageID() string { return tb.languageID }

// SetLanguageID sets the language identifier used for ignore checks.
func (tb *TextBuffer) SetLanguageID(id string) { tb.languageID = id }

// Scheme reports "file" for buffers bound to a path, "untitled" otherwise.
func (tb *TextBuffer) Scheme() string {
	if tb.IsUntitled() {
		return SchemeUntitled
	}
	return SchemeFile
}

// Name is a short display name.
func (tb *TextBuffer) Name() string {
	if tb.IsUntitled() {
		return "[untitled-" + strconv.FormatInt(tb.untitledID, 10) + "]"
	}
	return filepath.Base(tb.filePath)
}

// DeleteRanges removes regions given bottom-to-top (descending, disjoint).
// Nothing is changed when any region is invalid.
func (tb *TextBuffer) DeleteRanges(reversed []types.Region) (types.EditInfo, error) {
	if len(reversed) == 0 {
		return types.EditInfo{}, nil
	}
	for i, r := range reversed {
		if r.Start < 0 || r.End > len(tb.text) || r.Start > r.End {
			return types.EditInfo{}, fmt.Errorf("%w: region [%d,%d) outside [0,%d)", ErrRangeOrder, r.Start, r.End, len(tb.text))
		}
		if i > 0 && r.End > reversed[i-1].Start {
			return types.EditInfo{}, fmt.Errorf("%w: region [%d,%d) after [%d,%d)", ErrRangeOrder, r.Start, r.End, reversed[i-1].Start, reversed[i-1].End)
		}
	}

	first := reversed[len(reversed)-1]
	last := reversed[0]
	info := types.EditInfo{
		StartOffset:  first.Start,
		OldEndOffset: last.End,
		StartLine:    tb.LineAt(first.Start),
		EndLine:      tb.LineAt(last.End),
		Deletions:    len(reversed),
	}

	var sb strings.Builder
	sb.Grow(len(tb.text))
	at := 0
	removed := 0
	for i := len(reversed) - 1; i >= 0; i-- {
		r := reversed[i]
		sb.WriteString(tb.text[at:r.Start])
		at = r.End
		removed += r.Len()
	}
	sb.WriteString(tb.text[at:])
	info.NewEndOffset = info.OldEndOffset - removed

	tb.setText(sb.String())
	tb.modified = true
	tb.bump()
	return info, nil
}
