package buffer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/trailspace/internal/types"
	"github.com/stretchr/testify/require"
)

func TestLineIndex(t *testing.T) {
	tb := NewUntitled("ab\r\ncd\nef\rgh")
	require.Equal(t, 3, tb.LineCount())
	require.Equal(t, types.Region{Start: 0, End: 4}, tb.LineSpan(0))
	require.Equal(t, types.Region{Start: 4, End: 7}, tb.LineSpan(1))
	require.Equal(t, types.Region{Start: 7, End: 12}, tb.LineSpan(2))
	require.Equal(t, []string{"ab", "cd", "ef\rgh"}, []string{tb.Line(0), tb.Line(1), tb.Line(2)})

	require.Equal(t, 0, tb.LineAt(3))
	require.Equal(t, 1, tb.LineAt(4))
	require.Equal(t, 2, tb.LineAt(9))
	require.Equal(t, 2, tb.LineAt(100))
	require.Equal(t, 0, tb.LineAt(-5))
}

func TestLoneCarriageReturn(t *testing.T) {
	tb := NewUntitled("a  \rb  \r")
	require.Equal(t, 1, tb.LineCount())
	require.Equal(t, "a  \rb  ", tb.Line(0), "only the final \\r ends the text")
	require.Equal(t, types.Position{Line: 0, Col: 7}, tb.PositionAt(8))
}

func TestEmptyAndTerminatedBuffers(t *testing.T) {
	empty := New()
	require.Equal(t, 1, empty.LineCount())
	require.Equal(t, types.Region{}, empty.LineSpan(0))

	tb := NewUntitled("x\n")
	require.Equal(t, 2, tb.LineCount())
	require.Equal(t, "", tb.Line(1))
	require.Equal(t, 1, tb.LineAt(2))
}

func TestValidatePosition(t *testing.T) {
	tb := NewUntitled("héllo\nab\n")
	tests := []struct {
		in      types.Position
		want    types.Position
		wantOff int
	}{
		{types.Position{Line: 0, Col: 0}, types.Position{Line: 0, Col: 0}, 0},
		{types.Position{Line: 0, Col: 2}, types.Position{Line: 0, Col: 2}, 3},
		{types.Position{Line: 0, Col: 99}, types.Position{Line: 0, Col: 5}, 6},
		{types.Position{Line: 1, Col: 1}, types.Position{Line: 1, Col: 1}, 8},
		{types.Position{Line: 9, Col: 9}, types.Position{Line: 2, Col: 0}, 10},
		{types.Position{Line: -1, Col: -1}, types.Position{Line: 0, Col: 0}, 0},
	}
	for _, tt := range tests {
		got, off := tb.ValidatePosition(tt.in)
		require.Equal(t, tt.want, got, "in %+v", tt.in)
		require.Equal(t, tt.wantOff, off, "in %+v", tt.in)
		require.Equal(t, tt.want, tb.PositionAt(off))
	}
}

func TestPositionAtInsideTerminator(t *testing.T) {
	tb := NewUntitled("ab\r\ncd")
	require.Equal(t, types.Position{Line: 0, Col: 2}, tb.PositionAt(3))
	require.Equal(t, types.Position{Line: 1, Col: 2}, tb.PositionAt(50))
}

func TestDeleteRanges(t *testing.T) {
	tb := NewUntitled("foo   \nbar  \nbaz\n")
	v := tb.Version()

	info, err := tb.DeleteRanges([]types.Region{{Start: 10, End: 12}, {Start: 3, End: 6}})
	require.NoError(t, err)
	require.Equal(t, "foo\nbar\nbaz\n", tb.Text())
	require.True(t, tb.IsModified())
	require.Greater(t, tb.Version(), v)
	require.Equal(t, types.EditInfo{
		StartOffset:  3,
		OldEndOffset: 12,
		NewEndOffset: 7,
		StartLine:    0,
		EndLine:      1,
		Deletions:    2,
	}, info)
	require.Equal(t, 4, tb.LineCount())
	require.Equal(t, "bar", tb.Line(1))
}

func TestVersionsUniqueAcrossBuffers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("a  \n"), 0o644))

	first, err := Open(path)
	require.NoError(t, err)
	second, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, first.Key(), second.Key())
	require.NotEqual(t, first.Version(), second.Version())

	v := first.Version()
	first.SetText("a\n")
	require.Greater(t, first.Version(), v)
	require.NotEqual(t, first.Version(), second.Version())
}

func TestDeleteRangesRejectsBadOrder(t *testing.T) {
	tb := NewUntitled("a  \nb  \n")
	for _, bad := range [][]types.Region{
		{{Start: 1, End: 3}, {Start: 5, End: 7}}, // ascending
		{{Start: 2, End: 6}, {Start: 1, End: 3}}, // overlapping
		{{Start: 5, End: 99}},                     // out of bounds
	} {
		_, err := tb.DeleteRanges(bad)
		require.ErrorIs(t, err, ErrRangeOrder)
		require.Equal(t, "a  \nb  \n", tb.Text())
	}

	info, err := tb.DeleteRanges(nil)
	require.NoError(t, err)
	require.Zero(t, info.Deletions)
	require.False(t, tb.IsModified())
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("one  \ntwo\n"), 0o644))

	tb, err := Open(path)
	require.NoError(t, err)
	require.False(t, tb.IsUntitled())
	require.Equal(t, SchemeFile, tb.Scheme())
	require.Equal(t, path, tb.Key())
	require.Equal(t, "doc.txt", tb.Name())

	_, err = tb.DeleteRanges([]types.Region{{Start: 3, End: 5}})
	require.NoError(t, err)
	require.NoError(t, tb.Save(""))
	require.False(t, tb.IsModified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))

	missing, err := Open(filepath.Join(dir, "new.txt"))
	require.NoError(t, err)
	require.Empty(t, missing.Text())
}

func TestUntitled(t *testing.T) {
	a, b := New(), New()
	require.True(t, a.IsUntitled())
	require.Equal(t, SchemeUntitled, a.Scheme())
	require.NotEqual(t, a.Key(), b.Key())
	require.True(t, strings.HasPrefix(a.Key(), "untitled:"))
	require.Error(t, a.Save(""))

	path := filepath.Join(t.TempDir(), "saved.txt")
	a.SetText("hi\n")
	require.NoError(t, a.Save(path))
	require.Equal(t, SchemeFile, a.Scheme())
	require.Equal(t, path, a.Key())
}
