// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/trailspace/internal/buffer"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/theme"
	"github.com/bethropolis/trailspace/internal/types"
	"github.com/rivo/uniseg"
)

// View is the part of a document that is drawn.
type View struct {
	Doc         *buffer.TextBuffer
	Caret       types.Position
	Top         int // first visible line
	Left        int // first visible visual column
	Decorations []types.Region
	TabWidth    int
	LineNumbers bool
	// ActiveLine paints the caret line with the ActiveLine style.
	ActiveLine bool
}

// TextHeight is the number of document rows that fit above the status bar.
func TextHeight(screenHeight int) int {
	return screenHeight - config.StatusBarHeight
}

// GutterWidth returns the width of the line number gutter for v on a
// screen of the given width, or 0 when the gutter is off or does not fit.
func GutterWidth(v View, width int) int {
	if !v.LineNumbers {
		return 0
	}
	lineCount := v.Doc.LineCount()
	if lineCount == 0 {
		lineCount = 1
	} // Avoid Log10(0)
	gutterWidth := int(math.Log10(float64(lineCount))) + 2 // digits + padding
	if gutterWidth >= width {
		return 0
	}
	return gutterWidth
}

func tabWidth(v View) int {
	if v.TabWidth <= 0 {
		return config.DefaultTabWidth
	}
	return v.TabWidth
}

// VisualColumn returns the screen column of rune index runeCol in line,
// expanding tabs and using grapheme widths.
func VisualColumn(line string, runeCol, tabSize int) int {
	if tabSize <= 0 {
		tabSize = config.DefaultTabWidth
	}
	visualWidth := 0
	runeIndex := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if runeIndex >= runeCol {
			break
		}
		runes := gr.Runes()
		if runes[0] == '\t' {
			visualWidth += tabSize - visualWidth%tabSize
		} else {
			visualWidth += gr.Width()
		}
		runeIndex += len(runes)
	}
	return visualWidth
}

func decorated(decorations []types.Region, offset int) bool {
	for _, d := range decorations {
		if offset >= d.Start && offset < d.End {
			return true
		}
	}
	return false
}

// DrawDocument draws the visible portion of v.Doc with trailing regions in
// the theme's TrailingSpace style.
func DrawDocument(tuiManager *TUI, v View, activeTheme *theme.Theme) {
	screen := tuiManager.screen
	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	lineNumberStyle := activeTheme.GetStyle(theme.StyleLineNumber)
	activeNumberStyle := activeTheme.GetStyle(theme.StyleActiveLineNumber)
	activeLineStyle := activeTheme.GetStyle(theme.StyleActiveLine)
	trailingStyle := activeTheme.GetStyle(theme.StyleTrailingSpace)

	width, height := tuiManager.Size()
	viewHeight := TextHeight(height)
	if viewHeight <= 0 || width <= 0 || v.Doc == nil {
		return
	}

	gutterWidth := GutterWidth(v, width)
	textAreaWidth := width - gutterWidth
	tabSize := tabWidth(v)
	lineCount := v.Doc.LineCount()

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + v.Top
		rowStyle := defaultStyle
		if v.ActiveLine && lineIdx == v.Caret.Line {
			rowStyle = activeLineStyle
		}

		// --- A: Fill the row ---
		for fillX := 0; fillX < width; fillX++ {
			screen.SetContent(fillX, screenY, ' ', nil, rowStyle)
		}
		if lineIdx < 0 || lineIdx >= lineCount {
			continue
		}

		// --- B: Line number gutter ---
		if gutterWidth > 0 {
			numStyle := lineNumberStyle
			if lineIdx == v.Caret.Line {
				numStyle = activeNumberStyle
			}
			for i, r := range fmt.Sprintf("%*d", gutterWidth-1, lineIdx+1) {
				screen.SetContent(i, screenY, r, nil, numStyle)
			}
			screen.SetContent(gutterWidth-1, screenY, ' ', nil, numStyle)
		}

		// --- C: Text ---
		lineStart := v.Doc.LineSpan(lineIdx).Start
		gr := uniseg.NewGraphemes(v.Doc.Line(lineIdx))
		visualX := 0
		for gr.Next() {
			runes := gr.Runes()
			from, _ := gr.Positions()
			clusterWidth := gr.Width()
			if runes[0] == '\t' {
				clusterWidth = tabSize - visualX%tabSize
			}

			style := rowStyle
			if decorated(v.Decorations, lineStart+from) {
				style = trailingStyle
			}

			for cell := 0; cell < clusterWidth; cell++ {
				col := visualX + cell - v.Left
				if col < 0 || col >= textAreaWidth {
					continue
				}
				r, combining := ' ', []rune(nil)
				if cell == 0 && runes[0] != '\t' {
					r, combining = runes[0], runes[1:]
				}
				screen.SetContent(gutterWidth+col, screenY, r, combining, style)
			}

			visualX += clusterWidth
			if visualX-v.Left >= textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor on v.Caret, hiding it when the
// caret is scrolled out of view.
func DrawCursor(tuiManager *TUI, v View) {
	screen := tuiManager.screen
	width, height := tuiManager.Size()
	if v.Doc == nil {
		screen.HideCursor()
		return
	}
	gutterWidth := GutterWidth(v, width)
	visualCol := VisualColumn(v.Doc.Line(v.Caret.Line), v.Caret.Col, tabWidth(v))

	screenX := visualCol - v.Left + gutterWidth
	screenY := v.Caret.Line - v.Top
	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= TextHeight(height) {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(screenX, screenY)
}
