package app

import (
	"math"
	"unicode/utf8"

	"github.com/bethropolis/trailspace/internal/buffer"
	"github.com/bethropolis/trailspace/internal/event"
	"github.com/bethropolis/trailspace/internal/input"
	"github.com/bethropolis/trailspace/internal/trimmer"
	"github.com/bethropolis/trailspace/internal/tui"
	"github.com/bethropolis/trailspace/internal/types"
)

// document is an open buffer plus its view state. Edits made through it
// are announced on the event bus.
type document struct {
	*buffer.TextBuffer
	app *App

	caret types.Position
	top   int
	left  int
}

var _ trimmer.Document = (*document)(nil)

// DeleteRanges applies the deletions and dispatches DocumentChanged.
func (d *document) DeleteRanges(reversed []types.Region) (types.EditInfo, error) {
	edit, err := d.TextBuffer.DeleteRanges(reversed)
	if err != nil || len(reversed) == 0 {
		return edit, err
	}
	d.caret, _ = d.ValidatePosition(d.caret)
	d.app.eventManager.Dispatch(event.TypeDocumentChanged, event.DocumentChangedData{Key: d.Key(), Edit: edit})
	return edit, nil
}

func (a *App) openDocument(path, languageID string) error {
	buf, err := buffer.Open(path)
	if err != nil {
		return err
	}
	if a.findDoc(buf.Key()) != nil {
		a.log.Debugf("App: %s is already open", buf.Path())
		return nil
	}
	a.trimmer.Forget(buf.Key())
	if languageID == "" {
		languageID = a.languages.Detect(buf.Path())
	}
	buf.SetLanguageID(languageID)
	a.docs = append(a.docs, &document{TextBuffer: buf, app: a})
	a.log.Debugf("App: opened %s as %s", buf.Path(), languageID)
	return nil
}

func (a *App) activeDoc() *document {
	if len(a.docs) == 0 {
		return nil
	}
	return a.docs[a.active]
}

func (a *App) findDoc(key string) *document {
	for _, d := range a.docs {
		if d.Key() == key {
			return d
		}
	}
	return nil
}

func (a *App) activeData() event.DocumentData {
	d := a.activeDoc()
	if d == nil {
		return event.DocumentData{}
	}
	return event.DocumentData{Key: d.Key(), Path: d.Path()}
}

func (a *App) anyModified() bool {
	for _, d := range a.docs {
		if d.IsModified() {
			return true
		}
	}
	return false
}

// switchDocument moves the active document by delta, wrapping around.
func (a *App) switchDocument(delta int) {
	if len(a.docs) < 2 {
		return
	}
	n := len(a.docs)
	a.active = ((a.active+delta)%n + n) % n
	a.eventManager.Dispatch(event.TypeActiveDocumentChanged, a.activeData())
}

func (a *App) textHeight() int {
	_, height := a.tuiManager.Size()
	return tui.TextHeight(height)
}

// moveCaret applies a movement action to the active document and reports
// whether the caret moved.
func (a *App) moveCaret(action input.Action) bool {
	d := a.activeDoc()
	if d == nil {
		return false
	}
	pos := d.caret
	page := a.textHeight() - 1
	if page < 1 {
		page = 1
	}

	switch action {
	case input.ActionMoveUp:
		pos.Line--
	case input.ActionMoveDown:
		pos.Line++
	case input.ActionMoveLeft:
		if pos.Col > 0 {
			pos.Col--
		} else if pos.Line > 0 {
			pos.Line--
			pos.Col = math.MaxInt
		}
	case input.ActionMoveRight:
		if pos.Col < utf8.RuneCountInString(d.Line(pos.Line)) {
			pos.Col++
		} else if pos.Line < d.LineCount()-1 {
			pos.Line++
			pos.Col = 0
		}
	case input.ActionMovePageUp:
		pos.Line -= page
	case input.ActionMovePageDown:
		pos.Line += page
	case input.ActionMoveHome:
		pos.Col = 0
	case input.ActionMoveEnd:
		pos.Col = math.MaxInt
	case input.ActionMoveFileStart:
		pos = types.Position{}
	case input.ActionMoveFileEnd:
		pos = types.Position{Line: math.MaxInt}
	default:
		return false
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	pos, _ = d.ValidatePosition(pos)
	if pos == d.caret {
		return false
	}
	d.caret = pos
	a.scrollToCaret(d)
	a.eventManager.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Key: d.Key(), Caret: pos})
	return true
}

// scrollToCaret keeps the caret inside the view with ScrollOff lines of
// context where the view is tall enough.
func (a *App) scrollToCaret(d *document) {
	height := a.textHeight()
	if height <= 0 {
		return
	}
	off := a.cfg.Viewer.ScrollOff
	if off*2 >= height {
		off = (height - 1) / 2
	}
	if d.caret.Line-off < d.top {
		d.top = d.caret.Line - off
	}
	if d.caret.Line+off >= d.top+height {
		d.top = d.caret.Line + off - height + 1
	}
	if d.top < 0 {
		d.top = 0
	}

	width, _ := a.tuiManager.Size()
	v := a.viewOf(d)
	textWidth := width - tui.GutterWidth(v, width)
	if textWidth <= 0 {
		return
	}
	col := tui.VisualColumn(d.Line(d.caret.Line), d.caret.Col, v.TabWidth)
	if col < d.left {
		d.left = col
	}
	if col >= d.left+textWidth {
		d.left = col - textWidth + 1
	}
}

// viewOf returns what the renderer needs for d.
func (a *App) viewOf(d *document) tui.View {
	v := tui.View{
		Doc:         d.TextBuffer,
		Caret:       d.caret,
		Top:         d.top,
		Left:        d.left,
		TabWidth:    a.cfg.Viewer.TabWidth,
		LineNumbers: a.cfg.Viewer.LineNumbers,
		ActiveLine:  true,
	}
	last := d.top + a.textHeight() - 1
	if last >= d.LineCount() {
		last = d.LineCount() - 1
	}
	if d.top <= last {
		span := types.Region{Start: d.LineSpan(d.top).Start, End: d.LineSpan(last).End}
		v.Decorations = a.highlights.DecorationsIn(d.Key(), span)
	}
	return v
}
