// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the viewer.
const (
	StyleDefault           = "Default"
	StyleLineNumber        = "LineNumber"
	StyleActiveLine        = "ActiveLine"
	StyleActiveLineNumber  = "LineNumber.active"
	StyleTrailingSpace     = "TrailingSpace"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarError    = "StatusBarMessage.error"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style

	log *logger.Logger
}

// GetStyle returns the named style, falling back to its base name (the
// part before the first dot), then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		t.log.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		return defStyle
	}

	t.log.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Palette of the built-in theme.
var (
	dcBackground = tcell.NewHexColor(0x2a2f38)
	dcEditorBG   = tcell.NewHexColor(0x1e2127)
	dcActiveBG   = tcell.NewHexColor(0x2c313a)
	dcForeground = tcell.NewHexColor(0xc5cdd9)
	dcComment    = tcell.NewHexColor(0x5c6370)
	dcYellow     = tcell.NewHexColor(0xe5c07b)
	dcRed        = tcell.NewHexColor(0xe06c75)
)

// EditorBackground is the colour translucent highlight colours are blended
// onto.
var EditorBackground = dcEditorBG

// DevComfortDark returns a fresh copy of the built-in dark theme.
func DevComfortDark(log *logger.Logger) *Theme {
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)
	bar := tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground)

	return &Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		log:    log,
		Styles: map[string]tcell.Style{
			StyleDefault:           baseStyle,
			StyleLineNumber:        baseStyle.Foreground(dcComment),
			StyleActiveLineNumber:  baseStyle.Foreground(dcYellow),
			StyleActiveLine:        baseStyle.Background(dcActiveBG),
			StyleTrailingSpace:     baseStyle.Background(dcRed),
			StyleStatusBar:         bar,
			StyleStatusBarModified: bar.Foreground(dcYellow),
			StyleStatusBarMessage:  bar.Bold(true),
			StyleStatusBarError:    bar.Foreground(dcRed).Bold(true),
		},
	}
}

// WithTrailingColors sets the TrailingSpace style from the configured
// background and border colours. The border has no cell equivalent, so it
// becomes the underline colour. Empty strings keep the current style.
func (t *Theme) WithTrailingColors(background, border string) error {
	style := t.GetStyle(StyleTrailingSpace)
	if background != "" {
		c, err := ParseColor(background, EditorBackground)
		if err != nil {
			return err
		}
		style = style.Background(c)
	}
	if border != "" {
		c, err := ParseColor(border, EditorBackground)
		if err != nil {
			return err
		}
		style = style.Underline(true, c)
	}
	t.Styles[StyleTrailingSpace] = style
	return nil
}
