// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/trailspace/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg" // For proper Unicode width calculation
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleModified  tcell.Style // Style for the modified indicator
	StyleMessage   tcell.Style // Style for temporary messages
	StyleError     tcell.Style // Style for temporary error messages
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleError:     tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 3 * time.Second,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	now    func() time.Time
	mu     sync.RWMutex

	fileName   string
	languageID string
	cursorPos  types.Position
	isModified bool
	regions    int

	tempMessage     string
	tempIsError     bool
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetConfig swaps the styles and timeout, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file name, language and modified flag.
func (sb *StatusBar) SetFileInfo(name, languageID string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.fileName = name
	sb.languageID = languageID
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetRegionCount updates the number of trailing regions shown.
func (sb *StatusBar) SetRegionCount(n int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.regions = n
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setTemp(false, format, args...)
}

// SetTemporaryError displays an error message for the configured duration.
func (sb *StatusBar) SetTemporaryError(format string, args ...interface{}) {
	sb.setTemp(true, format, args...)
}

func (sb *StatusBar) setTemp(isError bool, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempIsError = isError
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line the bar would show now and its style. Expired
// temporary messages are cleared.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		if sb.tempIsError {
			return sb.tempMessage, sb.config.StyleError
		}
		return sb.tempMessage, sb.config.StyleMessage
	}

	name := sb.fileName
	if name == "" {
		name = "[No Name]"
	}
	style := sb.config.StyleDefault
	modified := ""
	if sb.isModified {
		modified = " [Modified]"
		style = sb.config.StyleModified
	}
	trailing := "no trailing spaces"
	switch sb.regions {
	case 0:
	case 1:
		trailing = "1 trailing region"
	default:
		trailing = fmt.Sprintf("%d trailing regions", sb.regions)
	}
	lang := ""
	if sb.languageID != "" {
		lang = " (" + sb.languageID + ")"
	}
	return fmt.Sprintf("%s%s%s -- Line: %d, Col: %d -- %s",
		name, lang, modified, sb.cursorPos.Line+1, sb.cursorPos.Col+1, trailing), style
}

// Draw renders the status bar onto the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
