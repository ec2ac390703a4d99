package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/trailspace/internal/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	tests := []struct {
		in   string
		want tcell.Color
	}{
		{"#ff0000", tcell.NewRGBColor(255, 0, 0)},
		{"#F00", tcell.NewRGBColor(255, 0, 0)},
		{"#ff000080", tcell.NewRGBColor(128, 0, 0)},
		{"rgb(10, 20, 30)", tcell.NewRGBColor(10, 20, 30)},
		{"rgba(200,0,0,0.5)", tcell.NewRGBColor(100, 0, 0)},
		{"rgba(255,100,100,0)", black},
		{"red", tcell.ColorRed},
		{"reset", tcell.ColorReset},
		{"default", tcell.ColorDefault},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in, black)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "rgb(1,2)", "rgba(1,2,3,1.5)", "rgb(300,0,0)", "hsl(1,2,3)", "notacolor"} {
		_, err := ParseColor(in, EditorBackground)
		require.Error(t, err, in)
	}
}

func TestWithTrailingColors(t *testing.T) {
	th := DevComfortDark(logger.Discard())
	require.NoError(t, th.WithTrailingColors("#00ff00", "blue"))

	_, bg, _ := th.GetStyle(StyleTrailingSpace).Decompose()
	require.Equal(t, tcell.NewRGBColor(0, 255, 0), bg)

	require.Error(t, th.WithTrailingColors("rgba(1,2)", ""))
}

func TestGetStyleFallback(t *testing.T) {
	th := DevComfortDark(logger.Discard())
	require.Equal(t, th.Styles[StyleStatusBarMessage], th.GetStyle("StatusBarMessage.unknown"))
	require.Equal(t, th.Styles[StyleDefault], th.GetStyle("Nope"))

	empty := &Theme{Name: "empty", Styles: map[string]tcell.Style{}}
	require.Equal(t, tcell.StyleDefault, empty.GetStyle("Nope"))
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[styles.TrailingSpace]
bg = "#123456"

[styles.StatusBar]
fg = "nonsense"
`), 0o644))

	th, err := LoadThemeFromFile(path, logger.Discard())
	require.NoError(t, err)
	require.Equal(t, "mine", th.Name)

	_, bg, _ := th.GetStyle(StyleTrailingSpace).Decompose()
	require.Equal(t, tcell.NewRGBColor(0x12, 0x34, 0x56), bg)
	require.Equal(t, DevComfortDark(nil).Styles[StyleStatusBar], th.GetStyle(StyleStatusBar), "invalid styles are skipped")
}
