package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseColor understands "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r,g,b)",
// "rgba(r,g,b,a)", the tcell colour names, "reset" and "default".
// Translucent colours are blended onto over, since terminals have no alpha.
func ParseColor(s string, over tcell.Color) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return tcell.ColorDefault, fmt.Errorf("empty color")
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s, over)
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s, over)
	}

	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}

func parseHex(s string, over tcell.Color) (tcell.Color, error) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
	}
	alpha := 1.0
	if len(hex) == 8 {
		alpha = float64(val&0xff) / 255
		val >>= 8
	}
	r, g, b := int32(val>>16&0xff), int32(val>>8&0xff), int32(val&0xff)
	return blend(r, g, b, alpha, over), nil
}

func parseFunc(s string, over tcell.Color) (tcell.Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return tcell.ColorDefault, fmt.Errorf("invalid color function '%s'", s)
	}
	name := strings.TrimSpace(s[:open])
	parts := strings.Split(s[open+1:end], ",")
	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return tcell.ColorDefault, fmt.Errorf("unknown color function '%s'", name)
	}
	if len(parts) != want {
		return tcell.ColorDefault, fmt.Errorf("%s() takes %d arguments, got %d", name, want, len(parts))
	}

	var rgb [3]int32
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return tcell.ColorDefault, fmt.Errorf("invalid channel %q in '%s'", parts[i], s)
		}
		rgb[i] = int32(v)
	}
	alpha := 1.0
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return tcell.ColorDefault, fmt.Errorf("invalid alpha %q in '%s'", parts[3], s)
		}
		alpha = a
	}
	return blend(rgb[0], rgb[1], rgb[2], alpha, over), nil
}

// blend composites (r,g,b) with alpha onto over. An opaque colour, or an
// over colour without RGB value, returns the colour itself.
func blend(r, g, b int32, alpha float64, over tcell.Color) tcell.Color {
	if alpha >= 1 || !over.Valid() {
		return tcell.NewRGBColor(r, g, b)
	}
	or, og, ob := over.RGB()
	if or < 0 {
		return tcell.NewRGBColor(r, g, b)
	}
	mix := func(fg, bg int32) int32 {
		return int32(math.Round(float64(fg)*alpha + float64(bg)*(1-alpha)))
	}
	return tcell.NewRGBColor(mix(r, or), mix(g, og), mix(b, ob))
}
