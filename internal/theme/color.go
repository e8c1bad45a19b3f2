package theme

import (
	"fmt"
	"os"
	"strconv"

	"github.com/micro-editor/tcell/v2"
)

// InTmux is true if running inside tmux (needs 256-color safe palette)
var InTmux = os.Getenv("TMUX") != ""

// StringToColor returns a tcell color from a string representation of a
// color. Accepts the sixteen ANSI names (either bright... or light...
// for the brighter half), a 256-palette number, or a #rrggbb hex value.
func StringToColor(str string) (tcell.Color, bool) {
	switch str {
	case "black":
		return tcell.ColorBlack, true
	case "red":
		return tcell.ColorMaroon, true
	case "green":
		return tcell.ColorGreen, true
	case "yellow":
		return tcell.ColorOlive, true
	case "blue":
		return tcell.ColorNavy, true
	case "magenta":
		return tcell.ColorPurple, true
	case "cyan":
		return tcell.ColorTeal, true
	case "white":
		return tcell.ColorSilver, true
	case "brightblack", "lightblack":
		return tcell.ColorGray, true
	case "brightred", "lightred":
		return tcell.ColorRed, true
	case "brightgreen", "lightgreen":
		return tcell.ColorLime, true
	case "brightyellow", "lightyellow":
		return tcell.ColorYellow, true
	case "brightblue", "lightblue":
		return tcell.ColorBlue, true
	case "brightmagenta", "lightmagenta":
		return tcell.ColorFuchsia, true
	case "brightcyan", "lightcyan":
		return tcell.ColorAqua, true
	case "brightwhite", "lightwhite":
		return tcell.ColorWhite, true
	case "default":
		return tcell.ColorDefault, true
	default:
		// Check if this is a 256 color
		if num, err := strconv.Atoi(str); err == nil {
			return GetColor256(num), true
		}
		// Check if this is a truecolor hex value
		if _, _, _, ok := parseHex(str); ok {
			return TerminalColor(str), true
		}
		return tcell.ColorDefault, false
	}
}

// TerminalColor converts a hex color to tcell.Color, quantizing to the
// 256-color palette inside tmux for compatibility.
func TerminalColor(hex string) tcell.Color {
	if InTmux {
		return hexTo256Color(hex)
	}
	return tcell.GetColor(hex)
}

// hexTo256Color converts a hex color string to the closest 256-palette color
func hexTo256Color(hex string) tcell.Color {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return tcell.ColorDefault
	}

	// Use the 216-color cube (colors 16-231) for approximation.
	// Each channel maps to 0-5 range.
	ri := (r * 5) / 255
	gi := (g * 5) / 255
	bi := (b * 5) / 255

	return tcell.PaletteColor(16 + 36*ri + 6*gi + bi)
}

// GetColor256 returns the tcell color for a number between 0 and 255
func GetColor256(color int) tcell.Color {
	if color == 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(color)
}

func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	if n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil || n != 3 {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

// RGB splits a #rrggbb string into its channels.
func RGB(hex string) (r, g, b int, ok bool) {
	return parseHex(hex)
}

// blendHex composites fg over bg at the given opacity and returns the
// resulting hex color. Terminal cells have no alpha channel, so every
// translucent shade the clock uses is premixed against the backdrop.
func blendHex(bg, fg string, alpha float64) string {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	br, bgr, bb, ok := parseHex(bg)
	if !ok {
		return fg
	}
	fr, fgg, fb, ok := parseHex(fg)
	if !ok {
		return bg
	}
	mix := func(b, f int) int {
		v := int(float64(b) + (float64(f)-float64(b))*alpha + 0.5)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		return v
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(br, fr), mix(bgr, fgg), mix(bb, fb))
}
