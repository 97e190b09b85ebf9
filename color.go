package tacmap

import (
	"strconv"
	"strings"

	"github.com/gookit/color"
)

// ParseHexColor parses "#RGB", "#RRGGBB" or "#AARRGGBB" (the leading '#' is
// optional). Anything else yields ColorTransparent.
func ParseHexColor(hex string) Color {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	alpha := 1.0
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[:2], 16, 8)
		if err != nil {
			return ColorTransparent
		}
		alpha = float64(a) / 255
		s = s[2:]
	}
	if len(s) != 3 && len(s) != 6 {
		return ColorTransparent
	}
	rgb := color.HexToRgb(s)
	if len(rgb) != 3 {
		return ColorTransparent
	}
	return Color{
		R: float64(rgb[0]) / 255,
		G: float64(rgb[1]) / 255,
		B: float64(rgb[2]) / 255,
		A: alpha,
	}
}

// tokenKindColor is the fill used for tokens without artwork.
func tokenKindColor(k TokenKind) Color {
	switch k {
	case TokenOpponent:
		return Color{R: 0.85, G: 0.2, B: 0.2, A: 1}
	case TokenNPC:
		return Color{R: 0.9, G: 0.75, B: 0.25, A: 1}
	default:
		return Color{R: 0.25, G: 0.55, B: 0.95, A: 1}
	}
}
