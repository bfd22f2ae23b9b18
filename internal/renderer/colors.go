package renderer

import (
	"image/color"
	"strconv"
	"strings"
)

// parseHexColor parses "#rgb" and "#rrggbb" notation, returning def
// when the value is empty or malformed.
func parseHexColor(s string, def color.Color) color.Color {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return def
	}
	hex := s[1:]

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return def
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return def
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}
