package badgekit

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB color. A transparent color paints nothing.
type Color struct {
	R, G, B     int
	Transparent bool
}

var (
	Black       = Color{0, 0, 0, false}
	White       = Color{255, 255, 255, false}
	Transparent = Color{Transparent: true}

	placeholderFill   = Color{245, 245, 245, false}
	placeholderStroke = Color{200, 30, 30, false}
)

var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"red":         {255, 0, 0, false},
	"green":       {0, 128, 0, false},
	"blue":        {0, 0, 255, false},
	"yellow":      {255, 255, 0, false},
	"orange":      {255, 165, 0, false},
	"purple":      {128, 0, 128, false},
	"gray":        {128, 128, 128, false},
	"grey":        {128, 128, 128, false},
	"silver":      {192, 192, 192, false},
	"navy":        {0, 0, 128, false},
	"maroon":      {128, 0, 0, false},
	"teal":        {0, 128, 128, false},
	"none":        Transparent,
	"transparent": Transparent,
}

// ParseColor understands "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r,g,b)",
// "rgba(r,g,b,a)", a few CSS color names and "transparent". The empty string
// is transparent.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Transparent, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseFunc(s)
	}
	return Color{}, fmt.Errorf("badgekit: unrecognised color %q", s)
}

func parseHex(h string) (Color, error) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("badgekit: bad hex color %q", "#"+h)
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("badgekit: bad hex color %q", "#"+h)
	}
	if len(h) == 8 {
		if v&0xff == 0 {
			return Transparent, nil
		}
		v >>= 8
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

func parseFunc(s string) (Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return Color{}, fmt.Errorf("badgekit: bad color %q", s)
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("badgekit: bad color %q", s)
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("badgekit: bad color component %q", parts[i])
		}
		rgb[i] = n
	}
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("badgekit: bad alpha %q", parts[3])
		}
		if a == 0 {
			return Transparent, nil
		}
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// colorOr parses s, falling back to def when s is empty or malformed.
func colorOr(s string, def Color) Color {
	if strings.TrimSpace(s) == "" {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
