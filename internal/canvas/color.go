package canvas

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(h) {
	case 6:
		if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
	case 3:
		if _, err := fmt.Sscanf(h, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustHexColor is ParseHexColor for compile-time constants in defaults
// and tests; it panics on malformed input.
func MustHexColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Scale returns c with each channel multiplied by f (0..1), keeping alpha.
func Scale(c color.RGBA, f float64) color.RGBA {
	f = clamp01(f)
	return color.RGBA{
		R: byte(float64(c.R) * f),
		G: byte(float64(c.G) * f),
		B: byte(float64(c.B) * f),
		A: c.A,
	}
}
