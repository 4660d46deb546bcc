package slides

import (
	"fmt"
	"image/color"
	"time"

	"github.com/craftboard/signcast/internal/canvas"
)

// Layout constants shared by the renderers. Horizontal positions scale
// off the surface size so the same renderers serve 720p and 1080p.
const (
	marginPct    = 0.04
	headerHeight = 72
	rowHeight    = 52
)

func margin(s *canvas.Surface) int {
	m := int(float64(s.W) * marginPct)
	if m < 16 {
		m = 16
	}
	return m
}

// drawHeader paints the title band: slide title on the left, wall clock
// on the right, accent rule underneath breathing with the ambient pulse.
func drawHeader(s *canvas.Surface, ctx *Context, title string) {
	m := margin(s)
	s.TextScaled(m, 44, title, ctx.Theme.Text, 3)

	clock := time.Now().Format("Mon 15:04")
	cw := canvas.TextWidth(clock) * 2
	s.TextScaled(s.W-m-cw, 40, clock, ctx.Theme.Muted, 2)

	rule := canvas.Scale(ctx.Theme.Accent, 0.55+0.45*ctx.Anim.Pulse())
	s.FillRect(m, headerHeight-8, s.W-2*m, 3, rule)
}

// drawBar paints a horizontal gauge: muted track under a partial fill.
func drawBar(s *canvas.Surface, x, y, w, h int, frac float64, fill, track color.RGBA) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	s.FillRect(x, y, w, h, track)
	s.FillRect(x, y, int(float64(w)*frac), h, fill)
}

// fmtMoney renders a compact dollar amount: $950, $12.4K, $3.1M.
func fmtMoney(v float64) string {
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%s$%.1fM", neg, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s$%.1fK", neg, v/1e3)
	default:
		return fmt.Sprintf("%s$%.0f", neg, v)
	}
}

// truncate shortens s to fit maxChars, appending an ellipsis marker.
func truncate(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	if maxChars <= 2 {
		return s[:maxChars]
	}
	return s[:maxChars-2] + ".."
}

// statusColor maps a lifecycle status string onto the palette.
func statusColor(status string, th Theme) color.RGBA {
	switch status {
	case "active", "approved", "received", "complete":
		return th.Good
	case "planning", "draft", "submitted":
		return th.Warn
	case "on_hold":
		return th.Bad
	default:
		return th.Muted
	}
}
