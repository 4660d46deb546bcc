package slides

import (
	"time"

	"github.com/craftboard/signcast/internal/canvas"
)

// drawSchedule renders the crew board: upcoming installs grouped by day,
// unconfirmed entries flagged in the warn color.
func drawSchedule(s *canvas.Surface, ctx *Context) {
	entries := ctx.Data.Schedule.Data
	if len(entries) == 0 {
		RenderNoData(s, ctx.Theme, ctx.Title)
		return
	}
	drawHeader(s, ctx, ctx.Title)

	m := margin(s)
	y := headerHeight + 28
	maxRows := (s.H - y - m) / rowHeight

	var lastDay string
	for i, e := range entries {
		if i >= maxRows {
			break
		}

		day := e.StartsAt.Format("Mon Jan 2")
		if day != lastDay {
			s.TextScaled(m, y+10, day, ctx.Theme.Accent, 2)
			lastDay = day
			y += 30
		}

		window := e.StartsAt.Format("15:04") + "-" + e.EndsAt.Format("15:04")
		s.Text(m+16, y+8, window, ctx.Theme.Muted)
		s.TextScaled(m+140, y+14, truncate(e.Project, 28), ctx.Theme.Text, 2)
		s.Text(s.W/2+80, y+8, truncate(e.Crew+" @ "+e.Location, 36), ctx.Theme.Text)

		if !e.Confirmed {
			tag := "UNCONFIRMED"
			s.Text(s.W-m-canvas.TextWidth(tag), y+8, tag, ctx.Theme.Warn)
		}

		// Entries already underway get a live marker pulsing with the
		// ambient phase.
		now := time.Now()
		if now.After(e.StartsAt) && now.Before(e.EndsAt) {
			c := canvas.Scale(ctx.Theme.Good, 0.4+0.6*ctx.Anim.Pulse())
			s.FillRect(m, y, 6, 20, c)
		}

		y += rowHeight - 12
	}
}
