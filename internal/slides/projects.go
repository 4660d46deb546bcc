package slides

import (
	"fmt"

	"github.com/craftboard/signcast/internal/canvas"
)

// drawProjects lists active projects with animated progress gauges.
func drawProjects(s *canvas.Surface, ctx *Context) {
	projects := ctx.Data.Projects.Data
	if len(projects) == 0 {
		RenderNoData(s, ctx.Theme, ctx.Title)
		return
	}
	drawHeader(s, ctx, ctx.Title)

	m := margin(s)
	y := headerHeight + 28
	maxRows := (s.H - y - m) / rowHeight
	barX := s.W / 2
	barW := s.W - barX - m - 120

	for i, p := range projects {
		if i >= maxRows {
			more := fmt.Sprintf("+%d more", len(projects)-maxRows)
			s.Text(m, y+12, more, ctx.Theme.Muted)
			break
		}

		s.TextScaled(m, y+18, truncate(p.Name, 26), ctx.Theme.Text, 2)
		s.Text(m, y+38, truncate(p.Client+" / "+p.Manager, 40), ctx.Theme.Muted)

		frac := ctx.Anim.AnimatedNumber("project:"+p.ID, p.Progress, counterDuration)
		drawBar(s, barX, y+10, barW, 14, frac, statusColor(p.Status, ctx.Theme), canvas.Scale(ctx.Theme.Muted, 0.35))
		pct := fmt.Sprintf("%3.0f%%", frac*100)
		s.TextScaled(barX+barW+16, y+24, pct, ctx.Theme.Text, 2)

		if p.OpenIssues > 0 {
			s.Text(barX, y+38, fmt.Sprintf("%d open issues", p.OpenIssues), ctx.Theme.Warn)
		}

		y += rowHeight
	}
}
