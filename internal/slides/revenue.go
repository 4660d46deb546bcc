package slides

import (
	"github.com/craftboard/signcast/internal/canvas"
)

// drawRevenue renders a monthly bar chart: invoiced bars against target
// ticks, received overlaid darker. Bar heights ease in via the shared
// counters so a data refresh animates instead of popping.
func drawRevenue(s *canvas.Surface, ctx *Context) {
	series := ctx.Data.Revenue.Data
	if len(series) == 0 {
		RenderNoData(s, ctx.Theme, ctx.Title)
		return
	}
	drawHeader(s, ctx, ctx.Title)

	m := margin(s)
	chartTop := headerHeight + 40
	chartBottom := s.H - 80
	chartH := chartBottom - chartTop

	var peak float64
	for _, p := range series {
		if p.Invoiced > peak {
			peak = p.Invoiced
		}
		if p.Target > peak {
			peak = p.Target
		}
	}
	if peak <= 0 {
		peak = 1
	}

	slot := (s.W - 2*m) / len(series)
	barW := slot * 6 / 10

	for i, p := range series {
		x := m + i*slot + (slot-barW)/2

		key := "revenue:" + p.Period.Format("2006-01")
		inv := ctx.Anim.AnimatedNumber(key, p.Invoiced, counterDuration)
		h := int(inv / peak * float64(chartH))
		s.FillRect(x, chartBottom-h, barW, h, ctx.Theme.Accent)

		recvH := int(p.Received / peak * float64(chartH))
		if recvH > h {
			recvH = h
		}
		s.FillRect(x, chartBottom-recvH, barW, recvH, canvas.Scale(ctx.Theme.Accent, 0.55))

		// Target tick across the slot.
		ty := chartBottom - int(p.Target/peak*float64(chartH))
		s.HLine(x-4, ty, barW+8, ctx.Theme.Warn)

		label := p.Period.Format("Jan")
		s.Text(x+(barW-canvas.TextWidth(label))/2, chartBottom+20, label, ctx.Theme.Muted)
		s.Text(x+(barW-canvas.TextWidth(fmtMoney(p.Invoiced)))/2, chartBottom-h-8, fmtMoney(p.Invoiced), ctx.Theme.Text)
	}

	s.HLine(m, chartBottom, s.W-2*m, canvas.Scale(ctx.Theme.Muted, 0.5))
}
