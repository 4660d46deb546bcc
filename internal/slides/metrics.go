package slides

import (
	"fmt"

	"github.com/craftboard/signcast/internal/canvas"
)

// drawMetrics shows project-health figures: status counts, aggregate
// progress, budget burn, and a utilization gauge.
func drawMetrics(s *canvas.Surface, ctx *Context) {
	if ctx.Data.Metrics.LastUpdated.IsZero() {
		RenderNoData(s, ctx.Theme, ctx.Title)
		return
	}
	mt := ctx.Data.Metrics.Data
	drawHeader(s, ctx, ctx.Title)

	m := margin(s)
	colW := (s.W - 2*m) / 4
	y := headerHeight + 90

	counts := []struct {
		label string
		key   string
		value float64
	}{
		{"ACTIVE", "metrics:active", float64(mt.ActiveCount)},
		{"ON HOLD", "metrics:onhold", float64(mt.OnHoldCount)},
		{"COMPLETE", "metrics:complete", float64(mt.CompleteCount)},
		{"OVERDUE", "metrics:overdue", float64(mt.OverdueCount)},
	}
	for i, c := range counts {
		x := m + i*colW
		v := ctx.Anim.AnimatedNumber(c.key, c.value, counterDuration)
		num := fmt.Sprintf("%.0f", v)
		s.TextScaled(x, y, num, ctx.Theme.Text, 5)
		s.Text(x, y+28, c.label, ctx.Theme.Muted)
	}

	// Budget burn bar.
	y += 110
	frac := 0.0
	if mt.TotalBudget > 0 {
		frac = mt.TotalSpent / mt.TotalBudget
	}
	burn := ctx.Anim.AnimatedNumber("metrics:burn", frac, counterDuration)
	tone := ctx.Theme.Good
	if burn > 0.85 {
		tone = ctx.Theme.Warn
	}
	if burn > 1 {
		tone = ctx.Theme.Bad
	}
	s.Text(m, y-10, "BUDGET BURN", ctx.Theme.Muted)
	drawBar(s, m, y, s.W-2*m, 22, burn, tone, canvas.Scale(ctx.Theme.Muted, 0.35))
	label := fmt.Sprintf("%s of %s", fmtMoney(mt.TotalSpent), fmtMoney(mt.TotalBudget))
	s.Text(m, y+42, label, ctx.Theme.Text)

	// Utilization gauge.
	y += 90
	util := ctx.Anim.AnimatedNumber("metrics:util", mt.UtilizationPct/100, counterDuration)
	s.Text(m, y-10, "CREW UTILIZATION", ctx.Theme.Muted)
	drawBar(s, m, y, s.W-2*m, 22, util, ctx.Theme.Accent, canvas.Scale(ctx.Theme.Muted, 0.35))
	s.TextScaled(m, y+52, fmt.Sprintf("%.0f%%", util*100), ctx.Theme.Text, 2)

	avg := fmt.Sprintf("avg progress %.0f%%", mt.AvgProgress*100)
	s.Text(s.W-m-canvas.TextWidth(avg), y+46, avg, ctx.Theme.Muted)
}
