package slides

import (
	"fmt"
	"math/rand"

	"github.com/craftboard/signcast/internal/anim"
	"github.com/craftboard/signcast/internal/canvas"
)

// drawDashboard is the headline slide: company-wide numbers at large
// scale with a particle accent rising behind the revenue figure.
func drawDashboard(s *canvas.Surface, ctx *Context) {
	if ctx.Data.Dashboard.LastUpdated.IsZero() {
		RenderNoData(s, ctx.Theme, ctx.Title)
		return
	}
	d := ctx.Data.Dashboard.Data
	drawHeader(s, ctx, ctx.Title)

	m := margin(s)

	// A thin stream of sparks drifting up behind the hero figure.
	// Roughly twelve spawns per second, scaled by the frame delta.
	if rand.Float64() < 12*ctx.Dt.Seconds() {
		ctx.Anim.Spawn(anim.Particle{
			X:       float64(m) + rand.Float64()*float64(s.W/2),
			Y:       float64(s.H/2 + 40),
			VX:      (rand.Float64() - 0.5) * 20,
			VY:      -20 - rand.Float64()*40,
			Size:    1 + rand.Float64()*2,
			Color:   ctx.Theme.Accent,
			Life:    anim.ParticleLife,
			MaxLife: anim.ParticleLife,
		})
	}
	drawParticles(s, ctx)

	// Hero: month-to-date revenue.
	mtd := ctx.Anim.AnimatedNumber("dash:mtd", d.RevenueMTD, counterDuration)
	s.Text(m, s.H/2-110, "REVENUE MTD", ctx.Theme.Muted)
	s.TextScaled(m, s.H/2-40, fmtMoney(mtd), ctx.Theme.Accent, 7)

	ytd := ctx.Anim.AnimatedNumber("dash:ytd", d.RevenueYTD, counterDuration)
	s.Text(m, s.H/2+20, fmt.Sprintf("YTD %s", fmtMoney(ytd)), ctx.Theme.Text)

	// Right column: secondary figures.
	x := s.W/2 + 60
	rows := []struct {
		label string
		key   string
		value float64
		money bool
	}{
		{"OUTSTANDING AR", "dash:ar", d.OutstandingAR, true},
		{"OPEN PO VALUE", "dash:po", d.OpenPOAmount, true},
		{"PIPELINE", "dash:pipe", d.PipelineValue, true},
		{"ACTIVE PROJECTS", "dash:active", float64(d.ActiveProjects), false},
		{"WIN RATE", "dash:win", d.WinRatePct, false},
	}
	y := headerHeight + 70
	for _, r := range rows {
		v := ctx.Anim.AnimatedNumber(r.key, r.value, counterDuration)
		s.Text(x, y, r.label, ctx.Theme.Muted)
		var txt string
		if r.money {
			txt = fmtMoney(v)
		} else if r.label == "WIN RATE" {
			txt = fmt.Sprintf("%.0f%%", v)
		} else {
			txt = fmt.Sprintf("%.0f", v)
		}
		s.TextScaled(x, y+34, txt, ctx.Theme.Text, 3)
		y += 88
	}
}

// drawParticles paints the live particle set as soft squares fading with
// remaining life.
func drawParticles(s *canvas.Surface, ctx *Context) {
	for i := range ctx.Anim.Particles {
		p := &ctx.Anim.Particles[i]
		sz := int(p.Size)
		if sz < 1 {
			sz = 1
		}
		s.FillRectBlend(int(p.X), int(p.Y), sz, sz, p.Color, p.Alpha*0.8)
	}
}
