package slides

import (
	"fmt"

	"github.com/craftboard/signcast/internal/canvas"
)

// drawPurchaseOrders tabulates recent POs with status badges and a
// running total.
func drawPurchaseOrders(s *canvas.Surface, ctx *Context) {
	pos := ctx.Data.POs.Data
	if len(pos) == 0 {
		RenderNoData(s, ctx.Theme, ctx.Title)
		return
	}
	drawHeader(s, ctx, ctx.Title)

	m := margin(s)
	y := headerHeight + 24

	// Column guide line under the header row.
	s.Text(m, y, "PO#", ctx.Theme.Muted)
	s.Text(m+140, y, "VENDOR", ctx.Theme.Muted)
	s.Text(s.W/2, y, "PROJECT", ctx.Theme.Muted)
	s.Text(s.W-m-180, y, "AMOUNT", ctx.Theme.Muted)
	y += 10
	s.HLine(m, y, s.W-2*m, canvas.Scale(ctx.Theme.Muted, 0.4))
	y += 28

	var total float64
	maxRows := (s.H - y - 80) / rowHeight
	shown := 0
	for i, po := range pos {
		if i >= maxRows {
			break
		}
		shown++
		total += po.Amount

		s.TextScaled(m, y, po.Number, ctx.Theme.Text, 2)
		s.Text(m+140, y, truncate(po.Vendor, 24), ctx.Theme.Text)
		s.Text(s.W/2, y, truncate(po.Project, 24), ctx.Theme.Muted)

		amount := fmtMoney(po.Amount)
		s.TextScaled(s.W-m-180, y, amount, ctx.Theme.Text, 2)

		badge := statusColor(po.Status, ctx.Theme)
		s.FillRect(m-10, y-12, 4, 16, badge)

		y += rowHeight
	}

	// Animated running total along the bottom.
	sum := ctx.Anim.AnimatedNumber("po:total", total, counterDuration)
	label := fmt.Sprintf("%d orders / %s open", shown, fmtMoney(sum))
	s.TextScaled(m, s.H-40, label, ctx.Theme.Accent, 2)
}
