// Package slides holds the closed set of slide renderers. Each slide
// type maps to one draw function; dispatch is by type tag through the
// registry, so adding a slide kind means adding a renderer here and a
// constant in model.
package slides

import (
	"image/color"
	"time"

	"github.com/craftboard/signcast/internal/anim"
	"github.com/craftboard/signcast/internal/canvas"
	"github.com/craftboard/signcast/internal/model"
	"github.com/craftboard/signcast/internal/poller"
)

// Theme is the shared palette passed to every renderer.
type Theme struct {
	Background color.RGBA
	Accent     color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
	Good       color.RGBA
	Warn       color.RGBA
	Bad        color.RGBA
}

// DefaultTheme is used when display configuration carries no palette.
func DefaultTheme() Theme {
	return Theme{
		Background: canvas.MustHexColor("#101418"),
		Accent:     canvas.MustHexColor("#2dd4bf"),
		Text:       canvas.MustHexColor("#e8eaed"),
		Muted:      canvas.MustHexColor("#6b7280"),
		Good:       canvas.MustHexColor("#34d399"),
		Warn:       canvas.MustHexColor("#fbbf24"),
		Bad:        canvas.MustHexColor("#f87171"),
	}
}

// Context carries everything a renderer may read: the latest data
// snapshot, the shared animation state, and the palette. Renderers never
// mutate the snapshot.
type Context struct {
	Data  poller.Snapshot
	Anim  *anim.State
	Theme Theme
	Title string
	Dt    time.Duration
}

// RenderFunc draws one slide onto the surface.
type RenderFunc func(s *canvas.Surface, ctx *Context)

var registry = map[model.SlideType]RenderFunc{
	model.SlideProjects:       drawProjects,
	model.SlidePurchaseOrders: drawPurchaseOrders,
	model.SlideRevenue:        drawRevenue,
	model.SlideSchedule:       drawSchedule,
	model.SlideMetrics:        drawMetrics,
	model.SlideDashboard:      drawDashboard,
}

// Render dispatches def to its renderer. Unknown types (a deck loaded
// before this binary learned a new kind) fall back to the no-data
// placeholder rather than failing the frame.
func Render(s *canvas.Surface, def model.SlideDefinition, ctx *Context) {
	fn, ok := registry[def.Type]
	if !ok {
		RenderNoData(s, ctx.Theme, string(def.Type))
		return
	}
	if ctx.Title == "" {
		ctx.Title = defaultTitle(def)
	}
	fn(s, ctx)
}

func defaultTitle(def model.SlideDefinition) string {
	if def.Title != "" {
		return def.Title
	}
	switch def.Type {
	case model.SlideProjects:
		return "ACTIVE PROJECTS"
	case model.SlidePurchaseOrders:
		return "RECENT PURCHASE ORDERS"
	case model.SlideRevenue:
		return "REVENUE"
	case model.SlideSchedule:
		return "INSTALL SCHEDULE"
	case model.SlideMetrics:
		return "PROJECT HEALTH"
	case model.SlideDashboard:
		return "COMPANY DASHBOARD"
	}
	return "SIGNCAST"
}
