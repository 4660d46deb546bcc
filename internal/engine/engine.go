// Package engine runs the render loop: one tick per frame period, each
// tick advancing animation, then the slide rotation, then drawing into
// the back buffer, then swapping and sending. Later steps read outputs
// of earlier ones, so the order inside a tick is fixed.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/craftboard/signcast/internal/anim"
	"github.com/craftboard/signcast/internal/canvas"
	"github.com/craftboard/signcast/internal/model"
	"github.com/craftboard/signcast/internal/ndi"
	"github.com/craftboard/signcast/internal/poller"
	"github.com/craftboard/signcast/internal/schedule"
	"github.com/craftboard/signcast/internal/slides"
)

// Config is the display-side configuration the engine needs. It is a
// plain value handed to New; there is no process-wide mutable config.
type Config struct {
	Width          int
	Height         int
	FrameRate      int
	Theme          slides.Theme
	TransitionKind model.TransitionKind
	TransitionTime time.Duration
	StaleThreshold time.Duration
	StalePosition  string // top-left, top-right, bottom-left, bottom-right
	Deck           []model.SlideDefinition
}

// Engine composes the polling caches, animation state, slide scheduler,
// compositor, and sender into the fixed-rate loop.
type Engine struct {
	cfg    Config
	poll   *poller.Manager
	sender *ndi.Sender

	comp  *canvas.Compositor
	sched *schedule.Scheduler
	anim  *anim.State

	// Transition endpoints, allocated once. Surfaces are never created
	// per frame.
	fromBuf *canvas.Surface
	toBuf   *canvas.Surface

	// render is the slide dispatch; a seam so loop-level failure
	// handling is testable.
	render func(*canvas.Surface, model.SlideDefinition, *slides.Context)

	deckStamp time.Time

	stats statsCell
}

// New wires an engine. The initial deck comes from configuration; a
// slide-config fetch that later changes the deck swaps in a fresh
// scheduler (each deck stays immutable, the rotation restarts).
func New(cfg Config, poll *poller.Manager, sender *ndi.Sender) *Engine {
	e := &Engine{
		cfg:     cfg,
		poll:    poll,
		sender:  sender,
		comp:    canvas.NewCompositor(cfg.Width, cfg.Height, cfg.Theme.Background),
		sched:   schedule.New(cfg.Deck, cfg.TransitionKind, cfg.TransitionTime),
		anim:    anim.NewState(),
		fromBuf: canvas.NewSurface(cfg.Width, cfg.Height),
		toBuf:   canvas.NewSurface(cfg.Width, cfg.Height),
	}
	e.render = slides.Render
	e.stats.init()
	return e
}

// Run drives the loop until ctx is cancelled. If a tick overruns the
// frame period the ticker simply fires again as soon as possible; missed
// ticks are never queued, the loop always renders the current state.
func (e *Engine) Run(ctx context.Context) error {
	period := time.Second / time.Duration(e.cfg.FrameRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	statsTicker := time.NewTicker(time.Second)
	defer statsTicker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			e.tick(dt)
		case <-statsTicker.C:
			e.stats.sampleFPS(e.sender.FPS())
		}
	}
}

// tick runs one full cycle: animation, rotation, draw, swap, send.
func (e *Engine) tick(dt time.Duration) {
	e.maybeReloadDeck()

	e.anim.Update(dt, e.cfg.Width, e.cfg.Height)
	e.sched.Update(dt)

	snap := e.poll.Snapshot()
	e.comp.Clear()
	back := e.comp.Back()

	switch e.sched.Phase() {
	case schedule.PhaseEmpty:
		slides.RenderEmptyDeck(back, e.cfg.Theme)
	case schedule.PhaseShowing:
		e.renderSlide(back, e.sched.Slide(e.sched.Active()), snap, dt)
	case schedule.PhaseTransitioning:
		e.renderTransition(back, snap, dt)
	}

	if stale := e.poll.Stale(e.cfg.StaleThreshold); stale {
		e.drawStaleBadge(back)
		e.stats.setStale(true)
	} else {
		e.stats.setStale(false)
	}

	e.comp.Swap()

	// A send failure is already logged and counted by the sender; the
	// frame is dropped and the loop carries on.
	_ = e.sender.SendFrame(e.comp.FrontBytes(), e.cfg.Width, e.cfg.Height)
	e.stats.record(e.sender, e.activeType())
}

// renderSlide draws one slide, fencing off renderer panics: a slide that
// fails this frame degrades to the no-data placeholder instead of
// killing the loop.
func (e *Engine) renderSlide(target *canvas.Surface, def model.SlideDefinition, snap poller.Snapshot, dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: slide %q renderer panicked: %v", def.Type, r)
			slides.RenderNoData(target, e.cfg.Theme, def.Title)
		}
	}()
	e.render(target, def, &slides.Context{
		Data:  snap,
		Anim:  e.anim,
		Theme: e.cfg.Theme,
		Title: def.Title,
		Dt:    dt,
	})
}

// renderTransition draws both endpoint slides into the scratch buffers
// and blends them per the configured kind.
func (e *Engine) renderTransition(back *canvas.Surface, snap poller.Snapshot, dt time.Duration) {
	tr := e.sched.Transition()
	e.fromBuf.Fill(e.cfg.Theme.Background)
	e.toBuf.Fill(e.cfg.Theme.Background)
	e.renderSlide(e.fromBuf, e.sched.Slide(tr.From), snap, dt)
	e.renderSlide(e.toBuf, e.sched.Slide(tr.To), snap, dt)

	p := anim.EaseInOut(tr.Progress)
	switch e.sched.Kind() {
	case model.TransitionSlide:
		offset := int(p * float64(e.cfg.Width))
		back.BlitShifted(e.fromBuf, -offset, 0)
		back.BlitShifted(e.toBuf, e.cfg.Width-offset, 0)
	default: // fade
		back.CopyFrom(e.fromBuf)
		back.CompositeOver(e.toBuf, p)
	}
}

// drawStaleBadge overlays the staleness indicator in the configured
// corner.
func (e *Engine) drawStaleBadge(s *canvas.Surface) {
	const w, h = 150, 28
	var x, y int
	switch e.cfg.StalePosition {
	case "top-left":
		x, y = 12, 12
	case "bottom-left":
		x, y = 12, s.H-h-12
	case "bottom-right":
		x, y = s.W-w-12, s.H-h-12
	default: // top-right
		x, y = s.W-w-12, 12
	}
	s.FillRectBlend(x, y, w, h, canvas.MustHexColor("#000000"), 0.55)
	s.FillRect(x+8, y+h/2-4, 8, 8, e.cfg.Theme.Warn)
	s.Text(x+24, y+h/2+4, "STALE DATA", e.cfg.Theme.Warn)
}

// maybeReloadDeck swaps in a new scheduler when the polled slide
// configuration has changed since the current deck was built. Decks stay
// immutable; a change replaces the whole rotation and restarts it.
func (e *Engine) maybeReloadDeck() {
	cached := e.poll.Snapshot().Slides
	if cached.LastUpdated.IsZero() || cached.LastUpdated.Equal(e.deckStamp) {
		return
	}
	// An empty remote deck means the source does not manage the
	// rotation; keep the configured one.
	if len(cached.Data) == 0 {
		e.deckStamp = cached.LastUpdated
		return
	}
	e.deckStamp = cached.LastUpdated
	if !sameDeck(e.cfg.Deck, cached.Data) {
		log.Printf("engine: slide deck changed (%d slides), restarting rotation", len(cached.Data))
		e.cfg.Deck = cached.Data
		e.sched = schedule.New(cached.Data, e.cfg.TransitionKind, e.cfg.TransitionTime)
	}
}

func sameDeck(a, b []model.SlideDefinition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Enabled != b[i].Enabled ||
			a[i].Duration != b[i].Duration || a[i].Title != b[i].Title {
			return false
		}
	}
	return true
}

// activeType names the slide currently on screen for the stats surface.
func (e *Engine) activeType() string {
	switch e.sched.Phase() {
	case schedule.PhaseEmpty:
		return ""
	case schedule.PhaseTransitioning:
		return string(e.sched.Slide(e.sched.Transition().To).Type)
	default:
		return string(e.sched.Slide(e.sched.Active()).Type)
	}
}

// Stats returns a snapshot of loop health for the HTTP API. Safe to call
// from other goroutines.
func (e *Engine) Stats() Stats { return e.stats.snapshot() }

// Status exposes the poller's startup connection status.
func (e *Engine) Status() model.ConnectionStatus { return e.poll.Status() }

// CacheAges reports per-domain cache age for the HTTP API.
func (e *Engine) CacheAges() map[string]CacheAge {
	snap := e.poll.Snapshot()
	now := time.Now()
	out := map[string]CacheAge{
		string(poller.DomainProjects):  ageOf(snap.Projects.LastUpdated, now),
		string(poller.DomainPOs):       ageOf(snap.POs.LastUpdated, now),
		string(poller.DomainRevenue):   ageOf(snap.Revenue.LastUpdated, now),
		string(poller.DomainSchedule):  ageOf(snap.Schedule.LastUpdated, now),
		string(poller.DomainMetrics):   ageOf(snap.Metrics.LastUpdated, now),
		string(poller.DomainSlides):    ageOf(snap.Slides.LastUpdated, now),
		string(poller.DomainDashboard): ageOf(snap.Dashboard.LastUpdated, now),
	}
	return out
}

func ageOf(ts, now time.Time) CacheAge {
	if ts.IsZero() {
		return CacheAge{}
	}
	return CacheAge{LastUpdated: ts, AgeSeconds: now.Sub(ts).Seconds(), Fetched: true}
}
