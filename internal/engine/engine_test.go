package engine

import (
	"context"
	"testing"
	"time"

	"github.com/craftboard/signcast/internal/canvas"
	"github.com/craftboard/signcast/internal/model"
	"github.com/craftboard/signcast/internal/ndi"
	"github.com/craftboard/signcast/internal/poller"
	"github.com/craftboard/signcast/internal/schedule"
	"github.com/craftboard/signcast/internal/slides"
)

// captureTransport keeps the last frame it saw.
type captureTransport struct {
	frames int
	last   ndi.Frame
}

func (c *captureTransport) Open(string) error { return nil }
func (c *captureTransport) Send(f *ndi.Frame) error {
	c.frames++
	c.last = ndi.Frame{
		Pixels: append([]byte(nil), f.Pixels...),
		Width:  f.Width, Height: f.Height, RateN: f.RateN, RateD: f.RateD,
	}
	return nil
}
func (c *captureTransport) Close() error { return nil }

// emptySource satisfies model.Source with no data; engine tests exercise
// the loop mechanics, not the fetch plumbing.
type emptySource struct{}

func (emptySource) Name() string { return "mock" }
func (emptySource) FetchActiveProjects(context.Context) ([]model.Project, error) {
	return nil, nil
}
func (emptySource) FetchRecentPOs(context.Context) ([]model.PurchaseOrder, error) {
	return nil, nil
}
func (emptySource) FetchRevenueData(context.Context) ([]model.RevenuePoint, error) {
	return nil, nil
}
func (emptySource) FetchScheduleData(context.Context) ([]model.ScheduleEntry, error) {
	return nil, nil
}
func (emptySource) FetchProjectMetrics(context.Context) (model.ProjectMetrics, error) {
	return model.ProjectMetrics{}, nil
}
func (emptySource) FetchSlideConfig(context.Context) ([]model.SlideDefinition, error) {
	return nil, nil
}
func (emptySource) FetchDashboardMetrics(context.Context) (model.DashboardMetrics, error) {
	return model.DashboardMetrics{}, nil
}

func testConfig(deck []model.SlideDefinition) Config {
	return Config{
		Width:          96,
		Height:         54,
		FrameRate:      30,
		Theme:          slides.DefaultTheme(),
		TransitionKind: model.TransitionFade,
		TransitionTime: 200 * time.Millisecond,
		StaleThreshold: time.Minute,
		Deck:           deck,
	}
}

func newTestEngine(t *testing.T, deck []model.SlideDefinition) (*Engine, *captureTransport) {
	t.Helper()
	tr := &captureTransport{}
	sender := ndi.NewSender(tr)
	if err := sender.Initialize("test", 30); err != nil {
		t.Fatal(err)
	}
	poll := poller.NewManager(emptySource{}, poller.Intervals{})
	return New(testConfig(deck), poll, sender), tr
}

func twoSlideDeck() []model.SlideDefinition {
	return []model.SlideDefinition{
		{Type: model.SlideProjects, Enabled: true, Duration: time.Second},
		{Type: model.SlideDashboard, Enabled: true, Duration: time.Second},
	}
}

func TestTickSendsOneFrame(t *testing.T) {
	e, tr := newTestEngine(t, twoSlideDeck())

	e.tick(33 * time.Millisecond)

	if tr.frames != 1 {
		t.Fatalf("transport saw %d frames, want 1", tr.frames)
	}
	if tr.last.Width != 96 || tr.last.Height != 54 {
		t.Fatalf("frame is %dx%d", tr.last.Width, tr.last.Height)
	}
	if len(tr.last.Pixels) != 96*54*4 {
		t.Fatalf("payload is %d bytes", len(tr.last.Pixels))
	}
}

func TestTickAlwaysSendsCompleteCurrentFrame(t *testing.T) {
	e, tr := newTestEngine(t, twoSlideDeck())

	e.tick(33 * time.Millisecond)
	first := tr.last.Pixels

	// The frame sent each tick must be the bytes just composed, and the
	// previous frame's buffer must not have been scribbled on mid-send.
	e.tick(33 * time.Millisecond)
	if len(first) != len(tr.last.Pixels) {
		t.Fatal("frame size changed between ticks")
	}
}

func TestSlidePanicFallsBackToPlaceholder(t *testing.T) {
	e, tr := newTestEngine(t, twoSlideDeck())
	e.render = func(*canvas.Surface, model.SlideDefinition, *slides.Context) {
		panic("renderer exploded")
	}

	// Must not panic out of the tick, and must still emit a frame.
	e.tick(33 * time.Millisecond)

	if tr.frames != 1 {
		t.Fatalf("panicking slide dropped the frame: %d frames", tr.frames)
	}
	painted := false
	for i := 3; i < len(tr.last.Pixels); i += 4 {
		if tr.last.Pixels[i] != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Fatal("placeholder frame is blank")
	}
}

func TestTransitionTicksBlendBothSlides(t *testing.T) {
	e, _ := newTestEngine(t, twoSlideDeck())

	// Dwell out the first slide, then step into the transition.
	e.tick(time.Second)
	e.tick(50 * time.Millisecond)
	if e.sched.Phase() != schedule.PhaseTransitioning {
		t.Fatalf("phase = %v, want transitioning", e.sched.Phase())
	}

	// Finish the transition; the second slide becomes active.
	e.tick(300 * time.Millisecond)
	if e.sched.Phase() != schedule.PhaseShowing || e.sched.Active() != 1 {
		t.Fatalf("after transition: phase=%v active=%d", e.sched.Phase(), e.sched.Active())
	}
}

func TestEmptyDeckRendersPlaceholderFrames(t *testing.T) {
	e, tr := newTestEngine(t, nil)

	e.tick(33 * time.Millisecond)
	e.tick(33 * time.Millisecond)

	if tr.frames != 2 {
		t.Fatalf("empty deck stopped the loop: %d frames", tr.frames)
	}
	if got := e.Stats().ActiveSlide; got != "" {
		t.Fatalf("active slide on empty deck = %q", got)
	}
}

func TestStaleDataSetsFlagAndBadge(t *testing.T) {
	e, _ := newTestEngine(t, twoSlideDeck())

	// Nothing fetched: every domain is stale at any threshold.
	e.tick(33 * time.Millisecond)
	if !e.Stats().Stale {
		t.Fatal("stale flag not set with empty caches")
	}
}

func TestStatsReflectSentFrames(t *testing.T) {
	e, _ := newTestEngine(t, twoSlideDeck())

	for i := 0; i < 5; i++ {
		e.tick(33 * time.Millisecond)
	}
	st := e.Stats()
	if st.FrameCount != 5 {
		t.Fatalf("frame count = %d, want 5", st.FrameCount)
	}
	if st.ActiveSlide != string(model.SlideProjects) {
		t.Fatalf("active slide = %q", st.ActiveSlide)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	e, _ := newTestEngine(t, twoSlideDeck())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestCacheAgesReportUnfetchedDomains(t *testing.T) {
	e, _ := newTestEngine(t, twoSlideDeck())
	ages := e.CacheAges()
	if len(ages) != 7 {
		t.Fatalf("CacheAges reported %d domains", len(ages))
	}
	for name, a := range ages {
		if a.Fetched {
			t.Errorf("domain %s reported fetched with no data", name)
		}
	}
}
