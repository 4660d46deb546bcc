// Package poller keeps the per-domain business-data caches fresh. Each
// domain refreshes on its own timer, failures keep the last known good
// value, and the render loop only ever reads whole-snapshot copies.
package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/craftboard/signcast/internal/model"
	"golang.org/x/sync/errgroup"
)

const fetchTimeout = 10 * time.Second

// Domain names one independently refreshed cache.
type Domain string

const (
	DomainProjects  Domain = "projects"
	DomainPOs       Domain = "purchase_orders"
	DomainRevenue   Domain = "revenue"
	DomainSchedule  Domain = "schedule"
	DomainMetrics   Domain = "metrics"
	DomainSlides    Domain = "slides"
	DomainDashboard Domain = "dashboard"
)

// Domains lists every cache domain in a stable order.
var Domains = []Domain{
	DomainProjects, DomainPOs, DomainRevenue, DomainSchedule,
	DomainMetrics, DomainSlides, DomainDashboard,
}

// Cached pairs a domain snapshot with the time it was last successfully
// fetched. LastUpdated stays zero until the first success; the pair is
// always replaced as a whole, never field by field.
type Cached[T any] struct {
	Data        T
	LastUpdated time.Time
}

// Age returns how old the entry is, or a negative value if never updated.
func (c Cached[T]) Age(now time.Time) time.Duration {
	if c.LastUpdated.IsZero() {
		return -1
	}
	return now.Sub(c.LastUpdated)
}

// Snapshot is a value copy of every cache domain. Slides receive one per
// frame and may read it freely without locking.
type Snapshot struct {
	Projects  Cached[[]model.Project]
	POs       Cached[[]model.PurchaseOrder]
	Revenue   Cached[[]model.RevenuePoint]
	Schedule  Cached[[]model.ScheduleEntry]
	Metrics   Cached[model.ProjectMetrics]
	Slides    Cached[[]model.SlideDefinition]
	Dashboard Cached[model.DashboardMetrics]
}

// Intervals holds one refresh period per domain. Distinct periods are
// expected; the manager never coalesces them onto a shared timer.
type Intervals struct {
	Projects  time.Duration
	POs       time.Duration
	Revenue   time.Duration
	Schedule  time.Duration
	Metrics   time.Duration
	Slides    time.Duration
	Dashboard time.Duration
}

// DefaultIntervals mirror how quickly each domain moves in practice.
func DefaultIntervals() Intervals {
	return Intervals{
		Projects:  30 * time.Second,
		POs:       60 * time.Second,
		Revenue:   5 * time.Minute,
		Schedule:  2 * time.Minute,
		Metrics:   time.Minute,
		Slides:    5 * time.Minute,
		Dashboard: time.Minute,
	}
}

// Manager owns the caches and the per-domain refresh timers.
type Manager struct {
	source    model.Source
	intervals Intervals

	mu     sync.RWMutex
	snap   Snapshot
	status model.ConnectionStatus

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	started  bool
}

// NewManager builds a manager over a data source. Zero intervals fall
// back to defaults.
func NewManager(source model.Source, intervals Intervals) *Manager {
	def := DefaultIntervals()
	pick := func(v, d time.Duration) time.Duration {
		if v <= 0 {
			return d
		}
		return v
	}
	return &Manager{
		source: source,
		intervals: Intervals{
			Projects:  pick(intervals.Projects, def.Projects),
			POs:       pick(intervals.POs, def.POs),
			Revenue:   pick(intervals.Revenue, def.Revenue),
			Schedule:  pick(intervals.Schedule, def.Schedule),
			Metrics:   pick(intervals.Metrics, def.Metrics),
			Slides:    pick(intervals.Slides, def.Slides),
			Dashboard: pick(intervals.Dashboard, def.Dashboard),
		},
		done: make(chan struct{}),
	}
}

// Start computes the connection status once from the source kind, runs
// one synchronous fetch of every domain, then arms one independent
// refresh loop per domain.
func (m *Manager) Start(ctx context.Context) {
	if m.started {
		return
	}
	m.started = true

	m.mu.Lock()
	m.status = model.ConnectionStatus{
		IsConnected:   m.source.Name() != "mock",
		UsingMockData: m.source.Name() == "mock",
	}
	m.mu.Unlock()

	m.FetchAll(ctx)

	for _, d := range Domains {
		m.wg.Add(1)
		go m.refreshLoop(ctx, d, m.interval(d))
	}
}

func (m *Manager) interval(d Domain) time.Duration {
	switch d {
	case DomainProjects:
		return m.intervals.Projects
	case DomainPOs:
		return m.intervals.POs
	case DomainRevenue:
		return m.intervals.Revenue
	case DomainSchedule:
		return m.intervals.Schedule
	case DomainMetrics:
		return m.intervals.Metrics
	case DomainSlides:
		return m.intervals.Slides
	default:
		return m.intervals.Dashboard
	}
}

func (m *Manager) refreshLoop(ctx context.Context, d Domain, every time.Duration) {
	defer m.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.fetch(ctx, d)
		case <-m.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// FetchAll refreshes every domain concurrently. Individual failures are
// logged and leave the previous value in place; FetchAll itself never
// fails.
func (m *Manager) FetchAll(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for _, d := range Domains {
		g.Go(func() error {
			m.fetch(gctx, d)
			return nil
		})
	}
	_ = g.Wait()
}

// fetch refreshes one domain. On success the domain's {data, lastUpdated}
// pair is replaced under the write lock as a unit; on failure the cache
// is untouched.
func (m *Manager) fetch(ctx context.Context, d Domain) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	now := time.Now()
	var err error

	switch d {
	case DomainProjects:
		var v []model.Project
		if v, err = m.source.FetchActiveProjects(ctx); err == nil {
			m.mu.Lock()
			m.snap.Projects = Cached[[]model.Project]{Data: v, LastUpdated: now}
			m.mu.Unlock()
		}
	case DomainPOs:
		var v []model.PurchaseOrder
		if v, err = m.source.FetchRecentPOs(ctx); err == nil {
			m.mu.Lock()
			m.snap.POs = Cached[[]model.PurchaseOrder]{Data: v, LastUpdated: now}
			m.mu.Unlock()
		}
	case DomainRevenue:
		var v []model.RevenuePoint
		if v, err = m.source.FetchRevenueData(ctx); err == nil {
			m.mu.Lock()
			m.snap.Revenue = Cached[[]model.RevenuePoint]{Data: v, LastUpdated: now}
			m.mu.Unlock()
		}
	case DomainSchedule:
		var v []model.ScheduleEntry
		if v, err = m.source.FetchScheduleData(ctx); err == nil {
			m.mu.Lock()
			m.snap.Schedule = Cached[[]model.ScheduleEntry]{Data: v, LastUpdated: now}
			m.mu.Unlock()
		}
	case DomainMetrics:
		var v model.ProjectMetrics
		if v, err = m.source.FetchProjectMetrics(ctx); err == nil {
			m.mu.Lock()
			m.snap.Metrics = Cached[model.ProjectMetrics]{Data: v, LastUpdated: now}
			m.mu.Unlock()
		}
	case DomainSlides:
		var v []model.SlideDefinition
		if v, err = m.source.FetchSlideConfig(ctx); err == nil {
			m.mu.Lock()
			m.snap.Slides = Cached[[]model.SlideDefinition]{Data: v, LastUpdated: now}
			m.mu.Unlock()
		}
	case DomainDashboard:
		var v model.DashboardMetrics
		if v, err = m.source.FetchDashboardMetrics(ctx); err == nil {
			m.mu.Lock()
			m.snap.Dashboard = Cached[model.DashboardMetrics]{Data: v, LastUpdated: now}
			m.mu.Unlock()
		}
	}

	if err != nil {
		log.Printf("poller: %s fetch failed, keeping cached data: %v", d, err)
	}
}

// Snapshot returns a value copy of every cache. Slice contents are shared
// with the cache but are never mutated after a fetch publishes them.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Status returns the connection status computed at Start.
func (m *Manager) Status() model.ConnectionStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Stale reports whether any domain has never been fetched or is older
// than threshold. One stale domain flags the whole display.
func (m *Manager) Stale(threshold time.Duration) bool {
	snap := m.Snapshot()
	now := time.Now()
	for _, ts := range []time.Time{
		snap.Projects.LastUpdated,
		snap.POs.LastUpdated,
		snap.Revenue.LastUpdated,
		snap.Schedule.LastUpdated,
		snap.Metrics.LastUpdated,
		snap.Slides.LastUpdated,
		snap.Dashboard.LastUpdated,
	} {
		if ts.IsZero() || now.Sub(ts) > threshold {
			return true
		}
	}
	return false
}

// Stop cancels all refresh timers and waits for the loops to exit.
// Idempotent. An in-flight fetch is allowed to complete; its result
// lands in the cache and is simply never read again.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
		m.wg.Wait()
	})
}
