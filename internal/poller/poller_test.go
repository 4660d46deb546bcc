package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/craftboard/signcast/internal/model"
)

// fakeSource returns canned data per domain and lets tests fail
// individual domains.
type fakeSource struct {
	name string

	mu    sync.Mutex
	fail  map[Domain]error
	calls map[Domain]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{name: "http", fail: map[Domain]error{}, calls: map[Domain]int{}}
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) domainErr(d Domain) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[d]++
	return f.fail[d]
}

func (f *fakeSource) setFail(d Domain, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[d] = err
}

func (f *fakeSource) callCount(d Domain) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[d]
}

func (f *fakeSource) FetchActiveProjects(context.Context) ([]model.Project, error) {
	if err := f.domainErr(DomainProjects); err != nil {
		return nil, err
	}
	return []model.Project{{ID: "p1", Name: "Lobby retrofit"}}, nil
}

func (f *fakeSource) FetchRecentPOs(context.Context) ([]model.PurchaseOrder, error) {
	if err := f.domainErr(DomainPOs); err != nil {
		return nil, err
	}
	return []model.PurchaseOrder{{Number: "PO-100"}}, nil
}

func (f *fakeSource) FetchRevenueData(context.Context) ([]model.RevenuePoint, error) {
	if err := f.domainErr(DomainRevenue); err != nil {
		return nil, err
	}
	return []model.RevenuePoint{{Invoiced: 1000}}, nil
}

func (f *fakeSource) FetchScheduleData(context.Context) ([]model.ScheduleEntry, error) {
	if err := f.domainErr(DomainSchedule); err != nil {
		return nil, err
	}
	return []model.ScheduleEntry{{Project: "Lobby retrofit"}}, nil
}

func (f *fakeSource) FetchProjectMetrics(context.Context) (model.ProjectMetrics, error) {
	if err := f.domainErr(DomainMetrics); err != nil {
		return model.ProjectMetrics{}, err
	}
	return model.ProjectMetrics{ActiveCount: 4}, nil
}

func (f *fakeSource) FetchSlideConfig(context.Context) ([]model.SlideDefinition, error) {
	if err := f.domainErr(DomainSlides); err != nil {
		return nil, err
	}
	return []model.SlideDefinition{{Type: model.SlideProjects, Enabled: true, Duration: 5 * time.Second}}, nil
}

func (f *fakeSource) FetchDashboardMetrics(context.Context) (model.DashboardMetrics, error) {
	if err := f.domainErr(DomainDashboard); err != nil {
		return model.DashboardMetrics{}, err
	}
	return model.DashboardMetrics{ActiveProjects: 4}, nil
}

func TestFetchAllPopulatesEveryDomain(t *testing.T) {
	m := NewManager(newFakeSource(), Intervals{})
	m.FetchAll(context.Background())

	snap := m.Snapshot()
	for name, ts := range map[string]time.Time{
		"projects":  snap.Projects.LastUpdated,
		"pos":       snap.POs.LastUpdated,
		"revenue":   snap.Revenue.LastUpdated,
		"schedule":  snap.Schedule.LastUpdated,
		"metrics":   snap.Metrics.LastUpdated,
		"slides":    snap.Slides.LastUpdated,
		"dashboard": snap.Dashboard.LastUpdated,
	} {
		if ts.IsZero() {
			t.Errorf("domain %s never updated", name)
		}
	}
	if len(snap.Projects.Data) != 1 || snap.Projects.Data[0].ID != "p1" {
		t.Errorf("projects data = %+v", snap.Projects.Data)
	}
}

func TestFetchFailureRetainsPreviousValue(t *testing.T) {
	src := newFakeSource()
	m := NewManager(src, Intervals{})

	m.FetchAll(context.Background())
	before := m.Snapshot()

	// Revenue starts failing; a refresh must leave both its data and its
	// lastUpdated untouched, and must not disturb other domains.
	src.setFail(DomainRevenue, errors.New("connection refused"))
	m.fetch(context.Background(), DomainRevenue)
	m.fetch(context.Background(), DomainProjects)

	after := m.Snapshot()
	if !after.Revenue.LastUpdated.Equal(before.Revenue.LastUpdated) {
		t.Error("failed fetch moved revenue lastUpdated")
	}
	if len(after.Revenue.Data) != 1 {
		t.Error("failed fetch cleared revenue data")
	}
	if after.Projects.LastUpdated.Before(before.Projects.LastUpdated) {
		t.Error("projects cache regressed")
	}
}

func TestFetchFailureBeforeFirstSuccessLeavesDomainEmpty(t *testing.T) {
	src := newFakeSource()
	src.setFail(DomainRevenue, errors.New("boom"))
	m := NewManager(src, Intervals{})
	m.FetchAll(context.Background())

	snap := m.Snapshot()
	if !snap.Revenue.LastUpdated.IsZero() {
		t.Error("failed domain has a lastUpdated timestamp")
	}
	if snap.Revenue.Data != nil {
		t.Error("failed domain has data")
	}
}

func TestStaleIsDisjunctionOverDomains(t *testing.T) {
	src := newFakeSource()
	m := NewManager(src, Intervals{})

	// Nothing fetched: stale at any threshold.
	if !m.Stale(time.Hour) {
		t.Fatal("never-fetched caches reported fresh")
	}

	m.FetchAll(context.Background())
	if m.Stale(time.Minute) {
		t.Fatal("just-fetched caches reported stale")
	}

	// Age one domain artificially past the threshold.
	m.mu.Lock()
	m.snap.Schedule.LastUpdated = time.Now().Add(-2 * time.Minute)
	m.mu.Unlock()

	if !m.Stale(time.Minute) {
		t.Fatal("one aged domain did not flag the display stale")
	}
	if m.Stale(time.Hour) {
		t.Fatal("threshold not honored")
	}
}

func TestStatusComputedOnceAtStart(t *testing.T) {
	src := newFakeSource()
	m := NewManager(src, Intervals{})
	m.Start(context.Background())
	defer m.Stop()

	st := m.Status()
	if !st.IsConnected || st.UsingMockData {
		t.Fatalf("status for http source = %+v", st)
	}

	// Later failures must not flip the startup status.
	src.setFail(DomainProjects, errors.New("down"))
	m.fetch(context.Background(), DomainProjects)
	if got := m.Status(); got != st {
		t.Fatalf("status changed after failed fetch: %+v", got)
	}
}

func TestMockSourceStatus(t *testing.T) {
	src := newFakeSource()
	src.name = "mock"
	m := NewManager(src, Intervals{})
	m.Start(context.Background())
	defer m.Stop()

	st := m.Status()
	if st.IsConnected || !st.UsingMockData {
		t.Fatalf("status for mock source = %+v", st)
	}
}

func TestStartArmsIndependentTimers(t *testing.T) {
	src := newFakeSource()
	m := NewManager(src, Intervals{
		Projects:  10 * time.Millisecond,
		POs:       time.Hour,
		Revenue:   time.Hour,
		Schedule:  time.Hour,
		Metrics:   time.Hour,
		Slides:    time.Hour,
		Dashboard: time.Hour,
	})
	m.Start(context.Background())
	defer m.Stop()

	deadline := time.After(2 * time.Second)
	for {
		snap := m.Snapshot()
		// The initial FetchAll counts one call per domain; the fast
		// projects timer must add more while the slow domains stay at 1.
		if src.callCount(DomainProjects) >= 3 {
			if snap.POs.LastUpdated.IsZero() {
				t.Fatal("initial synchronous fetch missed a domain")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("projects timer never fired (calls=%d)", src.callCount(DomainProjects))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStopIsIdempotent(t *testing.T) {
	m := NewManager(newFakeSource(), Intervals{})
	m.Start(context.Background())
	m.Stop()
	m.Stop()
}
