package source

import (
	"context"
	"time"

	"github.com/craftboard/signcast/internal/model"
)

// MockSource serves a fixed set of plausible shop data so the display
// can run without the office server. Values are deterministic; only the
// dates track the wall clock so the board never looks expired.
type MockSource struct {
	now func() time.Time
}

// NewMockSource creates the demo-data backend.
func NewMockSource() *MockSource {
	return &MockSource{now: time.Now}
}

// Name identifies this backend in logs and status reporting.
func (s *MockSource) Name() string { return "mock" }

func (s *MockSource) FetchActiveProjects(context.Context) ([]model.Project, error) {
	now := s.now()
	day := 24 * time.Hour
	return []model.Project{
		{ID: "P-1041", Name: "Riverside Medical Wayfinding", Client: "Riverside Health", Status: "active",
			Progress: 0.72, Budget: 148000, Spent: 96400, DueDate: now.Add(18 * day), Manager: "Dana", TaskCount: 34, OpenIssues: 2},
		{ID: "P-1044", Name: "Harbor Mall Pylon Refresh", Client: "Harbor Properties", Status: "active",
			Progress: 0.38, Budget: 92000, Spent: 31200, DueDate: now.Add(41 * day), Manager: "Marcus", TaskCount: 21, OpenIssues: 5},
		{ID: "P-1046", Name: "Transit Center Channel Letters", Client: "Metro Authority", Status: "planning",
			Progress: 0.08, Budget: 63500, Spent: 4100, DueDate: now.Add(75 * day), Manager: "Dana", TaskCount: 12, OpenIssues: 0},
		{ID: "P-1039", Name: "Stadium Concourse Graphics", Client: "Northgate Stadium", Status: "on_hold",
			Progress: 0.55, Budget: 210000, Spent: 118000, DueDate: now.Add(9 * day), Manager: "Priya", TaskCount: 48, OpenIssues: 7},
		{ID: "P-1047", Name: "Brewery Interior Package", Client: "Copperline Brewing", Status: "active",
			Progress: 0.91, Budget: 27400, Spent: 24100, DueDate: now.Add(4 * day), Manager: "Marcus", TaskCount: 9, OpenIssues: 1},
	}, nil
}

func (s *MockSource) FetchRecentPOs(context.Context) ([]model.PurchaseOrder, error) {
	now := s.now()
	day := 24 * time.Hour
	return []model.PurchaseOrder{
		{Number: "PO-8812", Vendor: "Apex Aluminum", Project: "P-1041", Amount: 14250, Status: "approved",
			IssuedAt: now.Add(-2 * day), DueAt: now.Add(12 * day), LineItems: 6},
		{Number: "PO-8811", Vendor: "BrightLED Supply", Project: "P-1044", Amount: 8930, Status: "submitted",
			IssuedAt: now.Add(-3 * day), DueAt: now.Add(18 * day), LineItems: 11},
		{Number: "PO-8809", Vendor: "Cascade Acrylics", Project: "P-1047", Amount: 2140, Status: "received",
			IssuedAt: now.Add(-6 * day), DueAt: now.Add(-1 * day), LineItems: 3},
		{Number: "PO-8807", Vendor: "Apex Aluminum", Project: "P-1039", Amount: 31600, Status: "draft",
			IssuedAt: now.Add(-8 * day), DueAt: now.Add(30 * day), LineItems: 14},
	}, nil
}

func (s *MockSource) FetchRevenueData(context.Context) ([]model.RevenuePoint, error) {
	month := func(back int) time.Time {
		t := s.now()
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, -back, 0)
	}
	return []model.RevenuePoint{
		{Period: month(5), Invoiced: 212000, Received: 198000, Target: 200000},
		{Period: month(4), Invoiced: 187000, Received: 190500, Target: 200000},
		{Period: month(3), Invoiced: 243000, Received: 221000, Target: 210000},
		{Period: month(2), Invoiced: 198000, Received: 205000, Target: 210000},
		{Period: month(1), Invoiced: 255000, Received: 231000, Target: 220000},
		{Period: month(0), Invoiced: 174000, Received: 142000, Target: 220000},
	}, nil
}

func (s *MockSource) FetchScheduleData(context.Context) ([]model.ScheduleEntry, error) {
	now := s.now()
	day := 24 * time.Hour
	return []model.ScheduleEntry{
		{Project: "Copperline Brewing", Crew: "Install A", Location: "214 Dock St", StartsAt: now.Add(1 * day), EndsAt: now.Add(2 * day), Confirmed: true},
		{Project: "Riverside Medical", Crew: "Install B", Location: "Riverside Campus", StartsAt: now.Add(3 * day), EndsAt: now.Add(6 * day), Confirmed: true},
		{Project: "Harbor Mall", Crew: "Survey", Location: "Harbor Mall North", StartsAt: now.Add(5 * day), EndsAt: now.Add(5 * day), Confirmed: false},
		{Project: "Metro Authority", Crew: "Install A", Location: "Transit Center", StartsAt: now.Add(9 * day), EndsAt: now.Add(13 * day), Confirmed: false},
	}, nil
}

func (s *MockSource) FetchProjectMetrics(context.Context) (model.ProjectMetrics, error) {
	return model.ProjectMetrics{
		ActiveCount:    3,
		OnHoldCount:    1,
		CompleteCount:  14,
		OverdueCount:   1,
		AvgProgress:    0.53,
		TotalBudget:    540900,
		TotalSpent:     273800,
		BillableHours:  1240,
		UtilizationPct: 81.5,
	}, nil
}

// FetchSlideConfig returns no deck: in demo mode the rotation stays
// whatever the local configuration file says.
func (s *MockSource) FetchSlideConfig(context.Context) ([]model.SlideDefinition, error) {
	return nil, nil
}

func (s *MockSource) FetchDashboardMetrics(context.Context) (model.DashboardMetrics, error) {
	return model.DashboardMetrics{
		RevenueMTD:     174000,
		RevenueYTD:     1269000,
		OutstandingAR:  86300,
		OpenPOAmount:   54780,
		HeadCount:      23,
		ActiveProjects: 3,
		PipelineValue:  912000,
		WinRatePct:     41.7,
	}, nil
}
