package model

import "time"

// Project represents one active project shown on the rotation.
// It is the canonical type for data sources, the polling cache, and slides.
type Project struct {
	ID         string
	Name       string
	Client     string
	Status     string // planning/active/on_hold/complete
	Progress   float64 // 0..1
	Budget     float64
	Spent      float64
	DueDate    time.Time
	Manager    string
	TaskCount  int
	OpenIssues int
}

// PurchaseOrder represents one recent purchase order.
type PurchaseOrder struct {
	Number    string
	Vendor    string
	Project   string
	Amount    float64
	Status    string // draft/submitted/approved/received
	IssuedAt  time.Time
	DueAt     time.Time
	LineItems int
}

// RevenuePoint is one bucket of the revenue series (typically a month).
type RevenuePoint struct {
	Period   time.Time
	Invoiced float64
	Received float64
	Target   float64
}

// ScheduleEntry is one row of the crew/installation schedule board.
type ScheduleEntry struct {
	Project   string
	Crew      string
	Location  string
	StartsAt  time.Time
	EndsAt    time.Time
	Confirmed bool
}

// ProjectMetrics aggregates per-project health figures.
type ProjectMetrics struct {
	ActiveCount    int
	OnHoldCount    int
	CompleteCount  int
	OverdueCount   int
	AvgProgress    float64
	TotalBudget    float64
	TotalSpent     float64
	BillableHours  float64
	UtilizationPct float64
}

// DashboardMetrics aggregates company-wide headline figures.
type DashboardMetrics struct {
	RevenueMTD     float64
	RevenueYTD     float64
	OutstandingAR  float64
	OpenPOAmount   float64
	HeadCount      int
	ActiveProjects int
	PipelineValue  float64
	WinRatePct     float64
}
