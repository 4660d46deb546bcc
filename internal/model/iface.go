package model

import "context"

// Source is the contract between the polling manager and a business-data
// backend. Each method returns a complete snapshot for its domain or an
// error; partial results are never returned.
type Source interface {
	// Name identifies the backend kind ("http", "duckdb", "mock").
	Name() string
	FetchActiveProjects(ctx context.Context) ([]Project, error)
	FetchRecentPOs(ctx context.Context) ([]PurchaseOrder, error)
	FetchRevenueData(ctx context.Context) ([]RevenuePoint, error)
	FetchScheduleData(ctx context.Context) ([]ScheduleEntry, error)
	FetchProjectMetrics(ctx context.Context) (ProjectMetrics, error)
	FetchSlideConfig(ctx context.Context) ([]SlideDefinition, error)
	FetchDashboardMetrics(ctx context.Context) (DashboardMetrics, error)
}

// ConnectionStatus describes how the engine is sourcing data. It is
// computed once when polling starts, from configuration presence, and is
// not re-evaluated per fetch.
type ConnectionStatus struct {
	IsConnected   bool
	UsingMockData bool
	LastError     string
}
