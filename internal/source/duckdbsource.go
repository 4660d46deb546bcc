package source

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/craftboard/signcast/internal/model"
)

// DuckDBSource reads display data from a local DuckDB file mirrored
// from the office server. The file is opened read-only so the renderer
// can never interfere with the sync job that writes it.
type DuckDBSource struct {
	db *sql.DB
}

// NewDuckDBSource opens the mirror database at path.
func NewDuckDBSource(path string) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", path+"?access_mode=read_only")
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	return &DuckDBSource{db: db}, nil
}

// Name identifies this backend in logs and status reporting.
func (s *DuckDBSource) Name() string { return "duckdb" }

// Close releases the database handle.
func (s *DuckDBSource) Close() error { return s.db.Close() }

func (s *DuckDBSource) FetchActiveProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, client, status, progress, budget, spent,
		       due_date, manager, task_count, open_issues
		FROM projects
		WHERE status IN ('planning', 'active', 'on_hold')
		ORDER BY due_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Client, &p.Status, &p.Progress,
			&p.Budget, &p.Spent, &p.DueDate, &p.Manager, &p.TaskCount, &p.OpenIssues); err != nil {
			log.Printf("duckdb scan error (projects): %v", err)
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *DuckDBSource) FetchRecentPOs(ctx context.Context) ([]model.PurchaseOrder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number, vendor, project, amount, status,
		       issued_at, due_at, line_items
		FROM purchase_orders
		ORDER BY issued_at DESC
		LIMIT 20`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PurchaseOrder
	for rows.Next() {
		var po model.PurchaseOrder
		if err := rows.Scan(&po.Number, &po.Vendor, &po.Project, &po.Amount,
			&po.Status, &po.IssuedAt, &po.DueAt, &po.LineItems); err != nil {
			log.Printf("duckdb scan error (purchase_orders): %v", err)
			continue
		}
		out = append(out, po)
	}
	return out, rows.Err()
}

func (s *DuckDBSource) FetchRevenueData(ctx context.Context) ([]model.RevenuePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period, invoiced, received, target
		FROM revenue_monthly
		ORDER BY period DESC
		LIMIT 12`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RevenuePoint
	for rows.Next() {
		var rp model.RevenuePoint
		if err := rows.Scan(&rp.Period, &rp.Invoiced, &rp.Received, &rp.Target); err != nil {
			log.Printf("duckdb scan error (revenue_monthly): %v", err)
			continue
		}
		out = append(out, rp)
	}
	// Oldest first for charting.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, rows.Err()
}

func (s *DuckDBSource) FetchScheduleData(ctx context.Context) ([]model.ScheduleEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project, crew, location, starts_at, ends_at, confirmed
		FROM schedule
		WHERE ends_at >= now()
		ORDER BY starts_at
		LIMIT 20`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ScheduleEntry
	for rows.Next() {
		var e model.ScheduleEntry
		if err := rows.Scan(&e.Project, &e.Crew, &e.Location, &e.StartsAt, &e.EndsAt, &e.Confirmed); err != nil {
			log.Printf("duckdb scan error (schedule): %v", err)
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *DuckDBSource) FetchProjectMetrics(ctx context.Context) (model.ProjectMetrics, error) {
	var m model.ProjectMetrics
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'on_hold'),
			COUNT(*) FILTER (WHERE status = 'complete'),
			COUNT(*) FILTER (WHERE status != 'complete' AND due_date < now()),
			COALESCE(AVG(progress) FILTER (WHERE status != 'complete'), 0),
			COALESCE(SUM(budget), 0),
			COALESCE(SUM(spent), 0)
		FROM projects`).Scan(
		&m.ActiveCount, &m.OnHoldCount, &m.CompleteCount, &m.OverdueCount,
		&m.AvgProgress, &m.TotalBudget, &m.TotalSpent)
	if err != nil {
		return model.ProjectMetrics{}, err
	}

	// The hours table only exists on mirrors that sync timesheets.
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(billable_hours), 0),
		       COALESCE(AVG(utilization_pct), 0)
		FROM timesheet_summary`).Scan(&m.BillableHours, &m.UtilizationPct)
	if err != nil {
		log.Printf("duckdb: timesheet_summary unavailable: %v", err)
	}
	return m, nil
}

func (s *DuckDBSource) FetchSlideConfig(ctx context.Context) ([]model.SlideDefinition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, enabled, duration_seconds, title
		FROM slides
		ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []model.SlideDefinition
	for rows.Next() {
		var (
			typ     string
			enabled bool
			secs    float64
			title   string
		)
		if err := rows.Scan(&typ, &enabled, &secs, &title); err != nil {
			log.Printf("duckdb scan error (slides): %v", err)
			continue
		}
		def := model.SlideDefinition{
			Type:     model.SlideType(typ),
			Enabled:  enabled,
			Duration: time.Duration(secs * float64(time.Second)),
			Title:    title,
		}
		if def.Duration == 0 {
			def.Duration = model.DefaultSlideDuration
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("slide config: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (s *DuckDBSource) FetchDashboardMetrics(ctx context.Context) (model.DashboardMetrics, error) {
	var m model.DashboardMetrics
	err := s.db.QueryRowContext(ctx, `
		SELECT revenue_mtd, revenue_ytd, outstanding_ar, open_po_amount,
		       head_count, active_projects, pipeline_value, win_rate_pct
		FROM dashboard_metrics
		ORDER BY as_of DESC
		LIMIT 1`).Scan(
		&m.RevenueMTD, &m.RevenueYTD, &m.OutstandingAR, &m.OpenPOAmount,
		&m.HeadCount, &m.ActiveProjects, &m.PipelineValue, &m.WinRatePct)
	if err != nil {
		return model.DashboardMetrics{}, err
	}
	return m, nil
}
