package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/craftboard/signcast/internal/model"
)

// HTTPSource fetches display data from the office server's JSON API.
// One endpoint per domain; payloads decode straight into the model
// types.
type HTTPSource struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPSource creates a source for the given base URL, e.g.
// "http://office-server:8080". token is optional and sent as a bearer
// token when set.
func NewHTTPSource(baseURL, token string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies this backend in logs and status reporting.
func (s *HTTPSource) Name() string { return "api" }

func (s *HTTPSource) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return err
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *HTTPSource) FetchActiveProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := s.getJSON(ctx, "/api/signage/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPSource) FetchRecentPOs(ctx context.Context) ([]model.PurchaseOrder, error) {
	var out []model.PurchaseOrder
	if err := s.getJSON(ctx, "/api/signage/purchase-orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPSource) FetchRevenueData(ctx context.Context) ([]model.RevenuePoint, error) {
	var out []model.RevenuePoint
	if err := s.getJSON(ctx, "/api/signage/revenue", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPSource) FetchScheduleData(ctx context.Context) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	if err := s.getJSON(ctx, "/api/signage/schedule", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPSource) FetchProjectMetrics(ctx context.Context) (model.ProjectMetrics, error) {
	var out model.ProjectMetrics
	if err := s.getJSON(ctx, "/api/signage/metrics", &out); err != nil {
		return model.ProjectMetrics{}, err
	}
	return out, nil
}

// slidePayload is the wire form of a slide definition; durations travel
// as seconds so the API stays readable.
type slidePayload struct {
	Type     string            `json:"type"`
	Enabled  bool              `json:"enabled"`
	Duration float64           `json:"duration_seconds"`
	Title    string            `json:"title"`
	Options  map[string]string `json:"options"`
}

func (s *HTTPSource) FetchSlideConfig(ctx context.Context) ([]model.SlideDefinition, error) {
	var raw []slidePayload
	if err := s.getJSON(ctx, "/api/signage/slides", &raw); err != nil {
		return nil, err
	}
	defs := make([]model.SlideDefinition, 0, len(raw))
	for _, p := range raw {
		def := model.SlideDefinition{
			Type:     model.SlideType(p.Type),
			Enabled:  p.Enabled,
			Duration: time.Duration(p.Duration * float64(time.Second)),
			Title:    p.Title,
			Options:  p.Options,
		}
		if def.Duration == 0 {
			def.Duration = model.DefaultSlideDuration
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("slide config: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (s *HTTPSource) FetchDashboardMetrics(ctx context.Context) (model.DashboardMetrics, error) {
	var out model.DashboardMetrics
	if err := s.getJSON(ctx, "/api/signage/dashboard", &out); err != nil {
		return model.DashboardMetrics{}, err
	}
	return out, nil
}
