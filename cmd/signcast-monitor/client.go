package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/craftboard/signcast/internal/engine"
	"github.com/craftboard/signcast/internal/model"
)

// cacheReport mirrors the /api/cache payload.
type cacheReport struct {
	Status  model.ConnectionStatus     `json:"status"`
	Domains map[string]engine.CacheAge `json:"domains"`
}

// apiClient talks to the display's monitor API.
type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *apiClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) fetchStats(ctx context.Context) (engine.Stats, error) {
	var st engine.Stats
	err := c.get(ctx, "/api/stats", &st)
	return st, err
}

func (c *apiClient) fetchCache(ctx context.Context) (cacheReport, error) {
	var rep cacheReport
	err := c.get(ctx, "/api/cache", &rep)
	return rep, err
}
