// Package source provides the data backends the poller fetches from:
// a JSON HTTP API, a local read-only DuckDB mirror, and deterministic
// mock data for running without either. All of them satisfy
// model.Source.
package source

import (
	"github.com/craftboard/signcast/internal/model"
)

// Config selects and parameterizes a backend. Exactly one of APIBaseURL
// and DBPath is normally set; when both are empty the mock source is
// used.
type Config struct {
	APIBaseURL string
	APIToken   string
	DBPath     string
}

// Open picks the backend for cfg. Preference order: HTTP API, then
// DuckDB mirror, then mock data.
func Open(cfg Config) (model.Source, error) {
	switch {
	case cfg.APIBaseURL != "":
		return NewHTTPSource(cfg.APIBaseURL, cfg.APIToken), nil
	case cfg.DBPath != "":
		return NewDuckDBSource(cfg.DBPath)
	default:
		return NewMockSource(), nil
	}
}
