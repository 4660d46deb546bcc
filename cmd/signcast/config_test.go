package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	resetSigncastEnv(t)

	cfg, err := loadConfig(writeTempConfig(t, "ndi-name: Shop Floor\n"))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.NDIName != "Shop Floor" {
		t.Fatalf("NDIName = %q", cfg.NDIName)
	}
	if cfg.FrameRate != defaultFrameRate {
		t.Fatalf("FrameRate = %d, want %d", cfg.FrameRate, defaultFrameRate)
	}
	if cfg.DisplayWidth != defaultDisplayWidth || cfg.DisplayHeight != defaultDisplayHeight {
		t.Fatalf("display = %dx%d", cfg.DisplayWidth, cfg.DisplayHeight)
	}
	if cfg.Transition != "fade" {
		t.Fatalf("Transition = %q", cfg.Transition)
	}
	if cfg.APIAddr != "127.0.0.1:7360" {
		t.Fatalf("APIAddr = %q", cfg.APIAddr)
	}
}

func TestLoadConfig_AddressResolution(t *testing.T) {
	resetSigncastEnv(t)

	tests := []struct {
		name        string
		configYAML  string
		wantAPIAddr string
	}{
		{
			name:        "host applies to derived api address",
			configYAML:  "host: 0.0.0.0\napi-port: 7400\n",
			wantAPIAddr: "0.0.0.0:7400",
		},
		{
			name:        "explicit address overrides host and port",
			configYAML:  "host: 0.0.0.0\napi-port: 7400\napi-addr: 10.0.0.5:9999\n",
			wantAPIAddr: "10.0.0.5:9999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeTempConfig(t, tt.configYAML))
			if err != nil {
				t.Fatalf("loadConfig returned error: %v", err)
			}
			if cfg.APIAddr != tt.wantAPIAddr {
				t.Fatalf("APIAddr = %q, want %q", cfg.APIAddr, tt.wantAPIAddr)
			}
		})
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	resetSigncastEnv(t)

	tests := []struct {
		name         string
		configYAML   string
		errSubstring string
	}{
		{"frame rate too low", "frame-rate: 10\n", "invalid frame-rate"},
		{"frame rate too high", "frame-rate: 120\n", "invalid frame-rate"},
		{"zero display width", "display-width: 0\n", "invalid display size"},
		{"unknown transition", "transition: dissolve\n", "invalid transition"},
		{"unknown stale position", "stale-position: center\n", "invalid stale-position"},
		{"bad api port", "api-port: 99999\n", "invalid api-port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeTempConfig(t, tt.configYAML))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errSubstring) {
				t.Fatalf("error = %q, want substring %q", err.Error(), tt.errSubstring)
			}
		})
	}
}

func TestLoadConfig_DurationsAndTildeExpansion(t *testing.T) {
	resetSigncastEnv(t)

	cfg, err := loadConfig(writeTempConfig(t, `
transition-time: 500ms
stale-threshold: 90s
poll-interval: 15s
db-path: ~/mirror/office.duckdb
deck-path: ~/deck.yaml
`))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.TransitionTime != 500*time.Millisecond {
		t.Fatalf("TransitionTime = %s", cfg.TransitionTime)
	}
	if cfg.StaleThreshold != 90*time.Second {
		t.Fatalf("StaleThreshold = %s", cfg.StaleThreshold)
	}
	if cfg.PollInterval != 15*time.Second {
		t.Fatalf("PollInterval = %s", cfg.PollInterval)
	}
	if strings.HasPrefix(cfg.DBPath, "~") || strings.HasPrefix(cfg.DeckPath, "~") {
		t.Fatalf("tilde not expanded: db=%q deck=%q", cfg.DBPath, cfg.DeckPath)
	}
}

func TestPollerIntervalsOverride(t *testing.T) {
	iv := pollerIntervals(0)
	if iv.Projects != 0 {
		t.Fatal("zero override should leave defaults to the poller")
	}

	iv = pollerIntervals(15 * time.Second)
	if iv.Projects != 15*time.Second || iv.Dashboard != 15*time.Second {
		t.Fatalf("override not applied: %+v", iv)
	}
	if iv.Slides != 0 || iv.Revenue != 0 {
		t.Fatalf("slow domains should keep defaults: %+v", iv)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func resetSigncastEnv(t *testing.T) {
	t.Helper()

	original := make(map[string]string)
	existed := make(map[string]bool)

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, "SIGNCAST_") {
			continue
		}
		original[key] = value
		existed[key] = true
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}

	t.Cleanup(func() {
		for key := range existed {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("cleanup unset %s: %v", key, err)
			}
		}
		for key, value := range original {
			if err := os.Setenv(key, value); err != nil {
				t.Fatalf("cleanup restore %s: %v", key, err)
			}
		}
	})
}
