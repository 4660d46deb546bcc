package engine

import (
	"sync"
	"time"

	"github.com/craftboard/signcast/internal/ndi"
)

// fpsSampleWindow is how many one-second FPS samples the stats surface
// keeps for the monitor's sparkline.
const fpsSampleWindow = 60

// Stats is the loop-health snapshot served over the HTTP API.
type Stats struct {
	FPS         float64   `json:"fps"`
	FrameCount  uint64    `json:"frame_count"`
	DropCount   uint64    `json:"drop_count"`
	ActiveSlide string    `json:"active_slide"`
	Stale       bool      `json:"stale"`
	StartedAt   time.Time `json:"started_at"`
	FPSSamples  []float64 `json:"fps_samples"`
}

// statsCell is the mutex-guarded cell the tick loop writes and the HTTP
// server reads. The render loop never blocks on readers for more than
// the copy under the lock.
type statsCell struct {
	mu      sync.Mutex
	stats   Stats
	samples []float64
}

func (c *statsCell) init() {
	c.stats.StartedAt = time.Now()
	c.samples = make([]float64, 0, fpsSampleWindow)
}

func (c *statsCell) record(s *ndi.Sender, activeSlide string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.FPS = s.FPS()
	c.stats.FrameCount = s.FrameCount()
	c.stats.DropCount = s.DropCount()
	c.stats.ActiveSlide = activeSlide
}

// CacheAge describes one polling domain for the HTTP API.
type CacheAge struct {
	LastUpdated time.Time `json:"last_updated"`
	AgeSeconds  float64   `json:"age_seconds"`
	Fetched     bool      `json:"fetched"`
}

func (c *statsCell) sampleFPS(fps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.samples) == fpsSampleWindow {
		copy(c.samples, c.samples[1:])
		c.samples = c.samples[:fpsSampleWindow-1]
	}
	c.samples = append(c.samples, fps)
}

func (c *statsCell) setStale(v bool) {
	c.mu.Lock()
	c.stats.Stale = v
	c.mu.Unlock()
}

func (c *statsCell) snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.stats
	out.FPSSamples = append([]float64(nil), c.samples...)
	return out
}
