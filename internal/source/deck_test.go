package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/craftboard/signcast/internal/model"
)

func TestParseSlideDeck(t *testing.T) {
	raw := []byte(`
slides:
  - type: projects
    duration: 15s
    title: Active Jobs
  - type: revenue
    enabled: false
  - type: dashboard
    options:
      particles: "off"
`)
	defs, err := ParseSlideDeck(raw)
	if err != nil {
		t.Fatalf("ParseSlideDeck: %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("got %d slides", len(defs))
	}
	if defs[0].Type != model.SlideProjects || defs[0].Duration != 15*time.Second || defs[0].Title != "Active Jobs" {
		t.Errorf("first slide = %+v", defs[0])
	}
	if !defs[0].Enabled {
		t.Error("enabled should default to true")
	}
	if defs[1].Enabled {
		t.Error("explicit enabled: false was dropped")
	}
	if defs[1].Duration != model.DefaultSlideDuration {
		t.Errorf("duration default = %s", defs[1].Duration)
	}
	if defs[2].Options["particles"] != "off" {
		t.Errorf("options = %v", defs[2].Options)
	}
}

func TestParseSlideDeckRejectsBadEntries(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unknown type", "slides:\n  - type: weather\n"},
		{"sub-second duration", "slides:\n  - type: projects\n    duration: 200ms\n"},
		{"unparseable duration", "slides:\n  - type: projects\n    duration: soon\n"},
		{"not yaml", "slides: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSlideDeck([]byte(tc.raw)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoadSlideDeckFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(path, []byte("slides:\n  - type: schedule\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := LoadSlideDeck(path)
	if err != nil {
		t.Fatalf("LoadSlideDeck: %v", err)
	}
	if len(defs) != 1 || defs[0].Type != model.SlideSchedule {
		t.Fatalf("defs = %+v", defs)
	}

	if _, err := LoadSlideDeck(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file should error")
	}
}

func TestDefaultDeckCoversEverySlide(t *testing.T) {
	defs := DefaultDeck()
	if len(defs) != len(model.KnownSlideTypes) {
		t.Fatalf("default deck has %d slides", len(defs))
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			t.Errorf("default deck slide %s invalid: %v", d.Type, err)
		}
		if !d.Enabled {
			t.Errorf("default deck slide %s disabled", d.Type)
		}
	}
}
