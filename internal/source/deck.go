package source

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/craftboard/signcast/internal/model"
)

// deckFile is the on-disk shape of a slide rotation.
type deckFile struct {
	Slides []deckSlide `yaml:"slides"`
}

type deckSlide struct {
	Type     string            `yaml:"type"`
	Enabled  *bool             `yaml:"enabled"`
	Duration string            `yaml:"duration"`
	Title    string            `yaml:"title"`
	Options  map[string]string `yaml:"options"`
}

// LoadSlideDeck reads a YAML slide rotation. Slides default to enabled
// with the standard duration; every entry must name a known slide type.
func LoadSlideDeck(path string) ([]model.SlideDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSlideDeck(raw)
}

// ParseSlideDeck parses and validates YAML deck bytes.
func ParseSlideDeck(raw []byte) ([]model.SlideDefinition, error) {
	var f deckFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse slide deck: %w", err)
	}

	defs := make([]model.SlideDefinition, 0, len(f.Slides))
	for i, s := range f.Slides {
		def := model.SlideDefinition{
			Type:     model.SlideType(s.Type),
			Enabled:  true,
			Duration: model.DefaultSlideDuration,
			Title:    s.Title,
			Options:  s.Options,
		}
		if s.Enabled != nil {
			def.Enabled = *s.Enabled
		}
		if s.Duration != "" {
			d, err := time.ParseDuration(s.Duration)
			if err != nil {
				return nil, fmt.Errorf("slide %d (%s): bad duration %q: %w", i+1, s.Type, s.Duration, err)
			}
			def.Duration = d
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// DefaultDeck is the rotation used when no deck file is configured:
// every known slide, enabled, at the standard duration.
func DefaultDeck() []model.SlideDefinition {
	defs := make([]model.SlideDefinition, 0, len(model.KnownSlideTypes))
	for _, t := range model.KnownSlideTypes {
		defs = append(defs, model.SlideDefinition{
			Type:     t,
			Enabled:  true,
			Duration: model.DefaultSlideDuration,
		})
	}
	return defs
}
