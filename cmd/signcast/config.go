package main

import (
	"time"

	"github.com/craftboard/signcast/internal/model"
)

const (
	defaultFrameRate      = model.DefaultFrameRate
	defaultDisplayWidth   = model.DefaultDisplayWidth
	defaultDisplayHeight  = model.DefaultDisplayHeight
	defaultTransition     = string(model.DefaultTransition)
	defaultTransitionTime = model.DefaultTransitionTime
	defaultStaleThreshold = model.DefaultStaleThreshold
	defaultStalePosition  = "top-right"
	defaultBindHost       = "127.0.0.1"
	defaultAPIPort        = 7360
	defaultNDIName        = "CraftBoard Display"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	NDIName        string        `mapstructure:"ndi-name"`
	NDITarget      string        `mapstructure:"ndi-target"`
	FrameRate      int           `mapstructure:"frame-rate"`
	DisplayWidth   int           `mapstructure:"display-width"`
	DisplayHeight  int           `mapstructure:"display-height"`
	Background     string        `mapstructure:"background-color"`
	Accent         string        `mapstructure:"accent-color"`
	DeckPath       string        `mapstructure:"deck-path"`
	Transition     string        `mapstructure:"transition"`
	TransitionTime time.Duration `mapstructure:"transition-time"`
	StaleThreshold time.Duration `mapstructure:"stale-threshold"`
	StalePosition  string        `mapstructure:"stale-position"`
	ServerURL      string        `mapstructure:"server-url"`
	ServerToken    string        `mapstructure:"server-token"`
	DBPath         string        `mapstructure:"db-path"`
	PollInterval   time.Duration `mapstructure:"poll-interval"`
	APIEnabled     bool          `mapstructure:"api-enabled"`
	APIPort        int           `mapstructure:"api-port"`
	APIAddr        string        `mapstructure:"api-addr"`
	Host           string        `mapstructure:"host"`
	ConfigPath     string        `mapstructure:"-"` // not from config file
}
