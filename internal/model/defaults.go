package model

import "time"

// Shared defaults used by both the engine and monitor binaries.
const (
	DefaultFrameRate      = 30
	MinFrameRate          = 15
	MaxFrameRate          = 60
	DefaultDisplayWidth   = 1920
	DefaultDisplayHeight  = 1080
	MinSlideDuration      = time.Second
	DefaultSlideDuration  = 10 * time.Second
	DefaultTransition     = TransitionFade
	DefaultTransitionTime = 800 * time.Millisecond
	DefaultStaleThreshold = 5 * time.Minute
	DefaultUpdateInterval = 2 * time.Second // monitor poll interval
)
