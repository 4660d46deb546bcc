// Package anim advances the lightweight animation state shared by all
// slides: free particles, eased counting numbers, and the ambient pulse
// phase. The engine owns one State and steps it once per tick; slides
// only spawn particles and read interpolated values.
package anim

import (
	"image/color"
	"math"
	"time"
)

// PulseRate is the ambient glow angular rate in radians per second.
// One full cycle roughly every four seconds.
const PulseRate = math.Pi / 2

// ParticleLife is the default lifetime for decorative sparks.
const ParticleLife = 2 * time.Second

// Particle is one free-flying spark. Positions are in pixels, velocities
// in pixels per second. A particle is removed once Life reaches zero.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Alpha   float64
	Color   color.RGBA
	Life    time.Duration
	MaxLife time.Duration
}

// counter tracks one eased number interpolation. A retarget restarts the
// ease from the value currently shown, not from the previous target.
type counter struct {
	from     float64
	target   float64
	start    time.Duration // state elapsed time at (re)start
	duration time.Duration
}

// State holds all animation state. It is a plain value owned by the
// render loop; nothing in this package is safe for concurrent use.
type State struct {
	Particles  []Particle
	counters   map[string]*counter
	Elapsed    time.Duration
	PulsePhase float64
}

// NewState returns an empty animation state.
func NewState() *State {
	return &State{counters: map[string]*counter{}}
}

// Update advances particles and the pulse phase by dt. Particles leaving
// their lifetime are compacted out; spawning is the caller's business.
// Width and height bound nothing here: slides decide where to spawn, and
// short-lived particles drifting off-screen simply expire.
func (s *State) Update(dt time.Duration, width, height int) {
	s.Elapsed += dt
	sec := dt.Seconds()

	live := s.Particles[:0]
	for i := range s.Particles {
		p := s.Particles[i]
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX * sec
		p.Y += p.VY * sec
		p.Alpha = float64(p.Life) / float64(p.MaxLife)
		live = append(live, p)
	}
	s.Particles = live

	s.PulsePhase = math.Mod(s.PulsePhase+PulseRate*sec, 2*math.Pi)
}

// Spawn adds a particle to the state.
func (s *State) Spawn(p Particle) {
	if p.MaxLife <= 0 {
		p.MaxLife = p.Life
	}
	s.Particles = append(s.Particles, p)
}

// Pulse returns the ambient glow intensity in [0,1].
func (s *State) Pulse() float64 {
	return 0.5 + 0.5*math.Sin(s.PulsePhase)
}

// AnimatedNumber returns the eased value for key moving toward target
// over duration. The first call for a key starts an ease from zero. When
// target changes mid-flight the ease restarts from the currently shown
// value. Once converged the exact target is returned on every subsequent
// call with the same target.
func (s *State) AnimatedNumber(key string, target float64, duration time.Duration) float64 {
	c, ok := s.counters[key]
	if !ok {
		c = &counter{target: target, start: s.Elapsed, duration: duration}
		s.counters[key] = c
		return c.value(s.Elapsed)
	}
	if c.target != target {
		c.from = c.value(s.Elapsed)
		c.target = target
		c.start = s.Elapsed
		c.duration = duration
	}
	return c.value(s.Elapsed)
}

func (c *counter) value(now time.Duration) float64 {
	if c.duration <= 0 || now-c.start >= c.duration {
		return c.target
	}
	t := float64(now-c.start) / float64(c.duration)
	return c.from + (c.target-c.from)*easeOutCubic(t)
}
