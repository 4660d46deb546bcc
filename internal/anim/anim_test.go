package anim

import (
	"math"
	"testing"
	"time"
)

func TestParticleLifecycle(t *testing.T) {
	s := NewState()
	s.Spawn(Particle{X: 10, Y: 10, VX: 5, Life: time.Second, MaxLife: time.Second})

	step := 400 * time.Millisecond

	s.Update(step, 100, 100)
	if len(s.Particles) != 1 || s.Particles[0].Life != 600*time.Millisecond {
		t.Fatalf("after 1 step: %d particles, life %v", len(s.Particles), s.Particles[0].Life)
	}

	s.Update(step, 100, 100)
	if len(s.Particles) != 1 || s.Particles[0].Life != 200*time.Millisecond {
		t.Fatalf("after 2 steps: %d particles, life %v", len(s.Particles), s.Particles[0].Life)
	}

	s.Update(step, 100, 100)
	if len(s.Particles) != 0 {
		t.Fatalf("particle survived past its lifetime: %+v", s.Particles)
	}
}

func TestParticleIntegratesVelocity(t *testing.T) {
	s := NewState()
	s.Spawn(Particle{X: 0, Y: 0, VX: 10, VY: -20, Life: time.Minute})

	s.Update(500*time.Millisecond, 100, 100)

	p := s.Particles[0]
	if math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y+10) > 1e-9 {
		t.Fatalf("position after 0.5s = (%v,%v), want (5,-10)", p.X, p.Y)
	}
}

func TestParticleAlphaTracksRemainingLife(t *testing.T) {
	s := NewState()
	s.Spawn(Particle{Life: time.Second, MaxLife: time.Second, Alpha: 1})

	s.Update(250*time.Millisecond, 100, 100)
	if a := s.Particles[0].Alpha; math.Abs(a-0.75) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.75", a)
	}
}

func TestAnimatedNumberConverges(t *testing.T) {
	s := NewState()

	// Repeated calls while time advances in 50ms ticks.
	var last float64
	for i := 0; i < 12; i++ {
		last = s.AnimatedNumber("x", 100, 500*time.Millisecond)
		s.Update(50*time.Millisecond, 0, 0)
	}

	// 600ms have elapsed; the counter must sit exactly on its target.
	if last != 100 {
		t.Fatalf("value after duration elapsed = %v, want exactly 100", last)
	}
	if got := s.AnimatedNumber("x", 100, 500*time.Millisecond); got != 100 {
		t.Fatalf("converged counter moved to %v", got)
	}
}

func TestAnimatedNumberIsMonotonicTowardTarget(t *testing.T) {
	s := NewState()
	prev := s.AnimatedNumber("x", 100, 500*time.Millisecond)
	for i := 0; i < 10; i++ {
		s.Update(50*time.Millisecond, 0, 0)
		v := s.AnimatedNumber("x", 100, 500*time.Millisecond)
		if v < prev {
			t.Fatalf("value regressed from %v to %v", prev, v)
		}
		prev = v
	}
}

func TestAnimatedNumberRetargetsFromCurrentValue(t *testing.T) {
	s := NewState()
	s.AnimatedNumber("x", 100, time.Second)
	s.Update(500*time.Millisecond, 0, 0)

	mid := s.AnimatedNumber("x", 100, time.Second)
	if mid <= 0 || mid >= 100 {
		t.Fatalf("mid-flight value = %v, want strictly between 0 and 100", mid)
	}

	// Retarget: the new ease must start from mid, not from 100.
	v := s.AnimatedNumber("x", 50, time.Second)
	if math.Abs(v-mid) > 1e-9 {
		t.Fatalf("retarget started from %v, want current value %v", v, mid)
	}

	s.Update(2*time.Second, 0, 0)
	if got := s.AnimatedNumber("x", 50, time.Second); got != 50 {
		t.Fatalf("value after retarget duration = %v, want exactly 50", got)
	}
}

func TestPulsePhaseWraps(t *testing.T) {
	s := NewState()
	for i := 0; i < 100; i++ {
		s.Update(time.Second, 0, 0)
		if s.PulsePhase < 0 || s.PulsePhase >= 2*math.Pi {
			t.Fatalf("pulse phase %v outside [0, 2π)", s.PulsePhase)
		}
	}
	if p := s.Pulse(); p < 0 || p > 1 {
		t.Fatalf("pulse intensity %v outside [0,1]", p)
	}
}

func TestEaseBounds(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0}, {0, 0}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := easeOutCubic(tt.in); got != tt.want {
			t.Errorf("easeOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got := EaseInOut(tt.in); got != tt.want {
			t.Errorf("EaseInOut(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if m := easeOutCubic(0.5); m <= 0.5 {
		t.Errorf("easeOutCubic(0.5) = %v, want above linear", m)
	}
}
