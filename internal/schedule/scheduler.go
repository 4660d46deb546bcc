// Package schedule drives the slide rotation: which slide is on screen,
// how long it has been there, and the progress of the handoff to the
// next one.
package schedule

import (
	"time"

	"github.com/craftboard/signcast/internal/model"
)

// Phase is the scheduler's current mode.
type Phase int

const (
	// PhaseEmpty means no slide is enabled; the engine renders the
	// "no slides configured" placeholder and nothing ever transitions.
	PhaseEmpty Phase = iota
	// PhaseShowing means one slide is on screen, its dwell timer running.
	PhaseShowing
	// PhaseTransitioning means two slides are being blended.
	PhaseTransitioning
)

// Transition describes an in-progress handoff. Progress runs 0..1.
type Transition struct {
	From     int
	To       int
	Progress float64
}

// Scheduler owns the rotation state machine. Update is the only mutator;
// it reads nothing but its own fields and the immutable slide list.
type Scheduler struct {
	slides         []model.SlideDefinition
	transitionKind model.TransitionKind
	transitionTime time.Duration

	phase      Phase
	active     int
	elapsed    time.Duration
	transition Transition
}

// New builds a scheduler over an immutable slide list. The transition
// kind and duration are global configuration, independent of per-slide
// dwell times.
func New(slides []model.SlideDefinition, kind model.TransitionKind, transitionTime time.Duration) *Scheduler {
	s := &Scheduler{
		slides:         slides,
		transitionKind: kind,
		transitionTime: transitionTime,
	}
	first := s.nextEnabled(-1)
	if first < 0 {
		s.phase = PhaseEmpty
		return s
	}
	s.phase = PhaseShowing
	s.active = first
	return s
}

// Update advances the rotation by dt.
func (s *Scheduler) Update(dt time.Duration) {
	switch s.phase {
	case PhaseEmpty:
		return
	case PhaseShowing:
		s.elapsed += dt
		if s.elapsed < s.slides[s.active].Duration {
			return
		}
		next := s.nextEnabled(s.active)
		if next == s.active {
			// Sole enabled slide: reset the dwell timer, never hand off.
			s.elapsed = 0
			return
		}
		if s.transitionKind == model.TransitionNone || s.transitionTime <= 0 {
			s.active = next
			s.elapsed = 0
			return
		}
		s.phase = PhaseTransitioning
		s.transition = Transition{From: s.active, To: next}
	case PhaseTransitioning:
		s.transition.Progress += float64(dt) / float64(s.transitionTime)
		if s.transition.Progress >= 1 {
			s.active = s.transition.To
			s.elapsed = 0
			s.phase = PhaseShowing
			s.transition = Transition{}
		}
	}
}

// nextEnabled walks forward circularly from idx, skipping disabled
// slides. Returns -1 when nothing is enabled.
func (s *Scheduler) nextEnabled(idx int) int {
	n := len(s.slides)
	if n == 0 {
		return -1
	}
	for step := 1; step <= n; step++ {
		i := (idx + step + n) % n
		if s.slides[i].Enabled {
			return i
		}
	}
	return -1
}

// Phase returns the current mode.
func (s *Scheduler) Phase() Phase { return s.phase }

// Active returns the index of the slide on screen. During a transition
// this is the outgoing slide. Meaningless in PhaseEmpty.
func (s *Scheduler) Active() int { return s.active }

// Slide returns the definition at index i.
func (s *Scheduler) Slide(i int) model.SlideDefinition { return s.slides[i] }

// Transition returns the in-progress handoff; valid only while
// Phase() == PhaseTransitioning.
func (s *Scheduler) Transition() Transition { return s.transition }

// Kind returns the configured transition kind.
func (s *Scheduler) Kind() model.TransitionKind { return s.transitionKind }

// Elapsed returns how long the active slide has been showing.
func (s *Scheduler) Elapsed() time.Duration { return s.elapsed }
