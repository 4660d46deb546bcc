package model

import (
	"fmt"
	"time"
)

// SlideType identifies one renderer in the closed slide set.
type SlideType string

const (
	SlideProjects       SlideType = "projects"
	SlidePurchaseOrders SlideType = "purchase_orders"
	SlideRevenue        SlideType = "revenue"
	SlideSchedule       SlideType = "schedule"
	SlideMetrics        SlideType = "metrics"
	SlideDashboard      SlideType = "dashboard"
)

// KnownSlideTypes lists every renderable slide type in display order.
var KnownSlideTypes = []SlideType{
	SlideProjects,
	SlidePurchaseOrders,
	SlideRevenue,
	SlideSchedule,
	SlideMetrics,
	SlideDashboard,
}

// Valid reports whether t names a known slide renderer.
func (t SlideType) Valid() bool {
	for _, k := range KnownSlideTypes {
		if t == k {
			return true
		}
	}
	return false
}

// SlideDefinition describes one entry of the rotation deck.
// Definitions are immutable after load; the scheduler only reads them.
type SlideDefinition struct {
	Type     SlideType
	Enabled  bool
	Duration time.Duration // >= MinSlideDuration
	Title    string
	Options  map[string]string
}

// Validate checks a definition against deck constraints.
func (d SlideDefinition) Validate() error {
	if !d.Type.Valid() {
		return fmt.Errorf("unknown slide type %q", d.Type)
	}
	if d.Duration < MinSlideDuration {
		return fmt.Errorf("slide %q: duration %s below minimum %s", d.Type, d.Duration, MinSlideDuration)
	}
	return nil
}

// TransitionKind selects how one slide hands off to the next.
type TransitionKind string

const (
	TransitionNone  TransitionKind = "none"
	TransitionFade  TransitionKind = "fade"
	TransitionSlide TransitionKind = "slide"
)

// Valid reports whether k is a supported transition.
func (k TransitionKind) Valid() bool {
	switch k {
	case TransitionNone, TransitionFade, TransitionSlide:
		return true
	}
	return false
}
