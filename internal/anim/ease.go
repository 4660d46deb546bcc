package anim

// easeOutCubic maps linear progress t in [0,1] to a decelerating curve.
func easeOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOut maps t in [0,1] to a smoothstep curve. Slide transitions use
// it so motion accelerates and settles instead of snapping.
func EaseInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
