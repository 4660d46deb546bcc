// Package ndi emits finished frames to the display endpoint at the
// configured rate. The wire contract mirrors an NDI-style sender: raw
// BGRA pixels, explicit dimensions, and a rational frame rate so
// non-integer rates carry no rounding error.
package ndi

// Frame is one outbound video frame.
type Frame struct {
	Pixels []byte // BGRA, 4 bytes per pixel, row-major
	Width  int
	Height int
	RateN  int // frame rate numerator
	RateD  int // frame rate denominator
}
