package canvas

import (
	"image/color"
	"sync/atomic"
)

// Compositor owns exactly two equally-sized surfaces and flips which one
// is the front. All drawing targets the back surface; FrontBytes always
// returns a complete frame, either the previous one or, after Swap, the
// one just drawn. The flip is a single atomic index store, so a reader
// racing a draw never observes a half-painted buffer.
type Compositor struct {
	surfaces   [2]*Surface
	front      atomic.Int32
	background color.RGBA
}

// NewCompositor allocates both surfaces at the fixed display size.
// Surfaces are never reallocated after this point.
func NewCompositor(w, h int, background color.RGBA) *Compositor {
	c := &Compositor{background: background}
	c.surfaces[0] = NewSurface(w, h)
	c.surfaces[1] = NewSurface(w, h)
	c.surfaces[0].Fill(background)
	c.surfaces[1].Fill(background)
	return c
}

// Width returns the fixed frame width.
func (c *Compositor) Width() int { return c.surfaces[0].W }

// Height returns the fixed frame height.
func (c *Compositor) Height() int { return c.surfaces[0].H }

// Back returns the draw target for the current cycle. Only the render
// loop may touch it, and only between Clear and Swap.
func (c *Compositor) Back() *Surface {
	return c.surfaces[1-c.front.Load()]
}

// Clear resets the back surface to the background color. Must run before
// each cycle's drawing; skipping it would leak the previous cycle's
// pixels into the new frame.
func (c *Compositor) Clear() {
	c.Back().Fill(c.background)
}

// Swap promotes the back surface to front.
func (c *Compositor) Swap() {
	c.front.Store(1 - c.front.Load())
}

// FrontBytes returns the pixel bytes of the last completed frame.
// The returned slice aliases the front surface; callers must treat it as
// read-only and consume it before the next Swap overwrites the buffer.
func (c *Compositor) FrontBytes() []byte {
	return c.surfaces[c.front.Load()].Pix
}
