// Package canvas provides the fixed-size BGRA pixel surfaces the render
// loop draws into, and the double-buffered compositor that exposes only
// complete frames to the frame sender.
package canvas

import (
	"image"
	"image/color"
)

// Surface is a fixed-size pixel buffer in BGRA byte order, row-major,
// 4 bytes per pixel. BGRA is the wire layout the frame transport carries,
// so frames are sent without a conversion pass.
type Surface struct {
	W, H int
	Pix  []byte
}

// NewSurface allocates a zeroed surface. Width and height are fixed for
// the lifetime of the surface.
func NewSurface(w, h int) *Surface {
	return &Surface{W: w, H: h, Pix: make([]byte, w*h*4)}
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return color.RGBA{}
	}
	i := (y*s.W + x) * 4
	return color.RGBA{R: s.Pix[i+2], G: s.Pix[i+1], B: s.Pix[i], A: s.Pix[i+3]}
}

// Set implements draw.Image, which lets font drawers target a surface
// directly.
func (s *Surface) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return
	}
	r, g, b, a := c.RGBA()
	i := (y*s.W + x) * 4
	s.Pix[i] = byte(b >> 8)
	s.Pix[i+1] = byte(g >> 8)
	s.Pix[i+2] = byte(r >> 8)
	s.Pix[i+3] = byte(a >> 8)
}

// Fill paints the whole surface with c.
func (s *Surface) Fill(c color.RGBA) {
	p := s.Pix
	if len(p) < 4 {
		return
	}
	p[0], p[1], p[2], p[3] = c.B, c.G, c.R, c.A
	for n := 4; n < len(p); n *= 2 {
		copy(p[n:], p[:n])
	}
}

// FillRect paints the rectangle [x,x+w)×[y,y+h), clipped to the surface.
func (s *Surface) FillRect(x, y, w, h int, c color.RGBA) {
	x0, y0, x1, y1 := clip(x, y, w, h, s.W, s.H)
	for yy := y0; yy < y1; yy++ {
		i := (yy*s.W + x0) * 4
		for xx := x0; xx < x1; xx++ {
			s.Pix[i] = c.B
			s.Pix[i+1] = c.G
			s.Pix[i+2] = c.R
			s.Pix[i+3] = c.A
			i += 4
		}
	}
}

// Rect strokes a 1px rectangle outline.
func (s *Surface) Rect(x, y, w, h int, c color.RGBA) {
	s.FillRect(x, y, w, 1, c)
	s.FillRect(x, y+h-1, w, 1, c)
	s.FillRect(x, y, 1, h, c)
	s.FillRect(x+w-1, y, 1, h, c)
}

// HLine draws a horizontal line of length w starting at (x, y).
func (s *Surface) HLine(x, y, w int, c color.RGBA) { s.FillRect(x, y, w, 1, c) }

// VLine draws a vertical line of length h starting at (x, y).
func (s *Surface) VLine(x, y, h int, c color.RGBA) { s.FillRect(x, y, 1, h, c) }

// BlendPixel alpha-blends c over the pixel at (x, y) using c.A and the
// extra alpha factor (0..1). Used by particle rendering.
func (s *Surface) BlendPixel(x, y int, c color.RGBA, alpha float64) {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return
	}
	a := float64(c.A) / 255 * clamp01(alpha)
	if a <= 0 {
		return
	}
	i := (y*s.W + x) * 4
	s.Pix[i] = blend(s.Pix[i], c.B, a)
	s.Pix[i+1] = blend(s.Pix[i+1], c.G, a)
	s.Pix[i+2] = blend(s.Pix[i+2], c.R, a)
	s.Pix[i+3] = 255
}

// FillRectBlend fills a rectangle with c blended at the given alpha.
func (s *Surface) FillRectBlend(x, y, w, h int, c color.RGBA, alpha float64) {
	a := clamp01(alpha)
	if a <= 0 {
		return
	}
	x0, y0, x1, y1 := clip(x, y, w, h, s.W, s.H)
	for yy := y0; yy < y1; yy++ {
		i := (yy*s.W + x0) * 4
		for xx := x0; xx < x1; xx++ {
			s.Pix[i] = blend(s.Pix[i], c.B, a)
			s.Pix[i+1] = blend(s.Pix[i+1], c.G, a)
			s.Pix[i+2] = blend(s.Pix[i+2], c.R, a)
			s.Pix[i+3] = 255
			i += 4
		}
	}
}

// CopyFrom replaces this surface's pixels with src's. Dimensions must
// match; a mismatch is a programming error and is ignored rather than
// partially copied.
func (s *Surface) CopyFrom(src *Surface) {
	if src == nil || src.W != s.W || src.H != s.H {
		return
	}
	copy(s.Pix, src.Pix)
}

// CompositeOver blends src over this surface with a uniform alpha (0..1).
// alpha 0 leaves the surface untouched, alpha 1 replaces it. Used for
// fade transitions.
func (s *Surface) CompositeOver(src *Surface, alpha float64) {
	if src == nil || src.W != s.W || src.H != s.H {
		return
	}
	a := clamp01(alpha)
	if a == 0 {
		return
	}
	if a == 1 {
		copy(s.Pix, src.Pix)
		return
	}
	for i := range s.Pix {
		s.Pix[i] = blend(s.Pix[i], src.Pix[i], a)
	}
}

// BlitShifted copies src onto this surface offset by (dx, dy), clipping
// at the edges. Used for slide transitions.
func (s *Surface) BlitShifted(src *Surface, dx, dy int) {
	if src == nil {
		return
	}
	for yy := 0; yy < src.H; yy++ {
		ty := yy + dy
		if ty < 0 || ty >= s.H {
			continue
		}
		sx0 := 0
		tx0 := dx
		if tx0 < 0 {
			sx0 = -tx0
			tx0 = 0
		}
		n := src.W - sx0
		if tx0+n > s.W {
			n = s.W - tx0
		}
		if n <= 0 {
			continue
		}
		si := (yy*src.W + sx0) * 4
		ti := (ty*s.W + tx0) * 4
		copy(s.Pix[ti:ti+n*4], src.Pix[si:si+n*4])
	}
}

func clip(x, y, w, h, maxW, maxH int) (x0, y0, x1, y1 int) {
	x0, y0 = x, y
	x1, y1 = x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > maxW {
		x1 = maxW
	}
	if y1 > maxH {
		y1 = maxH
	}
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return
}

func blend(dst, src byte, a float64) byte {
	return byte(float64(dst)*(1-a) + float64(src)*a + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
