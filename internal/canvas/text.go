package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph metrics of the built-in face. Slides use these for layout math.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
	GlyphAscent = 11
)

// Text draws s at (x, y) where y is the text baseline, using the built-in
// 7x13 face.
func (sf *Surface) Text(x, y int, s string, c color.RGBA) {
	d := font.Drawer{
		Dst:  sf,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// TextWidth returns the pixel width of s in the built-in face.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// TextScaled draws s with an integer scale factor by rendering the glyphs
// once and nearest-neighbor expanding them. Headline numbers on slides
// use scale 3-5; scale 1 falls through to Text.
func (sf *Surface) TextScaled(x, y int, s string, c color.RGBA, scale int) {
	if scale <= 1 {
		sf.Text(x, y, s, c)
		return
	}
	w := TextWidth(s)
	if w == 0 {
		return
	}
	tmp := NewSurface(w, GlyphHeight)
	tmp.Text(0, GlyphAscent, s, c)
	top := y - GlyphAscent*scale
	for sy := 0; sy < tmp.H; sy++ {
		for sx := 0; sx < tmp.W; sx++ {
			i := (sy*tmp.W + sx) * 4
			if tmp.Pix[i+3] == 0 {
				continue
			}
			sf.FillRect(x+sx*scale, top+sy*scale, scale, scale, c)
		}
	}
}
