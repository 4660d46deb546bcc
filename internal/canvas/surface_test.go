package canvas

import (
	"image/color"
	"testing"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func pixelAt(s *Surface, x, y int) [4]byte {
	i := (y*s.W + x) * 4
	return [4]byte{s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3]}
}

func TestFillWritesBGRAOrder(t *testing.T) {
	s := NewSurface(4, 4)
	s.Fill(color.RGBA{R: 10, G: 20, B: 30, A: 255})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := pixelAt(s, x, y)
			want := [4]byte{30, 20, 10, 255}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillRectClipsToBounds(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
	}{
		{"fully outside", -10, -10, 5, 5},
		{"overlapping left edge", -2, 1, 4, 2},
		{"overlapping bottom right", 6, 6, 10, 10},
		{"zero size", 2, 2, 0, 0},
		{"negative size", 2, 2, -3, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(8, 8)
			s.FillRect(tt.x, tt.y, tt.w, tt.h, red) // must not panic

			// Whatever was painted must be inside bounds; verify the
			// buffer length was respected by checking corners stay sane.
			if len(s.Pix) != 8*8*4 {
				t.Fatalf("pixel buffer resized to %d", len(s.Pix))
			}
		})
	}
}

func TestFillRectPaintsExactRegion(t *testing.T) {
	s := NewSurface(8, 8)
	s.FillRect(2, 3, 3, 2, red)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inside := x >= 2 && x < 5 && y >= 3 && y < 5
			p := pixelAt(s, x, y)
			if inside && p[2] != 255 {
				t.Errorf("pixel (%d,%d) not painted", x, y)
			}
			if !inside && p[2] != 0 {
				t.Errorf("pixel (%d,%d) painted outside rect", x, y)
			}
		}
	}
}

func TestCompositeOverBlendsUniformAlpha(t *testing.T) {
	dst := NewSurface(2, 1)
	src := NewSurface(2, 1)
	dst.Fill(color.RGBA{A: 255})             // black
	src.Fill(color.RGBA{R: 200, G: 100, A: 255})

	dst.CompositeOver(src, 0.5)

	p := pixelAt(dst, 0, 0)
	if p[2] != 100 || p[1] != 50 {
		t.Fatalf("blend at 0.5 = %v, want R=100 G=50", p)
	}

	dst.CompositeOver(src, 1)
	p = pixelAt(dst, 1, 0)
	if p[2] != 200 || p[1] != 100 {
		t.Fatalf("blend at 1.0 = %v, want full src", p)
	}
}

func TestCompositeOverMismatchedSizeIsNoop(t *testing.T) {
	dst := NewSurface(4, 4)
	src := NewSurface(2, 2)
	src.Fill(red)
	dst.CompositeOver(src, 1)
	if pixelAt(dst, 0, 0) != [4]byte{} {
		t.Fatal("mismatched composite modified destination")
	}
}

func TestBlitShiftedClipsAtEdges(t *testing.T) {
	dst := NewSurface(4, 4)
	src := NewSurface(4, 4)
	src.Fill(blue)

	dst.BlitShifted(src, 2, 0)

	if p := pixelAt(dst, 1, 0); p[0] != 0 {
		t.Errorf("pixel left of shift painted: %v", p)
	}
	if p := pixelAt(dst, 2, 0); p[0] != 255 {
		t.Errorf("shifted pixel not painted: %v", p)
	}
	// Shift fully off-surface must be a no-op, not a panic.
	dst.BlitShifted(src, 10, 10)
	dst.BlitShifted(src, -10, -10)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#1a2b3c", want: color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{in: "#0f0", want: color.RGBA{G: 255, A: 255}},
		{in: "1a2b3c", want: color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{in: "#12345", wantErr: true},
		{in: "", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTextMarksPixels(t *testing.T) {
	s := NewSurface(80, 20)
	s.Text(2, 13, "OK", color.RGBA{R: 255, G: 255, B: 255, A: 255})

	painted := 0
	for i := 3; i < len(s.Pix); i += 4 {
		if s.Pix[i] != 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Fatal("Text drew no pixels")
	}
	if w := TextWidth("OK"); w != 2*GlyphWidth {
		t.Fatalf("TextWidth = %d, want %d", w, 2*GlyphWidth)
	}
}
