package slides

import (
	"time"

	"github.com/craftboard/signcast/internal/canvas"
)

// counterDuration is how long headline numbers take to settle after a
// data refresh changes their target.
const counterDuration = 800 * time.Millisecond

// RenderEmptyDeck fills the frame for the terminal "nothing enabled"
// state. The scheduler never leaves that state, so this is all the
// display shows until configuration changes.
func RenderEmptyDeck(s *canvas.Surface, th Theme) {
	s.Fill(th.Background)
	msg := "NO SLIDES CONFIGURED"
	w := canvas.TextWidth(msg) * 3
	s.TextScaled((s.W-w)/2, s.H/2, msg, th.Muted, 3)
	sub := "enable at least one slide in the deck configuration"
	s.Text((s.W-canvas.TextWidth(sub))/2, s.H/2+32, sub, canvas.Scale(th.Muted, 0.7))
}

// RenderNoData is the per-slide fallback: the slide's domain has no
// cached data yet, or its renderer failed this frame.
func RenderNoData(s *canvas.Surface, th Theme, title string) {
	s.Fill(th.Background)
	if title != "" {
		m := 32
		s.TextScaled(m, 44, title, th.Text, 3)
	}
	msg := "NO DATA AVAILABLE"
	w := canvas.TextWidth(msg) * 3
	s.TextScaled((s.W-w)/2, s.H/2, msg, th.Muted, 3)
}
