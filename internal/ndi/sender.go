package ndi

import (
	"fmt"
	"log"
	"time"

	"github.com/craftboard/signcast/internal/model"
)

// sendErrorLogEvery rate-limits per-frame failure logging so a dead
// receiver does not flood the runtime log at 30 messages per second.
const sendErrorLogEvery = 5 * time.Second

// Sender wraps a Transport with frame accounting. It is used from the
// render loop only and is not safe for concurrent use.
type Sender struct {
	transport Transport
	name      string
	rateN     int
	rateD     int

	frameCount  uint64
	dropCount   uint64
	startTime   time.Time
	initialized bool
	destroyed   bool
	lastErrLog  time.Time

	now func() time.Time
}

// NewSender wraps a transport. Initialize must run before SendFrame.
func NewSender(t Transport) *Sender {
	return &Sender{transport: t, now: time.Now}
}

// Initialize validates the frame rate, opens the transport, and starts
// the FPS clock. A transport failure here is a fatal startup error; the
// caller aborts rather than retrying.
func (s *Sender) Initialize(name string, frameRate int) error {
	if frameRate < model.MinFrameRate || frameRate > model.MaxFrameRate {
		return fmt.Errorf("ndi: frame rate %d outside %d-%d", frameRate, model.MinFrameRate, model.MaxFrameRate)
	}
	if err := s.transport.Open(name); err != nil {
		return err
	}
	s.name = name
	s.rateN = frameRate
	s.rateD = 1
	s.startTime = s.now()
	s.initialized = true
	return nil
}

// SendFrame emits one frame. A send failure is logged (rate limited),
// counted as a drop, and returned so the loop can track it; the loop
// continues on the next tick regardless.
func (s *Sender) SendFrame(pixels []byte, width, height int) error {
	if !s.initialized {
		return fmt.Errorf("ndi: sender not initialized")
	}
	f := &Frame{
		Pixels: pixels,
		Width:  width,
		Height: height,
		RateN:  s.rateN,
		RateD:  s.rateD,
	}
	if err := s.transport.Send(f); err != nil {
		s.dropCount++
		if now := s.now(); now.Sub(s.lastErrLog) >= sendErrorLogEvery {
			s.lastErrLog = now
			log.Printf("ndi: dropped frame (%d total): %v", s.dropCount, err)
		}
		return err
	}
	s.frameCount++
	return nil
}

// FPS returns the running average since Initialize, not an instantaneous
// rate.
func (s *Sender) FPS() float64 {
	if !s.initialized {
		return 0
	}
	elapsed := s.now().Sub(s.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.frameCount) / elapsed
}

// FrameCount returns the number of frames successfully sent.
func (s *Sender) FrameCount() uint64 { return s.frameCount }

// DropCount returns the number of frames that failed to send.
func (s *Sender) DropCount() uint64 { return s.dropCount }

// Name returns the announced stream name.
func (s *Sender) Name() string { return s.name }

// Destroy releases the transport. Safe to call once even when Initialize
// never succeeded, and safe to call again after that.
func (s *Sender) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if err := s.transport.Close(); err != nil {
		log.Printf("ndi: close transport: %v", err)
	}
}
