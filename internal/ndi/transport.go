package ndi

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"
)

// Wire framing: a fixed header followed by the pixel payload. All fields
// big-endian.
//
//	offset  size  field
//	0       4     magic "SCF1"
//	4       4     stream name length, then name bytes (header frame only)
//
// Each frame packet:
//
//	0       4     magic "SCF1"
//	4       4     width
//	8       4     height
//	12      4     rate numerator
//	16      4     rate denominator
//	20      4     payload length
//	24      n     BGRA payload
var frameMagic = [4]byte{'S', 'C', 'F', '1'}

const (
	headerSize   = 24
	dialTimeout  = 5 * time.Second
	writeTimeout = 250 * time.Millisecond
)

// Transport carries frames to a display endpoint.
type Transport interface {
	// Open establishes the connection and announces the stream name.
	// A failure here is fatal to startup.
	Open(name string) error
	// Send writes one frame. Errors are per-frame: the caller drops the
	// frame and carries on.
	Send(f *Frame) error
	// Close releases the connection. Safe to call once even if Open
	// never succeeded.
	Close() error
}

// TCPTransport streams frames over a single TCP connection using the
// length-prefixed framing above. Receivers are expected to be local
// (an NDI bridge or preview sink); a short write deadline keeps a
// stalled receiver from holding up the render loop for more than a
// fraction of a tick budget.
type TCPTransport struct {
	addr string
	conn net.Conn
}

// NewTCPTransport creates a transport that will dial addr on Open.
func NewTCPTransport(addr string) *TCPTransport {
	return &TCPTransport{addr: addr}
}

// Open dials the endpoint and announces the stream name.
func (t *TCPTransport) Open(name string) error {
	conn, err := net.DialTimeout("tcp", t.addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("ndi: dial %s: %w", t.addr, err)
	}
	t.conn = conn

	hello := make([]byte, 8+len(name))
	copy(hello[:4], frameMagic[:])
	binary.BigEndian.PutUint32(hello[4:8], uint32(len(name)))
	copy(hello[8:], name)
	if _, err := conn.Write(hello); err != nil {
		conn.Close()
		t.conn = nil
		return fmt.Errorf("ndi: announce stream: %w", err)
	}
	return nil
}

// Send writes one frame packet.
func (t *TCPTransport) Send(f *Frame) error {
	if t.conn == nil {
		return fmt.Errorf("ndi: transport not open")
	}
	var hdr [headerSize]byte
	copy(hdr[:4], frameMagic[:])
	binary.BigEndian.PutUint32(hdr[4:8], uint32(f.Width))
	binary.BigEndian.PutUint32(hdr[8:12], uint32(f.Height))
	binary.BigEndian.PutUint32(hdr[12:16], uint32(f.RateN))
	binary.BigEndian.PutUint32(hdr[16:20], uint32(f.RateD))
	binary.BigEndian.PutUint32(hdr[20:24], uint32(len(f.Pixels)))

	if err := t.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if _, err := t.conn.Write(hdr[:]); err != nil {
		return err
	}
	_, err := t.conn.Write(f.Pixels)
	return err
}

// Close shuts the connection down.
func (t *TCPTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// NullTransport discards every frame. Used when no endpoint is
// configured, which keeps the engine renderable in development.
type NullTransport struct{}

func (NullTransport) Open(string) error { return nil }
func (NullTransport) Send(*Frame) error { return nil }
func (NullTransport) Close() error      { return nil }

// ReadFrame parses one frame packet from buf, returning the frame and
// the number of bytes consumed. Receiver-side helper used by the preview
// sink and the tests.
func ReadFrame(buf []byte) (*Frame, int, error) {
	if len(buf) < headerSize {
		return nil, 0, fmt.Errorf("ndi: short packet: %d bytes", len(buf))
	}
	if [4]byte(buf[:4]) != frameMagic {
		return nil, 0, fmt.Errorf("ndi: bad magic %q", buf[:4])
	}
	n := int(binary.BigEndian.Uint32(buf[20:24]))
	if len(buf) < headerSize+n {
		return nil, 0, fmt.Errorf("ndi: truncated payload: want %d, have %d", n, len(buf)-headerSize)
	}
	f := &Frame{
		Width:  int(binary.BigEndian.Uint32(buf[4:8])),
		Height: int(binary.BigEndian.Uint32(buf[8:12])),
		RateN:  int(binary.BigEndian.Uint32(buf[12:16])),
		RateD:  int(binary.BigEndian.Uint32(buf[16:20])),
		Pixels: buf[headerSize : headerSize+n],
	}
	return f, headerSize + n, nil
}
