// Package capture simulates camera barcode acquisition. There is no real
// decoding: a session resolves one barcode from a fixed sample set after
// a short delay, the same behaviour the reference viewfinder shipped with.
// What the package does take seriously is resource lifecycle - an acquired
// session must be released on every exit path, success or not.
package capture

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sampleBarcodes is the fixed set the simulator picks from.
var sampleBarcodes = []string{
	"1234567890123",
	"9876543210987",
	"5555555555555",
	"1111111111111",
}

// Device hands out capture sessions. One session may be live at a time,
// mirroring exclusive camera ownership; a second Open fails with
// CauseDeviceBusy until the first session is closed.
type Device struct {
	mu      sync.Mutex
	detect  time.Duration
	active  *Session
	barcode func() string
}

// NewDevice builds a simulated device. detectDelay is how long a session
// waits before "detecting" a barcode; zero means immediate.
func NewDevice(detectDelay time.Duration) *Device {
	return &Device{
		detect: detectDelay,
		barcode: func() string {
			return sampleBarcodes[rand.Intn(len(sampleBarcodes))]
		},
	}
}

// Open acquires the camera and returns a live session. The caller must
// Close the session on every exit path.
func (d *Device) Open() (*Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active != nil {
		return nil, &Error{Cause: CauseDeviceBusy}
	}
	s := &Session{
		ID:     uuid.New().String(),
		device: d,
		done:   make(chan struct{}),
	}
	d.active = s
	return s, nil
}

func (d *Device) release(s *Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == s {
		d.active = nil
	}
}

// Session is one acquired capture. Closed exactly once; double Close is a
// no-op.
type Session struct {
	ID     string
	device *Device

	closeOnce sync.Once
	done      chan struct{}
}

// Detect blocks until a barcode is "decoded", the context is cancelled,
// or the session is closed. The session stays open afterwards so the
// caller can decide when to release it.
func (s *Session) Detect(ctx context.Context) (string, error) {
	t := time.NewTimer(s.device.detect)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return "", &Error{Cause: CauseClosed, Err: ctx.Err()}
	case <-s.done:
		return "", &Error{Cause: CauseClosed}
	case <-t.C:
		return s.device.barcode(), nil
	}
}

// Close stops the session and releases the device. Safe to call from any
// exit path, any number of times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.device.release(s)
	})
}

// Closed reports whether the session has been released.
func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
