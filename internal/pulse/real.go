//go:build linux

package pulse

import (
	"fmt"
	"sync/atomic"

	"github.com/warthog618/go-gpiocdev"
)

// RealLine is an EdgeSource backed by a Linux GPIO character device line.
//
// The line is requested once at construction with edge detection enabled, so
// a wiring or permissions fault surfaces as a construction error rather than
// mid-measurement. Watch/Unwatch only swap the callback the kernel events are
// forwarded to, which keeps the measurement window cheap to open and close.
type RealLine struct {
	line *gpiocdev.Line
	fn   atomic.Pointer[func()]
}

// NewRealLine requests the given line for rising-edge events.
// Pull-down matches the sensor's open signal line and the Pi boot defaults.
func NewRealLine(chip string, pin int) (*RealLine, error) {
	r := &RealLine{}
	line, err := gpiocdev.RequestLine(chip, pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullDown,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithEventHandler(r.handleEvent))
	if err != nil {
		return nil, fmt.Errorf("request sensor pin %d on %s: %w", pin, chip, err)
	}
	r.line = line
	return r, nil
}

func (r *RealLine) handleEvent(evt gpiocdev.LineEvent) {
	if evt.Type != gpiocdev.LineEventRisingEdge {
		return
	}
	if fn := r.fn.Load(); fn != nil {
		(*fn)()
	}
}

// Watch starts forwarding rising edges to fn.
func (r *RealLine) Watch(fn func()) error {
	r.fn.Store(&fn)
	return nil
}

// Unwatch stops forwarding edges.
func (r *RealLine) Unwatch() error {
	r.fn.Store(nil)
	return nil
}

// Close releases the GPIO line.
func (r *RealLine) Close() error {
	r.fn.Store(nil)
	if r.line != nil {
		if err := r.line.Close(); err != nil {
			return fmt.Errorf("close sensor line: %w", err)
		}
	}
	return nil
}
