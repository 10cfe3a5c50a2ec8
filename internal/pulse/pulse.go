// Package pulse measures the frequency of a PFM sensor signal by counting
// rising edges on a GPIO line over a fixed window.
// The real implementation uses Linux GPIO character device edge events.
// The fake implementation allows testing without hardware.
package pulse

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Default wiring (BCM numbering on a Raspberry Pi).
const (
	DefaultChip = "gpiochip0"
	DefaultPin  = 26 // Grow sensor PFM signal
)

// ErrBusy is returned when Measure is called while another measurement
// window is already open. Only one window may be active at a time: the edge
// callback and the counter are shared.
var ErrBusy = errors.New("pulse: measurement already in progress")

// EdgeSource delivers rising-edge notifications from a single input line.
type EdgeSource interface {
	// Watch starts delivering rising-edge notifications to fn.
	// Only one watcher may be active at a time.
	Watch(fn func()) error

	// Unwatch stops notifications. Safe to call when not watching.
	Unwatch() error
}

// Sample is a single frequency measurement. Ephemeral: callers derive the
// frequency and move on.
type Sample struct {
	Pulses uint64
	Window time.Duration
}

// Frequency returns the measured frequency in Hz. Zero pulses is a valid
// 0 Hz sample (sensor at the wet extreme), not an error.
func (s Sample) Frequency() float64 {
	if s.Window <= 0 {
		return 0
	}
	return float64(s.Pulses) / s.Window.Seconds()
}

// Meter counts rising edges over a fixed window to estimate the sensor's
// output frequency.
type Meter struct {
	src   EdgeSource
	sleep func(time.Duration)

	mu    sync.Mutex // one measurement window at a time
	count atomic.Uint64
}

// NewMeter creates a meter reading edges from src.
func NewMeter(src EdgeSource) *Meter {
	return &Meter{src: src, sleep: time.Sleep}
}

// SetSleep replaces the blocking delay used during the sample window.
// Tests use this to avoid real sleeps.
func (m *Meter) SetSleep(sleep func(time.Duration)) {
	m.sleep = sleep
}

// Measure counts rising edges for the given window and returns the sample.
// It blocks the caller for the full window; there is no cancellation once
// started. The edge callback is always deregistered before returning,
// including on the error path.
func (m *Meter) Measure(window time.Duration) (Sample, error) {
	if window <= 0 {
		return Sample{}, fmt.Errorf("pulse: window must be positive, got %v", window)
	}

	if !m.mu.TryLock() {
		return Sample{}, ErrBusy
	}
	defer m.mu.Unlock()

	m.count.Store(0)
	if err := m.src.Watch(m.countEdge); err != nil {
		return Sample{}, fmt.Errorf("pulse: watch line: %w", err)
	}
	defer m.src.Unwatch()

	m.sleep(window)

	return Sample{Pulses: m.count.Load(), Window: window}, nil
}

func (m *Meter) countEdge() {
	m.count.Add(1)
}
