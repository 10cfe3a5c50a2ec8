// Package status provides a thread-safe status tracker for the picogrow
// daemon. It is read by the HTTP handlers and feeds the MQTT system events.
package status

import (
	"sync"
	"time"

	"github.com/alexb2611/picogrow/internal/moisture"
)

// NetworkInfo contains network state as reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	SampleWindowMs int64
	IntervalMs     int64
	HeartbeatMs    int64
	Broker         string
	HTTPAddr       string
	SensorPin      int
	CalibFile      string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	LastReading   *moisture.Reading
	ReadingCount  int
	ErrorCount    int
	Calibration   moisture.Calibration
	CalSource     moisture.Source
	TimeSynced    bool
	ClockOffset   time.Duration
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetCalibration records the calibration in use and where it came from.
func (t *Tracker) SetCalibration(cal moisture.Calibration, source moisture.Source) {
	t.mu.Lock()
	t.snap.Calibration = cal
	t.snap.CalSource = source
	t.mu.Unlock()
}

// RecordReading stores the latest reading. Called after every measurement.
func (t *Tracker) RecordReading(r moisture.Reading) {
	t.mu.Lock()
	cp := r
	t.snap.LastReading = &cp
	t.snap.ReadingCount++
	t.mu.Unlock()
}

// RecordError counts a failed measurement or publish.
func (t *Tracker) RecordError() {
	t.mu.Lock()
	t.snap.ErrorCount++
	t.mu.Unlock()
}

// SetTimeSync records the result of the startup NTP check.
func (t *Tracker) SetTimeSync(synced bool, offset time.Duration) {
	t.mu.Lock()
	t.snap.TimeSynced = synced
	t.snap.ClockOffset = offset
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
