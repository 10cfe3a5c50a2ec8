// Package moisture contains pure conversion logic for the Grow PFM capacitive
// sensor: a two-point calibration and the frequency-to-percentage transform.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
package moisture

import "time"

// Level buckets a moisture percentage for display and payloads.
type Level string

const (
	LevelDry   Level = "DRY"   // 0-33%
	LevelMoist Level = "MOIST" // 34-66%
	LevelWet   Level = "WET"   // 67-100%
)

// LevelFor returns the display level for a moisture percentage.
func LevelFor(percent float64) Level {
	switch {
	case percent < 34:
		return LevelDry
	case percent < 67:
		return LevelMoist
	default:
		return LevelWet
	}
}

// Reading is one completed measurement: the raw sample plus the converted
// percentage. Value type, safe to copy.
type Reading struct {
	Time      time.Time
	Frequency float64 // Hz
	Pulses    uint64
	Window    time.Duration
	Percent   float64
	Level     Level
}

// NewReading converts a raw pulse sample into a Reading using cal.
func NewReading(t time.Time, freq float64, pulses uint64, window time.Duration, cal Calibration) Reading {
	percent := cal.Percent(freq)
	return Reading{
		Time:      t,
		Frequency: freq,
		Pulses:    pulses,
		Window:    window,
		Percent:   percent,
		Level:     LevelFor(percent),
	}
}
