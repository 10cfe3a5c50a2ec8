package moisture

import (
	"errors"
	"fmt"
)

// Default calibration points, used when no config file exists yet.
// The sensor reads HIGH frequency in air and LOW frequency in water.
const (
	DefaultDryFreq = 27.0
	DefaultWetFreq = 5.0
)

// Plausibility bands for freshly captured calibration points. Values outside
// these bands are accepted but reported as warnings (calibration in the wrong
// medium is the usual cause).
const (
	minPlausibleDry = 15.0
	maxPlausibleWet = 10.0
)

// ErrInverted is returned when a calibration has wet >= dry. The sensor's
// frequency falls with moisture, so an inverted pair means the capture went
// wrong, not that the maths should be flipped.
var ErrInverted = errors.New("inverted calibration: dry frequency must be greater than wet frequency")

// Calibration holds the two reference frequencies captured with the sensor in
// air (dry) and submerged (wet). Invariant for a usable calibration:
// DryFreq > WetFreq.
type Calibration struct {
	DryFreq float64
	WetFreq float64
}

// DefaultCalibration returns the hardcoded fallback calibration.
func DefaultCalibration() Calibration {
	return Calibration{DryFreq: DefaultDryFreq, WetFreq: DefaultWetFreq}
}

// Validate reports whether the calibration satisfies dry > wet.
func (c Calibration) Validate() error {
	if c.WetFreq >= c.DryFreq {
		return fmt.Errorf("%w (dry=%.2fHz wet=%.2fHz)", ErrInverted, c.DryFreq, c.WetFreq)
	}
	return nil
}

// Warnings returns human-readable warnings for calibration points that are
// valid but physically implausible. Empty for a healthy calibration.
func (c Calibration) Warnings() []string {
	var w []string
	if c.DryFreq < minPlausibleDry {
		w = append(w, fmt.Sprintf("dry frequency %.2fHz is low (expected ~20-30Hz in air)", c.DryFreq))
	}
	if c.WetFreq > maxPlausibleWet {
		w = append(w, fmt.Sprintf("wet frequency %.2fHz is high (expected ~0-5Hz in water)", c.WetFreq))
	}
	return w
}

// Percent converts a measured frequency to a moisture percentage in [0, 100].
// The relationship is inverse: higher frequency means drier, so the dry point
// maps to 0% and the wet point to 100%.
//
// Total over all inputs: a degenerate calibration (dry == wet) returns 0
// rather than dividing by zero, and out-of-range frequencies are clamped to
// the calibration interval.
func (c Calibration) Percent(freq float64) float64 {
	d, w := c.DryFreq, c.WetFreq
	if d == w {
		return 0
	}

	// Clamp into [wet, dry]; dry > wet for any valid calibration.
	if freq > d {
		freq = d
	}
	if freq < w {
		freq = w
	}

	percent := (d - freq) / (d - w) * 100

	// Already guaranteed by the clamp above; kept as a safety net against
	// floating-point drift.
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
