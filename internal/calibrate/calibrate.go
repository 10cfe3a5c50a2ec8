// Package calibrate implements the guided two-point calibration: capture the
// sensor's frequency in air (dry) and in water (wet), validate the pair, and
// persist it. Button-less: the operator gets a fixed countdown to reposition
// the sensor before each capture.
package calibrate

import (
	"fmt"
	"io"
	"time"

	"github.com/alexb2611/picogrow/internal/display"
	"github.com/alexb2611/picogrow/internal/moisture"
	"github.com/alexb2611/picogrow/internal/pulse"
)

// Default timings, tuned for moving a sensor between a plant pot and a glass
// of water by hand.
const (
	DefaultPrepTime   = 10 * time.Second // repositioning countdown
	DefaultSampleTime = 3 * time.Second  // longer than the monitor window, for accuracy
)

// Measurer takes one frequency sample. Satisfied by *pulse.Meter.
type Measurer interface {
	Measure(window time.Duration) (pulse.Sample, error)
}

// Saver persists an accepted calibration. Satisfied by *moisture.Store.
type Saver interface {
	Save(cal moisture.Calibration) error
}

// Procedure runs the interactive calibration. Time and hardware are
// injectable so the sequencing is testable without sleeping.
type Procedure struct {
	Meter      Measurer
	Display    display.Display
	Saver      Saver
	Out        io.Writer
	PrepTime   time.Duration
	SampleTime time.Duration

	sleep func(time.Duration)
}

// New creates a Procedure with default timings.
func New(meter Measurer, disp display.Display, saver Saver, out io.Writer) *Procedure {
	return &Procedure{
		Meter:      meter,
		Display:    disp,
		Saver:      saver,
		Out:        out,
		PrepTime:   DefaultPrepTime,
		SampleTime: DefaultSampleTime,
		sleep:      time.Sleep,
	}
}

// SetSleep replaces the blocking delay. Tests use this to avoid real sleeps.
func (p *Procedure) SetSleep(sleep func(time.Duration)) { p.sleep = sleep }

// Run walks the operator through both captures and persists the result.
// An inverted pair (wet >= dry) is rejected without touching the persisted
// values; implausible-but-ordered values are saved with a warning.
func (p *Procedure) Run() (moisture.Calibration, error) {
	fmt.Fprintln(p.Out, "Grow sensor calibration")
	fmt.Fprintln(p.Out, "The sensor reads HIGH frequency in air and LOW frequency in water.")
	p.Display.ShowMessage("CALIBRATION", "Starting...")
	p.sleep(2 * time.Second)

	dry, err := p.capture("DRY", "Hold sensor in AIR", "Remove sensor", "Hold in AIR")
	if err != nil {
		return moisture.Calibration{}, err
	}
	p.Display.ShowMessage("DRY Reading:", fmt.Sprintf("%.1f Hz", dry), "(HIGH freq)", "Step 1 done!")
	p.sleep(3 * time.Second)

	wet, err := p.capture("WET", "Put sensor in WATER", "Put sensor", "in WATER")
	if err != nil {
		return moisture.Calibration{}, err
	}
	p.Display.ShowMessage("WET Reading:", fmt.Sprintf("%.1f Hz", wet), "(LOW freq)", "Step 2 done!")
	p.sleep(3 * time.Second)

	cal := moisture.Calibration{DryFreq: dry, WetFreq: wet}
	fmt.Fprintf(p.Out, "\nDry: %.2f Hz  Wet: %.2f Hz  Range: %.2f Hz\n", dry, wet, dry-wet)

	if err := cal.Validate(); err != nil {
		fmt.Fprintf(p.Out, "ERROR: %v\n", err)
		fmt.Fprintln(p.Out, "The dry reading should be HIGHER than the wet one. Try again.")
		p.Display.ShowMessage("ERROR!", "Dry <= Wet", "Try again")
		p.sleep(5 * time.Second)
		return moisture.Calibration{}, err
	}

	for _, warning := range cal.Warnings() {
		fmt.Fprintf(p.Out, "WARNING: %s\n", warning)
		p.Display.ShowMessage("WARNING!", "Check setup")
		p.sleep(5 * time.Second)
	}

	if err := p.Saver.Save(cal); err != nil {
		return moisture.Calibration{}, fmt.Errorf("save calibration: %w", err)
	}

	fmt.Fprintln(p.Out, "Calibration saved.")
	p.Display.ShowMessage("Calibration", "COMPLETE!", "", "Saved!")
	p.sleep(3 * time.Second)
	return cal, nil
}

// capture counts the operator down, then takes one sample.
func (p *Procedure) capture(step, prompt, line1, line2 string) (float64, error) {
	fmt.Fprintf(p.Out, "\n%s calibration: %s\n", step, prompt)
	p.Display.ShowMessage("STEP "+step+":", line1, line2)

	p.countdown(prompt)

	p.Display.ShowMessage("Measuring...", step+" reading", "Hold still!")
	fmt.Fprintf(p.Out, "Measuring %s frequency (hold still)...\n", step)

	sample, err := p.Meter.Measure(p.SampleTime)
	if err != nil {
		return 0, fmt.Errorf("measure %s frequency: %w", step, err)
	}

	freq := sample.Frequency()
	fmt.Fprintf(p.Out, "%s frequency: %.2f Hz\n", step, freq)
	return freq, nil
}

// countdown gives the operator time to reposition the sensor, one tick per
// second so both the OLED and the console show progress.
func (p *Procedure) countdown(message string) {
	for remaining := int(p.PrepTime.Seconds()); remaining > 0; remaining-- {
		p.Display.ShowMessage(message, "", fmt.Sprintf("%d seconds...", remaining), "Get ready!")
		fmt.Fprintf(p.Out, "%s - %d seconds remaining...\n", message, remaining)
		p.sleep(time.Second)
	}
}
