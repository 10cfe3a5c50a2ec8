//go:build linux

package selftest

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/alexb2611/picogrow/internal/config"
	"github.com/alexb2611/picogrow/internal/pulse"
)

// SSD1306 answers on one of two addresses depending on its D/C strap.
var oledAddresses = []uint16{0x3C, 0x3D}

// Checks builds the hardware probes for the given configuration.
func Checks(cfg *config.Config) []Check {
	return []Check{
		{Name: "oled", Run: func() Result { return checkOLED(cfg.Display.I2CBus) }},
		{Name: "sensor-line", Run: func() Result { return checkLine(cfg.Sensor.Chip, cfg.Sensor.Pin) }},
		{Name: "sensor-signal", Run: func() Result { return checkSignal(cfg.Sensor.Chip, cfg.Sensor.Pin, cfg.Sensor.SampleWindow) }},
	}
}

// checkOLED opens the I2C bus and probes the usual SSD1306 addresses.
func checkOLED(busName string) Result {
	if _, err := host.Init(); err != nil {
		return Result{Status: StatusFail, Detail: fmt.Sprintf("init periph host: %v", err)}
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return Result{Status: StatusFail, Detail: fmt.Sprintf("open i2c bus: %v", err)}
	}
	defer bus.Close()

	for _, addr := range oledAddresses {
		dev := i2c.Dev{Bus: bus, Addr: addr}
		if err := dev.Tx(nil, make([]byte, 1)); err == nil {
			return Result{Status: StatusPass, Detail: fmt.Sprintf("display found at 0x%02X on %s", addr, bus)}
		}
	}
	return Result{Status: StatusFail, Detail: "no display at 0x3C or 0x3D, check SDA/SCL wiring"}
}

// checkLine verifies the sensor GPIO line exists and is free.
func checkLine(chipName string, pin int) Result {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return Result{Status: StatusFail, Detail: fmt.Sprintf("open %s: %v", chipName, err)}
	}
	defer chip.Close()

	info, err := chip.LineInfo(pin)
	if err != nil {
		return Result{Status: StatusFail, Detail: fmt.Sprintf("line %d: %v", pin, err)}
	}
	if info.Used {
		return Result{Status: StatusWarn, Detail: fmt.Sprintf("line %d is held by %q", pin, info.Consumer)}
	}
	return Result{Status: StatusPass, Detail: fmt.Sprintf("line %d (%s) available", pin, info.Name)}
}

// checkSignal counts pulses for one sample window and sanity-checks the rate.
func checkSignal(chipName string, pin int, window time.Duration) Result {
	line, err := pulse.NewRealLine(chipName, pin)
	if err != nil {
		return Result{Status: StatusFail, Detail: fmt.Sprintf("request line: %v", err)}
	}
	defer line.Close()

	sample, err := pulse.NewMeter(line).Measure(window)
	if err != nil {
		return Result{Status: StatusFail, Detail: fmt.Sprintf("measure: %v", err)}
	}
	return ClassifyFrequency(sample.Frequency())
}
