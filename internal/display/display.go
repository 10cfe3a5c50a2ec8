// Package display renders readings on a small monochrome screen.
// The real implementation drives an SSD1306 OLED over I2C.
// The fake implementation records what would be shown for tests.
package display

import (
	"fmt"
	"log"

	"github.com/alexb2611/picogrow/internal/moisture"
)

// Display renders moisture readings and status messages.
type Display interface {
	// ShowReading renders a completed measurement.
	ShowReading(r moisture.Reading) error

	// ShowMessage renders up to four lines of status text.
	ShowMessage(lines ...string) error

	// Clear blanks the screen. On an OLED a black frame is also the
	// low-power state: unlit pixels draw no current.
	Clear() error

	// Close releases the display.
	Close() error
}

// ReadingLines formats a reading as screen lines. Shared by the OLED and
// console implementations so both show the same thing.
func ReadingLines(r moisture.Reading) []string {
	return []string{
		"Moisture",
		fmt.Sprintf("%.0f%%", r.Percent),
		fmt.Sprintf("%.1fHz", r.Frequency),
		string(r.Level),
	}
}

// Console logs what would be shown. Used when the OLED is disabled or
// unavailable, and by the print-reading mode.
type Console struct{}

// ShowReading logs the reading.
func (Console) ShowReading(r moisture.Reading) error {
	log.Printf("display: moisture=%.1f%% frequency=%.2fHz level=%s", r.Percent, r.Frequency, r.Level)
	return nil
}

// ShowMessage logs the message.
func (Console) ShowMessage(lines ...string) error {
	for _, line := range lines {
		if line != "" {
			log.Printf("display: %s", line)
		}
	}
	return nil
}

// Clear does nothing on the console.
func (Console) Clear() error { return nil }

// Close does nothing on the console.
func (Console) Close() error { return nil }
