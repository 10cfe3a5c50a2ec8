//go:build linux

package display

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/alexb2611/picogrow/internal/moisture"
)

// Line height for basicfont.Face7x13 with a little breathing room.
const lineHeight = 14

// OLED drives an SSD1306 over I2C via periph.io.
type OLED struct {
	bus  closer
	dev  *ssd1306.Dev
	rect image.Rectangle
}

type closer interface {
	Close() error
}

// NewOLED opens the I2C bus and initializes the panel. Bus name may be empty
// for the first available bus. Failure here is a hardware fault the operator
// has to fix; there is no automatic recovery.
func NewOLED(busName string, width, height int) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = width
	opts.H = height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306: %w", err)
	}

	// Full brightness, matching the original firmware.
	if err := dev.SetContrast(0xFF); err != nil {
		bus.Close()
		return nil, fmt.Errorf("set contrast: %w", err)
	}

	return &OLED{bus: bus, dev: dev, rect: dev.Bounds()}, nil
}

// ShowReading renders the moisture reading.
func (o *OLED) ShowReading(r moisture.Reading) error {
	return o.drawLines(ReadingLines(r))
}

// ShowMessage renders up to four lines of text. Extra lines are dropped
// rather than drawn off-panel.
func (o *OLED) ShowMessage(lines ...string) error {
	max := o.rect.Dy() / lineHeight
	if len(lines) > max {
		lines = lines[:max]
	}
	return o.drawLines(lines)
}

// Clear blanks the panel.
func (o *OLED) Clear() error {
	return o.drawLines(nil)
}

// Close blanks and halts the panel, then releases the bus.
func (o *OLED) Close() error {
	o.drawLines(nil)
	if err := o.dev.Halt(); err != nil {
		o.bus.Close()
		return fmt.Errorf("halt ssd1306: %w", err)
	}
	return o.bus.Close()
}

func (o *OLED) drawLines(lines []string) error {
	img := image1bit.NewVerticalLSB(o.rect)
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(0, lineHeight*(i+1)-2)
		drawer.DrawString(line)
	}
	if err := o.dev.Draw(o.rect, img, image.Point{}); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}
