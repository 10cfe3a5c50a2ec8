//go:build !linux

package display

import (
	"errors"

	"github.com/alexb2611/picogrow/internal/moisture"
)

// OLED is not available on non-Linux platforms.
type OLED struct{}

// NewOLED returns an error on non-Linux platforms.
func NewOLED(busName string, width, height int) (*OLED, error) {
	return nil, errors.New("display: not supported on this platform (requires Linux)")
}

// ShowReading is not implemented on non-Linux platforms.
func (o *OLED) ShowReading(r moisture.Reading) error {
	return errors.New("display: not supported")
}

// ShowMessage is not implemented on non-Linux platforms.
func (o *OLED) ShowMessage(lines ...string) error {
	return errors.New("display: not supported")
}

// Clear is not implemented on non-Linux platforms.
func (o *OLED) Clear() error { return nil }

// Close is not implemented on non-Linux platforms.
func (o *OLED) Close() error { return nil }
