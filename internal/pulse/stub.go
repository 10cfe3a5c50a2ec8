//go:build !linux

package pulse

import "errors"

// RealLine is not available on non-Linux platforms.
type RealLine struct{}

// NewRealLine returns an error on non-Linux platforms.
func NewRealLine(chip string, pin int) (*RealLine, error) {
	return nil, errors.New("pulse: not supported on this platform (requires Linux)")
}

// Watch is not implemented on non-Linux platforms.
func (r *RealLine) Watch(fn func()) error {
	return errors.New("pulse: not supported")
}

// Unwatch is not implemented on non-Linux platforms.
func (r *RealLine) Unwatch() error {
	return nil
}

// Close is not implemented on non-Linux platforms.
func (r *RealLine) Close() error {
	return nil
}
