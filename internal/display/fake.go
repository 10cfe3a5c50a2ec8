package display

import "github.com/alexb2611/picogrow/internal/moisture"

// FakeDisplay records every call for test assertions.
type FakeDisplay struct {
	// Readings contains all readings that were shown.
	Readings []moisture.Reading

	// Messages contains all message line sets that were shown.
	Messages [][]string

	// Clears counts Clear calls.
	Clears int

	// Closed tracks if Close was called.
	Closed bool

	// ShowError, if set, will be returned by ShowReading and ShowMessage.
	ShowError error
}

// NewFakeDisplay creates a FakeDisplay for testing.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

// ShowReading records the reading.
func (f *FakeDisplay) ShowReading(r moisture.Reading) error {
	if f.ShowError != nil {
		return f.ShowError
	}
	f.Readings = append(f.Readings, r)
	return nil
}

// ShowMessage records the message lines.
func (f *FakeDisplay) ShowMessage(lines ...string) error {
	if f.ShowError != nil {
		return f.ShowError
	}
	f.Messages = append(f.Messages, lines)
	return nil
}

// Clear counts the call.
func (f *FakeDisplay) Clear() error {
	f.Clears++
	return nil
}

// Close marks the display as closed.
func (f *FakeDisplay) Close() error {
	f.Closed = true
	return nil
}
