package display

import (
	"testing"
	"time"

	"github.com/alexb2611/picogrow/internal/moisture"
)

func TestReadingLines(t *testing.T) {
	r := moisture.Reading{
		Time:      time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Frequency: 16.04,
		Percent:   49.8,
		Level:     moisture.LevelMoist,
	}

	lines := ReadingLines(r)
	want := []string{"Moisture", "50%", "16.0Hz", "MOIST"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFakeDisplayRecords(t *testing.T) {
	f := NewFakeDisplay()

	r := moisture.Reading{Percent: 100, Level: moisture.LevelWet}
	if err := f.ShowReading(r); err != nil {
		t.Fatalf("ShowReading: %v", err)
	}
	if err := f.ShowMessage("Grow Monitor", "Starting..."); err != nil {
		t.Fatalf("ShowMessage: %v", err)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(f.Readings) != 1 || f.Readings[0].Percent != 100 {
		t.Errorf("readings = %+v, want one reading at 100%%", f.Readings)
	}
	if len(f.Messages) != 1 || f.Messages[0][0] != "Grow Monitor" {
		t.Errorf("messages = %+v", f.Messages)
	}
	if f.Clears != 1 {
		t.Errorf("clears = %d, want 1", f.Clears)
	}
	if !f.Closed {
		t.Error("display not marked closed")
	}
}
