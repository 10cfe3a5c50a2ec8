package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexb2611/picogrow/internal/moisture"
)

func TestFormatReadingPayload(t *testing.T) {
	r := moisture.Reading{
		Time:      time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC),
		Frequency: 16.0,
		Pulses:    32,
		Window:    2 * time.Second,
		Percent:   50.0,
		Level:     moisture.LevelMoist,
	}

	payload, err := FormatReadingPayload(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Grow.Timestamp != "2026-02-02T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.Grow.Timestamp)
	}
	if parsed.Grow.MoisturePercent != 50.0 {
		t.Errorf("unexpected percent: %v", parsed.Grow.MoisturePercent)
	}
	if parsed.Grow.FrequencyHz != 16.0 {
		t.Errorf("unexpected frequency: %v", parsed.Grow.FrequencyHz)
	}
	if parsed.Grow.Level != "MOIST" {
		t.Errorf("unexpected level: %s", parsed.Grow.Level)
	}
	if parsed.Grow.Pulses != 32 {
		t.Errorf("unexpected pulses: %d", parsed.Grow.Pulses)
	}
	if parsed.Grow.WindowMs != 2000 {
		t.Errorf("unexpected window: %d", parsed.Grow.WindowMs)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed SystemPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.System.Event != "SHUTDOWN" {
		t.Errorf("unexpected event: %s", parsed.System.Event)
	}
	if parsed.System.Reason != "SIGTERM" {
		t.Errorf("unexpected reason: %s", parsed.System.Reason)
	}
	if parsed.System.Timestamp != "2026-02-02T22:18:12Z" {
		t.Errorf("unexpected timestamp: %s", parsed.System.Timestamp)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"status":{"custom":true}}`)
	payload, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("raw payload not passed through: %s", payload)
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()

	r := moisture.Reading{
		Time:    time.Now(),
		Percent: 75,
		Level:   moisture.LevelWet,
	}

	if err := f.Publish(r); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(f.Readings) != 1 || f.Readings[0].Percent != 75 {
		t.Errorf("readings = %+v", f.Readings)
	}
	if len(f.Payloads) != 1 {
		t.Errorf("payloads = %d, want 1", len(f.Payloads))
	}

	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err != nil {
		t.Fatalf("PublishSystem: %v", err)
	}
	if len(f.SystemEvents) != 1 || f.SystemEvents[0].Event != "STARTUP" {
		t.Errorf("system events = %+v", f.SystemEvents)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("publisher not marked closed")
	}

	f.Reset()
	if len(f.Readings) != 0 || len(f.SystemEvents) != 0 || f.Closed {
		t.Error("Reset did not clear state")
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("broker down")

	if err := f.Publish(moisture.Reading{}); err == nil {
		t.Error("expected publish error")
	}
	if len(f.Readings) != 0 {
		t.Error("failed publish should not be recorded")
	}
}
