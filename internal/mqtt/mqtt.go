// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/alexb2611/picogrow/internal/moisture"
)

// Topic is the MQTT topic for moisture readings.
const Topic = "garden/picogrow/readings"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "garden/picogrow/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a moisture reading to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(r moisture.Reading) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Grow GrowPayload `json:"grow"`
}

// GrowPayload contains the reading details.
type GrowPayload struct {
	Timestamp       string  `json:"timestamp"`
	MoisturePercent float64 `json:"moisture_percent"`
	FrequencyHz     float64 `json:"frequency_hz"`
	Level           string  `json:"level"`
	Pulses          uint64  `json:"pulses"`
	WindowMs        int64   `json:"window_ms"`
}

// FormatReadingPayload creates the JSON payload for a moisture reading.
func FormatReadingPayload(r moisture.Reading) ([]byte, error) {
	payload := Payload{
		Grow: GrowPayload{
			Timestamp:       r.Time.UTC().Format(time.RFC3339),
			MoisturePercent: r.Percent,
			FrequencyHz:     r.Frequency,
			Level:           string(r.Level),
			Pulses:          r.Pulses,
			WindowMs:        r.Window.Milliseconds(),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
