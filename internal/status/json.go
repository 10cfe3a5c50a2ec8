package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string          `json:"event,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Reading       *ReadingJSON    `json:"reading,omitempty"`
	ReadingCount  int             `json:"reading_count"`
	ErrorCount    int             `json:"error_count"`
	Calibration   CalibrationJSON `json:"calibration"`
	TimeSync      TimeSyncJSON    `json:"time_sync"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	StartTime     string          `json:"start_time"`
	Timestamp     string          `json:"timestamp"`
	MQTT          MQTTStatus      `json:"mqtt"`
	Network       *NetworkJSON    `json:"network,omitempty"`
	Config        ConfigJSON      `json:"config"`
}

// ReadingJSON is the JSON representation of the last reading.
type ReadingJSON struct {
	Timestamp       string  `json:"timestamp"`
	MoisturePercent float64 `json:"moisture_percent"`
	FrequencyHz     float64 `json:"frequency_hz"`
	Level           string  `json:"level"`
}

// CalibrationJSON is the JSON representation of the active calibration.
type CalibrationJSON struct {
	DryFreqHz float64 `json:"dry_freq_hz"`
	WetFreqHz float64 `json:"wet_freq_hz"`
	Source    string  `json:"source"`
}

// TimeSyncJSON reports the startup NTP check.
type TimeSyncJSON struct {
	Synced        bool  `json:"synced"`
	ClockOffsetMs int64 `json:"clock_offset_ms"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	SampleWindowMs int64  `json:"sample_window_ms"`
	IntervalMs     int64  `json:"interval_ms"`
	HeartbeatMs    int64  `json:"heartbeat_ms"`
	Broker         string `json:"broker"`
	HTTPAddr       string `json:"http_addr"`
	SensorPin      int    `json:"sensor_pin"`
	CalibFile      string `json:"calibration_file"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		ReadingCount:  snap.ReadingCount,
		ErrorCount:    snap.ErrorCount,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Calibration: CalibrationJSON{
			DryFreqHz: snap.Calibration.DryFreq,
			WetFreqHz: snap.Calibration.WetFreq,
			Source:    string(snap.CalSource),
		},
		TimeSync: TimeSyncJSON{
			Synced:        snap.TimeSynced,
			ClockOffsetMs: snap.ClockOffset.Milliseconds(),
		},
		MQTT: MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			SampleWindowMs: snap.Config.SampleWindowMs,
			IntervalMs:     snap.Config.IntervalMs,
			HeartbeatMs:    snap.Config.HeartbeatMs,
			Broker:         snap.Config.Broker,
			HTTPAddr:       snap.Config.HTTPAddr,
			SensorPin:      snap.Config.SensorPin,
			CalibFile:      snap.Config.CalibFile,
		},
	}

	if snap.LastReading != nil {
		inner.Reading = &ReadingJSON{
			Timestamp:       snap.LastReading.Time.UTC().Format(time.RFC3339),
			MoisturePercent: snap.LastReading.Percent,
			FrequencyHz:     snap.LastReading.Frequency,
			Level:           string(snap.LastReading.Level),
		}
	}

	return inner
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
