package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexb2611/picogrow/internal/moisture"
	"github.com/alexb2611/picogrow/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		SampleWindowMs: 2000,
		IntervalMs:     60000,
		HeartbeatMs:    900000,
		Broker:         "tcp://192.168.1.200:1883",
		HTTPAddr:       ":8080",
		SensorPin:      26,
		CalibFile:      "moisture_config.json",
	}
	tr := status.NewTracker(start, cfg)
	tr.SetCalibration(moisture.DefaultCalibration(), moisture.SourceDefaults)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.RecordReading(moisture.Reading{
		Time:      time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC),
		Frequency: 16,
		Percent:   50,
		Level:     moisture.LevelMoist,
	})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.Reading == nil {
		t.Fatal("expected a reading in JSON")
	}
	if sj.Status.Reading.MoisturePercent != 50 {
		t.Errorf("moisture: got %v, want 50", sj.Status.Reading.MoisturePercent)
	}
	if sj.Status.Reading.Level != "MOIST" {
		t.Errorf("level: got %q, want MOIST", sj.Status.Reading.Level)
	}
	if sj.Status.ReadingCount != 1 {
		t.Errorf("reading count: got %d, want 1", sj.Status.ReadingCount)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("MQTT.Broker: got %q", sj.Status.MQTT.Broker)
	}
	if sj.Status.Calibration.DryFreqHz != 27 {
		t.Errorf("calibration dry: got %v, want 27", sj.Status.Calibration.DryFreqHz)
	}
	if sj.Status.Config.SampleWindowMs != 2000 {
		t.Errorf("Config.SampleWindowMs: got %d, want 2000", sj.Status.Config.SampleWindowMs)
	}
}

func TestJSONBeforeFirstReading(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	var sj status.StatusJSON
	json.NewDecoder(resp.Body).Decode(&sj)

	if sj.Status.Reading != nil {
		t.Errorf("reading before first measurement: got %+v, want none", sj.Status.Reading)
	}
	if sj.Status.Calibration.Source != "defaults" {
		t.Errorf("calibration source: got %q, want defaults", sj.Status.Calibration.Source)
	}
}

func TestJSONNetworkInfo(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.SetNetwork(&status.NetworkInfo{
		Type:   "wifi",
		IP:     "192.168.1.42",
		Status: "connected",
		SSID:   "MyNet",
	})

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	var sj status.StatusJSON
	json.NewDecoder(resp.Body).Decode(&sj)

	if sj.Status.Network == nil {
		t.Fatal("expected Network in JSON")
	}
	if sj.Status.Network.IP != "192.168.1.42" {
		t.Errorf("Network.IP: got %q, want 192.168.1.42", sj.Status.Network.IP)
	}
}

func TestHTMLEndpointRoot(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.RecordReading(moisture.Reading{Percent: 82, Frequency: 8.95, Level: moisture.LevelWet})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "82.0%") {
		t.Error("page does not show the moisture percentage")
	}
	if !strings.Contains(string(body), "WET") {
		t.Error("page does not show the level")
	}
}

func TestHTMLEndpointIndexHTML(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
}

func TestNotFoundForUnknownPath(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	if err != nil {
		t.Fatalf("GET /nonexistent: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestReadingChangesReflectedInResponse(t *testing.T) {
	ts, tr := newTestServer(t)

	resp1, _ := http.Get(ts.URL + "/index.json")
	var sj1 status.StatusJSON
	json.NewDecoder(resp1.Body).Decode(&sj1)
	resp1.Body.Close()
	if sj1.Status.ReadingCount != 0 {
		t.Errorf("initial reading count: got %d, want 0", sj1.Status.ReadingCount)
	}

	tr.RecordReading(moisture.Reading{Percent: 12, Frequency: 24.3, Level: moisture.LevelDry})
	tr.SetMQTTConnected(true)

	resp2, _ := http.Get(ts.URL + "/index.json")
	var sj2 status.StatusJSON
	json.NewDecoder(resp2.Body).Decode(&sj2)
	resp2.Body.Close()

	if sj2.Status.ReadingCount != 1 {
		t.Errorf("reading count: got %d, want 1", sj2.Status.ReadingCount)
	}
	if sj2.Status.Reading == nil || sj2.Status.Reading.Level != "DRY" {
		t.Errorf("reading: got %+v, want DRY", sj2.Status.Reading)
	}
	if !sj2.Status.MQTT.Connected {
		t.Error("expected MQTT connected after update")
	}
}
