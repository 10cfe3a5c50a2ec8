package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "gpiochip0", cfg.Sensor.Chip)
	assert.Equal(t, 26, cfg.Sensor.Pin)
	assert.Equal(t, 2*time.Second, cfg.Sensor.SampleWindow)
	assert.Equal(t, 60*time.Second, cfg.Sensor.Interval)
	assert.True(t, cfg.Display.Enabled)
	assert.Equal(t, 128, cfg.Display.Width)
	assert.Equal(t, 64, cfg.Display.Height)
	assert.Equal(t, 10*time.Second, cfg.Display.OnTime)
	assert.Equal(t, "picogrow", cfg.MQTT.ClientID)
	assert.Equal(t, 15*time.Minute, cfg.MQTT.Heartbeat)
	assert.Equal(t, 3, cfg.TimeSync.Attempts)
	assert.Equal(t, 2*time.Second, cfg.TimeSync.RetryDelay)
	assert.Equal(t, "moisture_config.json", cfg.CalibrationFile)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "gpiochip0", cfg.Sensor.Chip)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile := filepath.Join(t.TempDir(), "picogrow.yaml")

	yamlContent := `
sensor:
  chip: "gpiochip1"
  pin: 17
  sample_window: 3s
  interval: 30s

display:
  enabled: false
  width: 128
  height: 32
  on_time: 5s

mqtt:
  broker: "tcp://10.0.0.5:1883"
  client_id: "grow-office"
  heartbeat: 5m

http:
  addr: ":9090"

time_sync:
  enabled: true
  server: "time.cloudflare.com"
  attempts: 5
  retry_delay: 1s
  timeout: 3s

calibration_file: "/var/lib/picogrow/moisture_config.json"
`
	require.NoError(t, os.WriteFile(tmpfile, []byte(yamlContent), 0644))

	cfg, err := Load(tmpfile)
	require.NoError(t, err)

	assert.Equal(t, "gpiochip1", cfg.Sensor.Chip)
	assert.Equal(t, 17, cfg.Sensor.Pin)
	assert.Equal(t, 3*time.Second, cfg.Sensor.SampleWindow)
	assert.Equal(t, 30*time.Second, cfg.Sensor.Interval)
	assert.False(t, cfg.Display.Enabled)
	assert.Equal(t, 32, cfg.Display.Height)
	assert.Equal(t, "tcp://10.0.0.5:1883", cfg.MQTT.Broker)
	assert.Equal(t, "grow-office", cfg.MQTT.ClientID)
	assert.Equal(t, 5*time.Minute, cfg.MQTT.Heartbeat)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "time.cloudflare.com", cfg.TimeSync.Server)
	assert.Equal(t, 5, cfg.TimeSync.Attempts)
	assert.Equal(t, "/var/lib/picogrow/moisture_config.json", cfg.CalibrationFile)
}

func TestLoad_PartialYAMLGetsDefaults(t *testing.T) {
	tmpfile := filepath.Join(t.TempDir(), "picogrow.yaml")

	yamlContent := `
mqtt:
  broker: "tcp://10.0.0.5:1883"
`
	require.NoError(t, os.WriteFile(tmpfile, []byte(yamlContent), 0644))

	cfg, err := Load(tmpfile)
	require.NoError(t, err)

	// Overridden field.
	assert.Equal(t, "tcp://10.0.0.5:1883", cfg.MQTT.Broker)
	// Missing fields fall back to defaults.
	assert.Equal(t, "gpiochip0", cfg.Sensor.Chip)
	assert.Equal(t, 26, cfg.Sensor.Pin)
	assert.Equal(t, 2*time.Second, cfg.Sensor.SampleWindow)
	assert.Equal(t, "picogrow", cfg.MQTT.ClientID)
	assert.Equal(t, "pool.ntp.org", cfg.TimeSync.Server)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile := filepath.Join(t.TempDir(), "picogrow.yaml")
	require.NoError(t, os.WriteFile(tmpfile, []byte(":\n  - not valid"), 0644))

	_, err := Load(tmpfile)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	tmpfile := filepath.Join(t.TempDir(), "picogrow.yaml")

	cfg := Default()
	cfg.Sensor.Pin = 21
	cfg.MQTT.Broker = "tcp://localhost:1883"
	require.NoError(t, cfg.Save(tmpfile))

	loaded, err := Load(tmpfile)
	require.NoError(t, err)
	assert.Equal(t, 21, loaded.Sensor.Pin)
	assert.Equal(t, "tcp://localhost:1883", loaded.MQTT.Broker)
	assert.Equal(t, cfg.Sensor.Interval, loaded.Sensor.Interval)
}
