// Package config loads and saves the daemon configuration.
// Daemon settings live in a YAML file; the calibration itself is persisted
// separately by the moisture store in the fixed JSON format the original
// firmware used.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the daemon configuration.
type Config struct {
	Sensor   SensorConfig   `yaml:"sensor"`
	Display  DisplayConfig  `yaml:"display"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	HTTP     HTTPConfig     `yaml:"http"`
	TimeSync TimeSyncConfig `yaml:"time_sync"`

	// CalibrationFile is the path of the persisted two-point calibration.
	CalibrationFile string `yaml:"calibration_file"`
}

// SensorConfig contains GPIO and sampling configuration.
type SensorConfig struct {
	Chip         string        `yaml:"chip"`
	Pin          int           `yaml:"pin"`
	SampleWindow time.Duration `yaml:"sample_window"` // edge-counting window per reading
	Interval     time.Duration `yaml:"interval"`      // time between readings
}

// DisplayConfig contains OLED configuration.
type DisplayConfig struct {
	Enabled bool          `yaml:"enabled"`
	I2CBus  string        `yaml:"i2c_bus"` // empty = first available
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	OnTime  time.Duration `yaml:"on_time"` // how long to show each reading before blanking
}

// MQTTConfig contains broker configuration.
type MQTTConfig struct {
	Broker    string        `yaml:"broker"` // empty = MQTT disabled
	ClientID  string        `yaml:"client_id"`
	Heartbeat time.Duration `yaml:"heartbeat"` // 0 disables heartbeat events
}

// HTTPConfig contains the status server configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty = HTTP disabled
}

// TimeSyncConfig contains NTP sync configuration.
type TimeSyncConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Server     string        `yaml:"server"`
	Attempts   int           `yaml:"attempts"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Sensor: SensorConfig{
			Chip:         "gpiochip0",
			Pin:          26, // Grow sensor PFM signal
			SampleWindow: 2 * time.Second,
			Interval:     60 * time.Second,
		},
		Display: DisplayConfig{
			Enabled: true,
			I2CBus:  "",
			Width:   128,
			Height:  64,
			OnTime:  10 * time.Second,
		},
		MQTT: MQTTConfig{
			Broker:    "tcp://192.168.1.200:1883",
			ClientID:  "picogrow",
			Heartbeat: 15 * time.Minute,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		TimeSync: TimeSyncConfig{
			Enabled:    true,
			Server:     "pool.ntp.org",
			Attempts:   3,
			RetryDelay: 2 * time.Second,
			Timeout:    5 * time.Second,
		},
		CalibrationFile: "moisture_config.json",
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Sensor.Chip == "" {
		c.Sensor.Chip = def.Sensor.Chip
	}
	if c.Sensor.Pin == 0 {
		c.Sensor.Pin = def.Sensor.Pin
	}
	if c.Sensor.SampleWindow == 0 {
		c.Sensor.SampleWindow = def.Sensor.SampleWindow
	}
	if c.Sensor.Interval == 0 {
		c.Sensor.Interval = def.Sensor.Interval
	}

	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height == 0 {
		c.Display.Height = def.Display.Height
	}
	if c.Display.OnTime == 0 {
		c.Display.OnTime = def.Display.OnTime
	}

	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = def.MQTT.ClientID
	}

	if c.TimeSync.Server == "" {
		c.TimeSync.Server = def.TimeSync.Server
	}
	if c.TimeSync.Attempts == 0 {
		c.TimeSync.Attempts = def.TimeSync.Attempts
	}
	if c.TimeSync.RetryDelay == 0 {
		c.TimeSync.RetryDelay = def.TimeSync.RetryDelay
	}
	if c.TimeSync.Timeout == 0 {
		c.TimeSync.Timeout = def.TimeSync.Timeout
	}

	if c.CalibrationFile == "" {
		c.CalibrationFile = def.CalibrationFile
	}
}
