// Command picogrow measures soil moisture with a pulse-frequency sensor and
// publishes readings to MQTT, an OLED display and an HTTP status page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexb2611/picogrow/internal/config"
	"github.com/alexb2611/picogrow/internal/display"
	"github.com/alexb2611/picogrow/internal/moisture"
	"github.com/alexb2611/picogrow/internal/mqtt"
	"github.com/alexb2611/picogrow/internal/pulse"
	"github.com/alexb2611/picogrow/internal/status"
	"github.com/alexb2611/picogrow/internal/timesync"
	"github.com/alexb2611/picogrow/internal/web"
)

func main() {
	configPath := flag.String("config", "picogrow.yaml", "Path to YAML config file")
	printReading := flag.Bool("print-reading", false, "Take one reading, print it and exit")
	httpAddr := flag.String("http", "", `HTTP status address (overrides config; "off" disables)`)

	flag.Parse()

	if err := run(*configPath, *printReading, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(configPath string, printReading bool, httpAddr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if httpAddr == "off" {
		cfg.HTTP.Addr = ""
	} else if httpAddr != "" {
		cfg.HTTP.Addr = httpAddr
	}

	// Load calibration. Missing or broken files fall back to defaults
	// inside the store, so an error here means the file is unwritable.
	store := moisture.NewStore(cfg.CalibrationFile)
	cal, source, err := store.Load()
	if err != nil {
		if source == "" {
			return fmt.Errorf("load calibration: %w", err)
		}
		// Defaults are usable even if the write-back failed (read-only fs).
		log.Printf("calibration: %v (continuing with %s)", err, source)
	}
	log.Printf("calibration (%s): dry=%.2fHz wet=%.2fHz", source, cal.DryFreq, cal.WetFreq)
	for _, w := range cal.Warnings() {
		log.Printf("calibration warning: %s", w)
	}

	// Initialize the sensor line. The sensor is the whole point of the
	// daemon, so failure here is fatal.
	line, err := pulse.NewRealLine(cfg.Sensor.Chip, cfg.Sensor.Pin)
	if err != nil {
		return fmt.Errorf("open sensor line %s:%d: %w", cfg.Sensor.Chip, cfg.Sensor.Pin, err)
	}
	defer line.Close()
	meter := pulse.NewMeter(line)

	// Print reading mode
	if printReading {
		sample, err := meter.Measure(cfg.Sensor.SampleWindow)
		if err != nil {
			return fmt.Errorf("measure: %w", err)
		}
		r := moisture.NewReading(time.Now(), sample.Frequency(), sample.Pulses, sample.Window, cal)
		fmt.Printf("%.1f%% %s (%.2f Hz, %d pulses in %v)\n", r.Percent, r.Level, r.Frequency, r.Pulses, r.Window)
		return nil
	}

	// Initialize the display. A configured-but-broken OLED is fatal:
	// silently running headless would leave the plant owner staring at
	// a blank screen wondering if the monitor is alive.
	var disp display.Display
	if cfg.Display.Enabled {
		oled, err := display.NewOLED(cfg.Display.I2CBus, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			return fmt.Errorf("init display: %w", err)
		}
		disp = oled
	} else {
		disp = display.Console{}
	}
	defer disp.Close()

	if err := disp.ShowMessage("Grow Monitor", "Starting..."); err != nil {
		log.Printf("display error: %v", err)
	}

	// NTP time sync. Failure is not fatal: readings are still useful
	// with a drifting clock.
	nowFn := time.Now
	timeSynced := false
	var clockOffset time.Duration
	if cfg.TimeSync.Enabled {
		syncer := timesync.NewSyncer(cfg.TimeSync.Server, cfg.TimeSync.Attempts,
			cfg.TimeSync.RetryDelay, cfg.TimeSync.Timeout)
		offset, err := syncer.Sync()
		if err != nil {
			log.Printf("time sync failed: %v (continuing with system clock)", err)
		} else {
			log.Printf("time synced with %s: offset %v", cfg.TimeSync.Server, offset)
			nowFn = timesync.NewClock(offset).Now
			timeSynced = true
			clockOffset = offset
		}
	}

	// Status tracker (before STARTUP so the snapshot is complete)
	tracker := status.NewTracker(nowFn(), status.Config{
		SampleWindowMs: cfg.Sensor.SampleWindow.Milliseconds(),
		IntervalMs:     cfg.Sensor.Interval.Milliseconds(),
		HeartbeatMs:    cfg.MQTT.Heartbeat.Milliseconds(),
		Broker:         cfg.MQTT.Broker,
		HTTPAddr:       cfg.HTTP.Addr,
		SensorPin:      cfg.Sensor.Pin,
		CalibFile:      cfg.CalibrationFile,
	})
	tracker.SetCalibration(cal, source)
	tracker.SetTimeSync(timeSynced, clockOffset)
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Initialize MQTT. The monitor keeps measuring and displaying even
	// with no broker, so failure here only loses remote publishing.
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.MQTT.Broker != "" {
		real, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		if err != nil {
			log.Printf("mqtt init failed: %v (continuing without MQTT)", err)
		} else {
			publisher = real
			mqttStatus = real
			defer real.Close()
		}
	}

	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: pin=%d window=%v interval=%v broker=%s",
		cfg.Sensor.Pin, cfg.Sensor.SampleWindow, cfg.Sensor.Interval, cfg.MQTT.Broker)

	ticker := time.NewTicker(cfg.Sensor.Interval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	lc := loopConfig{
		sampleWindow: cfg.Sensor.SampleWindow,
		displayOn:    cfg.Display.OnTime,
		heartbeat:    cfg.MQTT.Heartbeat,
	}
	return runLoop(meter, cal, disp, publisher, mqttStatus, tracker, lc, nowFn, time.Sleep, ticker.C, sigCh)
}

// measurer is the slice of pulse.Meter the loop needs.
type measurer interface {
	Measure(window time.Duration) (pulse.Sample, error)
}

type loopConfig struct {
	sampleWindow time.Duration
	displayOn    time.Duration // 0 leaves the reading on screen
	heartbeat    time.Duration // 0 disables heartbeat events
}

func runLoop(meter measurer, cal moisture.Calibration, disp display.Display, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, lc loopConfig, now func() time.Time, sleep func(time.Duration), tick <-chan time.Time, sig <-chan os.Signal) error {
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if publisher != nil {
				event := mqtt.SystemEvent{
					Timestamp: now(),
					Event:     "SHUTDOWN",
					Reason:    signalName,
					Retained:  true,
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					snap := tracker.Snapshot()
					event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			if err := disp.ShowMessage("Monitor", "Stopped"); err != nil {
				log.Printf("display error: %v", err)
			}
			return nil

		case <-tick:
			t := now()
			sample, err := meter.Measure(lc.sampleWindow)
			if err != nil {
				log.Printf("measure error: %v", err)
				if tracker != nil {
					tracker.RecordError()
				}
				continue
			}

			reading := moisture.NewReading(t, sample.Frequency(), sample.Pulses, sample.Window, cal)
			log.Printf("reading: %.1f%% %s (%.2f Hz, %d pulses)",
				reading.Percent, reading.Level, reading.Frequency, reading.Pulses)

			if err := disp.ShowReading(reading); err != nil {
				log.Printf("display error: %v", err)
			} else if lc.displayOn > 0 {
				sleep(lc.displayOn)
				if err := disp.Clear(); err != nil {
					log.Printf("display error: %v", err)
				}
			}

			if publisher != nil {
				if err := publisher.Publish(reading); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if tracker != nil {
				tracker.RecordReading(reading)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Check for heartbeat
			if publisher != nil && lc.heartbeat > 0 && t.Sub(lastHeartbeat) >= lc.heartbeat {
				lastHeartbeat = t
				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
					log.Printf("heartbeat: uptime=%v readings=%d errors=%d",
						snap.Uptime(), snap.ReadingCount, snap.ErrorCount)
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
