// Command picogrow-calibrate runs the guided two-point moisture calibration:
// one capture with the sensor in air, one in water, then persists the pair.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alexb2611/picogrow/internal/calibrate"
	"github.com/alexb2611/picogrow/internal/config"
	"github.com/alexb2611/picogrow/internal/display"
	"github.com/alexb2611/picogrow/internal/moisture"
	"github.com/alexb2611/picogrow/internal/pulse"
)

func main() {
	configPath := flag.String("config", "picogrow.yaml", "Path to YAML config file")
	prep := flag.Duration("prep", calibrate.DefaultPrepTime, "Repositioning countdown before each capture")
	sample := flag.Duration("sample", calibrate.DefaultSampleTime, "Sampling window per capture")

	flag.Parse()

	if err := run(*configPath, *prep, *sample); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(configPath string, prep, sample time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	line, err := pulse.NewRealLine(cfg.Sensor.Chip, cfg.Sensor.Pin)
	if err != nil {
		return fmt.Errorf("open sensor line %s:%d: %w", cfg.Sensor.Chip, cfg.Sensor.Pin, err)
	}
	defer line.Close()
	meter := pulse.NewMeter(line)

	// Calibration works fine without the OLED; fall back to the console
	// if it is disabled or absent.
	var disp display.Display = display.Console{}
	if cfg.Display.Enabled {
		oled, err := display.NewOLED(cfg.Display.I2CBus, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			log.Printf("display unavailable: %v (using console)", err)
		} else {
			disp = oled
		}
	}
	defer disp.Close()

	store := moisture.NewStore(cfg.CalibrationFile)

	proc := calibrate.New(meter, disp, store, os.Stdout)
	proc.PrepTime = prep
	proc.SampleTime = sample

	cal, err := proc.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Saved to %s: dry=%.2fHz wet=%.2fHz\n", cfg.CalibrationFile, cal.DryFreq, cal.WetFreq)
	return nil
}
