// Command picogrow-hwtest probes the monitor's hardware: the I2C OLED, the
// sensor GPIO line and the pulse signal itself. Run it after wiring up a new
// unit, before starting the daemon.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/alexb2611/picogrow/internal/config"
	"github.com/alexb2611/picogrow/internal/selftest"
)

func main() {
	configPath := flag.String("config", "picogrow.yaml", "Path to YAML config file")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: load config: %v", err)
	}

	report := selftest.Run(selftest.Checks(cfg))

	for _, res := range report.Results {
		fmt.Printf("%-8s %-12s %s\n", res.Status, res.Name, res.Detail)
	}

	if report.Failed() {
		os.Exit(1)
	}
}
