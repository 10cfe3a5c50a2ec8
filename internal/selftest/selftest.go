// Package selftest verifies the wiring before the monitor is put to work:
// is the OLED answering on the I2C bus, is the sensor line available, and is
// the sensor actually pulsing.
package selftest

import (
	"fmt"
	"log"
)

// Status of a single check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Check is one probe of the hardware.
type Check struct {
	Name string
	Run  func() Result
}

// Report summarises a full run.
type Report struct {
	Results []Result
}

// Failed reports whether any check failed outright.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFail {
			return true
		}
	}
	return false
}

// Run executes the checks in order, logging each result.
func Run(checks []Check) Report {
	var report Report
	for _, c := range checks {
		res := c.Run()
		res.Name = c.Name
		log.Printf("selftest: [%s] %s: %s", res.Status, res.Name, res.Detail)
		report.Results = append(report.Results, res)
	}
	return report
}

// ClassifyFrequency sanity-checks a measured sensor frequency.
// The sensor idles around 20-30 Hz in air and drops toward 0 Hz in water;
// a silent line usually means it is not powered.
func ClassifyFrequency(hz float64) Result {
	switch {
	case hz < 1:
		return Result{Status: StatusWarn, Detail: fmt.Sprintf("%.2f Hz: very low frequency, check the sensor is connected to 3.3V", hz)}
	case hz < 10:
		return Result{Status: StatusPass, Detail: fmt.Sprintf("%.2f Hz: low range (sensor in water or wet soil)", hz)}
	case hz < 35:
		return Result{Status: StatusPass, Detail: fmt.Sprintf("%.2f Hz: normal range", hz)}
	default:
		return Result{Status: StatusWarn, Detail: fmt.Sprintf("%.2f Hz: unusually high frequency, check wiring", hz)}
	}
}
