// Package timesync checks the local clock against an NTP server at startup.
//
// The daemon does not set the system clock (that is the OS's job on a Pi);
// it measures the offset and applies it to reading timestamps, so logs and
// payloads stay correct even when the host clock has drifted.
package timesync

import (
	"fmt"
	"log"
	"time"

	"github.com/beevik/ntp"
)

// QueryFunc asks an NTP server for the clock offset. Injectable for tests.
type QueryFunc func(server string, timeout time.Duration) (time.Duration, error)

// Syncer queries an NTP server with a fixed retry policy: a small fixed
// number of attempts with a short fixed delay between them. Failure is
// reported to the caller and is not fatal to the daemon.
type Syncer struct {
	Server     string
	Attempts   int
	RetryDelay time.Duration
	Timeout    time.Duration

	query QueryFunc
	sleep func(time.Duration)
}

// NewSyncer creates a Syncer with the production NTP query.
func NewSyncer(server string, attempts int, retryDelay, timeout time.Duration) *Syncer {
	return &Syncer{
		Server:     server,
		Attempts:   attempts,
		RetryDelay: retryDelay,
		Timeout:    timeout,
		query:      ntpQuery,
		sleep:      time.Sleep,
	}
}

// SetQuery replaces the NTP query. Tests use this to avoid the network.
func (s *Syncer) SetQuery(q QueryFunc) { s.query = q }

// SetSleep replaces the inter-attempt delay. Tests use this to avoid
// real sleeps.
func (s *Syncer) SetSleep(sleep func(time.Duration)) { s.sleep = sleep }

// Sync queries the server, retrying on failure. It returns the measured
// clock offset, or the last error once all attempts are exhausted.
func (s *Syncer) Sync() (time.Duration, error) {
	attempts := s.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		offset, err := s.query(s.Server, s.Timeout)
		if err == nil {
			return offset, nil
		}
		lastErr = err
		log.Printf("timesync: attempt %d/%d failed: %v", attempt, attempts, err)
		if attempt < attempts {
			s.sleep(s.RetryDelay)
		}
	}
	return 0, fmt.Errorf("timesync: all %d attempts failed: %w", attempts, lastErr)
}

func ntpQuery(server string, timeout time.Duration) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// Clock produces timestamps corrected by a fixed offset.
type Clock struct {
	offset time.Duration
}

// NewClock creates a clock applying the given offset to the local time.
// A zero offset gives plain local time.
func NewClock(offset time.Duration) *Clock {
	return &Clock{offset: offset}
}

// Now returns the corrected current time.
func (c *Clock) Now() time.Time {
	return time.Now().Add(c.offset)
}

// Offset returns the correction being applied.
func (c *Clock) Offset() time.Duration {
	return c.offset
}
