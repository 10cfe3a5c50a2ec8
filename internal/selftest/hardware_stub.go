//go:build !linux

package selftest

import "github.com/alexb2611/picogrow/internal/config"

// Checks returns a single failing check on non-Linux platforms.
func Checks(cfg *config.Config) []Check {
	return []Check{
		{Name: "platform", Run: func() Result {
			return Result{Status: StatusFail, Detail: "hardware self-test requires Linux"}
		}},
	}
}
