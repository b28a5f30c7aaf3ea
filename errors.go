package modelenv

import (
	"fmt"
	"strings"
)

// ConfigError is the only error kind Resolve can produce. It names the
// environment variables whose absence (or conflict) prevented resolution so
// callers can print an actionable message and exit non-zero.
type ConfigError struct {
	// Missing lists environment variables that were absent or empty.
	Missing []string
	// Reason is a human-readable description of what went wrong.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if len(e.Missing) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s (set %s)", e.Reason, strings.Join(e.Missing, ", "))
}
