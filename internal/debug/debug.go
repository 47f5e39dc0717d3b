// Package debug provides conditional debug logging and invariant checks.
//
// Debug mode is enabled by setting the ARBOR_DEBUG environment variable:
//
//	ARBOR_DEBUG=1 arbor replay scenario.yaml
//
// When enabled, messages are written to stderr with timestamps and the
// expensive structural invariant checks in the tab strip core are active.
// When disabled (default), all functions here are no-ops.
package debug

import (
	"fmt"
	"log"
	"os"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("ARBOR_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[ARBOR_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug mode is active.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug mode. Test suites for the
// structural core call SetEnabled(true) so invariant violations surface as
// panics instead of silent corruption.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[ARBOR_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug mode is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// Assert panics with msg if cond is false. Only active in debug mode.
func Assert(cond bool, format string, args ...any) {
	if !enabled || cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	logger.Printf("ASSERTION FAILED: %s", msg)
	panic("debug assertion failed: " + msg)
}

// AssertNoError panics if err is not nil. Only active in debug mode.
func AssertNoError(err error, context string) {
	if !enabled || err == nil {
		return
	}
	logger.Printf("ASSERTION FAILED: %s: %v", context, err)
	panic(fmt.Sprintf("debug assertion failed: %s: %v", context, err))
}
