// Package debug provides conditional debug logging for ft.
//
// Debug logging is enabled by setting the FT_DEBUG environment variable:
//
//	FT_DEBUG=1 ft --snapshot tree.json 2>debug.log
//
// The TUI owns the terminal, so redirect stderr or point the log at a file
// with FT_DEBUG_FILE. When disabled (default), every function is a no-op.
//
// Usage:
//
//	debug.Log("moved %s into %s", id, target)
//	defer debug.LogEnterExit("reload")()
package debug

import (
	"io"
	"log"
	"os"
	"time"
)

const prefix = "[FT_DEBUG] "

var (
	// enabled is true when FT_DEBUG env var is set
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("FT_DEBUG") == "" {
		return
	}
	enabled = true
	var out io.Writer = os.Stderr
	if path := os.Getenv("FT_DEBUG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}
	logger = newLogger(out)
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = newLogger(os.Stderr)
	}
}

// SetOutput redirects debug output, for tests and --debug-file style use.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// Log writes a printf-style message if debug logging is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogEnterExit logs entry and exit with timing:
//
//	defer debug.LogEnterExit("reload")()
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}
