// Package debug provides the process-wide debug log switched on by --debug.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	output  io.Writer
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
)

const timeFormat = "15:04:05.000"

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logger() zerolog.Logger {
	mu.RLock()
	out := output
	useColor := !noColor
	mu.RUnlock()

	if out == nil {
		out = os.Stderr
	}

	cw := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !useColor,
		TimeFormat: timeFormat,
		FormatLevel: func(interface{}) string {
			if useColor {
				return colorCyan + "[DEBUG]" + colorReset
			}
			return "[DEBUG]"
		},
	}
	return zerolog.New(cw).With().Timestamp().Logger()
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	l := logger()
	l.Debug().Msg(fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	l := logger()
	l.Debug().Msgf("=== %s ===", section)
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	l := logger()
	l.Debug().Interface(key, value).Send()
}
